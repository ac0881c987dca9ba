package jobs_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"storefront/internal/adapters/out/notify"
	"storefront/internal/core/ports"
	"storefront/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collectingSink struct {
	mu        sync.Mutex
	delivered []ports.Notification
}

func (s *collectingSink) Deliver(_ context.Context, n ports.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delivered = append(s.delivered, n)
	return nil
}

func (s *collectingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.delivered)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNotificationRelayJob_RunDrainsQueue(t *testing.T) {
	// Arrange
	sink := &collectingSink{}
	dispatcher := notify.NewDispatcher(sink, 8, discardLogger())
	dispatcher.Notify(t.Context(), ports.Notification{OrderID: "o-1", Kind: ports.EventOrderCreated})
	dispatcher.Notify(t.Context(), ports.Notification{OrderID: "o-2", Kind: ports.EventOrderCancelled})
	job := jobs.NewNotificationRelayJob(dispatcher, "", discardLogger())

	// Act
	job.Run()

	// Assert
	assert.Equal(t, 2, sink.count())
	assert.Zero(t, dispatcher.Pending())
}

func TestNotificationRelayJob_StartRelaysOnSchedule(t *testing.T) {
	sink := &collectingSink{}
	dispatcher := notify.NewDispatcher(sink, 8, discardLogger())
	job := jobs.NewNotificationRelayJob(dispatcher, jobs.DefaultRelaySpec, discardLogger())
	require.NoError(t, job.Start())
	defer job.Stop()

	dispatcher.Notify(t.Context(), ports.Notification{OrderID: "o-1", Kind: ports.EventOrderCreated})

	assert.Eventually(t, func() bool { return sink.count() == 1 }, 3*time.Second, 50*time.Millisecond)
}

func TestNotificationRelayJob_StopFlushesRemaining(t *testing.T) {
	sink := &collectingSink{}
	dispatcher := notify.NewDispatcher(sink, 8, discardLogger())
	job := jobs.NewNotificationRelayJob(dispatcher, "@every 1h", discardLogger())
	require.NoError(t, job.Start())

	dispatcher.Notify(t.Context(), ports.Notification{OrderID: "o-1", Kind: ports.EventOrderStatusChanged})
	job.Stop()

	assert.Equal(t, 1, sink.count())
}

func TestNotificationRelayJob_InvalidSpec(t *testing.T) {
	dispatcher := notify.NewDispatcher(&collectingSink{}, 1, discardLogger())
	manager := jobs.NewJobManager(dispatcher, "not a cron spec", discardLogger())

	err := manager.StartAll()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "notification relay job")
}
