package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// DefaultRelaySpec runs the relay every second.
const DefaultRelaySpec = "* * * * * *"

// Flusher drains queued notifications into their sink.
type Flusher interface {
	Flush(ctx context.Context) int
	Pending() int
}

// NotificationRelayJob periodically moves queued order notifications to the notification sink.
type NotificationRelayJob struct {
	flusher Flusher
	spec    string
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewNotificationRelayJob schedules flusher on spec, a cron expression with a seconds field.
func NewNotificationRelayJob(flusher Flusher, spec string, logger *slog.Logger) *NotificationRelayJob {
	if spec == "" {
		spec = DefaultRelaySpec
	}
	return &NotificationRelayJob{
		flusher: flusher,
		spec:    spec,
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger.With("component", "notification_relay_job"),
	}
}

func (j *NotificationRelayJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, j.Run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification relay job started", "spec", j.spec)
	return nil
}

// Run performs a single relay pass.
func (j *NotificationRelayJob) Run() {
	ctx := context.Background()
	if j.flusher.Pending() == 0 {
		return
	}
	if delivered := j.flusher.Flush(ctx); delivered > 0 {
		j.logger.DebugContext(ctx, "Notifications relayed", "delivered", delivered)
	}
}

// Stop waits for a running relay pass, then flushes whatever is still queued.
func (j *NotificationRelayJob) Stop() {
	<-j.cron.Stop().Done()
	if pending := j.flusher.Pending(); pending > 0 {
		delivered := j.flusher.Flush(context.Background())
		j.logger.InfoContext(context.Background(), "Final notification flush",
			"pending", pending, "delivered", delivered)
	}
	j.logger.InfoContext(context.Background(), "Notification relay job stopped")
}
