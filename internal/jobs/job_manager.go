package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	notificationRelayJob *NotificationRelayJob
}

func NewJobManager(flusher Flusher, relaySpec string, logger *slog.Logger) *JobManager {
	return &JobManager{
		notificationRelayJob: NewNotificationRelayJob(flusher, relaySpec, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.notificationRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start notification relay job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.notificationRelayJob.Stop()
}
