// Package jobs provides scheduled background tasks for the storefront.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds-resolution specs) and managed through
// JobManager:
//
//	jobManager := jobs.NewJobManager(dispatcher, "* * * * * *", logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// NotificationRelayJob drains the notification dispatcher queue into the configured sink
// (Kafka or the log). Overlapping runs are skipped. Stop performs one last flush so that
// notifications queued during shutdown are not lost.
package jobs
