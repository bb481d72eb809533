// Package jobs provides scheduled background tasks for the order service.
//
// Jobs are built on github.com/robfig/cron/v3 with seconds-precision schedules.
//
// # Available Jobs
//
// StatusWatchJob is the only publisher of order.status.changed. The command
// handlers persist part statuses and the cached unified status; the job lists
// orders whose cached status differs from orders.announced_status, recomputes the
// unified status from the parts, claims the change with a guarded UPDATE and
// publishes it. Orders are handled concurrently up to the configured limit.
//
// # Usage
//
//	watch := jobs.NewStatusWatchJob(announcements, publisher, "*/5 * * * * *", 4, logger)
//	jobManager := jobs.NewJobManager(watch)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - A failed poll is logged; unclaimed changes stay pending for the next tick
//   - A failed publish is logged and its claim released, so the next tick retries
//   - A change claimed by another instance is skipped
//   - A poll still running when the next tick fires is skipped
//   - Failed job starts stop any already running jobs
package jobs
