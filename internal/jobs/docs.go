// Package jobs provides scheduled background tasks.
//
// Jobs run on github.com/robfig/cron/v3 with a leading seconds field. The only
// job today is NotificationJob, which drains the notification outbox filled by
// the order status subscriber:
//
//	job, err := jobs.NewNotificationJob(handler, jobs.DefaultNotificationSchedule, 50, logger)
//	if err != nil {
//		return err
//	}
//	manager := jobs.NewJobManager(job)
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
//
// A failed run is logged and retried on the next tick; notifications that
// could not be sent stay at the head of the outbox.
package jobs
