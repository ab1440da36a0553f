// Package jobs provides scheduled background tasks for the tracking service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds enabled):
//
//  1. DeliveredOrderExpiryJob - every second, clears the active order once it
//     has been delivered for longer than DELIVERED_ORDER_TTL
//  2. HistoryPurgeJob - hourly, deletes past orders older than
//     HISTORY_RETENTION
//
// # Usage
//
//	jobManager := jobs.NewJobManager(expiryJob, purgeJob)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// Each job also exposes Run for a single pass. Failures are logged and the
// next run tries again.
package jobs
