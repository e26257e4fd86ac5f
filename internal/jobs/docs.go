// Package jobs provides scheduled background tasks for the dispatch service.
//
// Jobs are cron-based, built on github.com/robfig/cron/v3, and are managed
// through JobManager which provides a unified start/stop interface:
//
//	jobManager := jobs.NewJobManager(uowFactory, threshold, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// StalePendingOrdersJob runs every minute and flags orders that have sat in
// the pending queue longer than the configured threshold without any delivery
// partner accepting them. The sweep only logs; it never mutates orders, so
// operators can decide whether to re-broadcast or cancel.
package jobs
