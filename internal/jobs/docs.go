// Package jobs runs the service's scheduled background work on
// github.com/robfig/cron/v3.
//
// PaymentReconciliationJob finds succeeded card payments whose order is not
// marked paid and applies the missing update. The schedule accepts the
// six-field cron syntax and descriptors such as "@every 1m".
//
//	jobManager := jobs.NewJobManager(reconcileHandler, cfg.ReconcileSchedule, 0, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatalf("start jobs: %v", err)
//	}
//	defer jobManager.StopAll()
package jobs
