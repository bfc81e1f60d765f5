// Package jobs provides scheduled background tasks of the storefront.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six-field expressions with
// seconds) and managed through JobManager:
//
//	jobManager := jobs.NewJobManager(statsHandler, metrics, cfg.StatsReportSchedule,
//		relayHandler, cfg.OutboxRelaySchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// StatsReportJob reads the back-office counters (active products, customers,
// delivered and pending orders, revenue), logs them and publishes them as gauges.
// It runs every minute unless STATS_REPORT_SCHEDULE says otherwise. A failed run is
// logged and retried on the next tick.
//
// OutboxRelayJob publishes order status changes written to the outbox by committed
// transitions. Every five seconds (OUTBOX_RELAY_SCHEDULE) it relays batches of 100
// until the outbox is empty; a message that fails to publish stays pending and is
// retried on the next tick.
package jobs
