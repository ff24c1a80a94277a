// Package jobs provides scheduled background tasks for the depot.
//
// Jobs are cron-based, built on github.com/robfig/cron/v3 with a seconds
// field, and only read state: they report what needs attention through the
// logger.
//
// # Available Jobs
//
//  1. OverdueDeliveriesJob - warns about every open order past its expected date
//  2. LowStockJob - warns about every active product at or below its minimum stock
//
// # Usage
//
//	jobManager := jobs.NewJobManager(listOrdersHandler, lowStockHandler, jobs.Schedules{
//		OverdueDeliveries: "0 0 7 * * *",
//		LowStock:          "0 30 7 * * *",
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - A failed run is logged and retried at the next tick
//   - Failed job starts will stop any already running jobs
package jobs
