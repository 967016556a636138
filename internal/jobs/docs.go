// Package jobs provides the scheduled background tasks of a live simulation run.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. SimulationTickJob - runs one simulation tick per firing of its schedule
// 2. LedgerFlushJob - moves buffered delivery records into the persistent ledger
//
// # Usage
//
//	tickJob := jobs.NewSimulationTickJob(stepHandler, sim, cfg.TickSchedule, true, logger)
//	flushJob := jobs.NewLedgerFlushJob(flushHandler, "", logger) // or nil without a ledger
//	jobManager := jobs.NewJobManager(tickJob, flushJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
//	err := jobManager.Wait(ctx) // returns when the run is complete or a defect stopped it
//
// # Scheduling
//
// Schedules use the six-field cron syntax with seconds. The tick defaults to
// "* * * * * *" (every second), the flush to "*/5 * * * * *". Overlapping
// firings are skipped, never queued, so ticks stay strictly sequential.
//
// # Error Handling
//
//   - A scheduling defect (robot.IsDefect) or any other step error stops the
//     tick job; Wait returns the error
//   - Flush failures are logged and the batch stays buffered for the next firing
//   - StopAll flushes one last time after the tick job has stopped
package jobs
