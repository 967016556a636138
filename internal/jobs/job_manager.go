package jobs

import (
	"context"
	"fmt"
)

// JobManager coordinates the scheduled jobs of a live run.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	tickJob  *SimulationTickJob
	flushJob *LedgerFlushJob
}

// NewJobManager creates a job manager. flushJob may be nil when the run keeps no ledger.
func NewJobManager(tickJob *SimulationTickJob, flushJob *LedgerFlushJob) *JobManager {
	return &JobManager{
		tickJob:  tickJob,
		flushJob: flushJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if jm.flushJob != nil {
		if err := jm.flushJob.Start(); err != nil {
			return fmt.Errorf("failed to start ledger flush job: %w", err)
		}
	}

	if err := jm.tickJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		if jm.flushJob != nil {
			jm.flushJob.Stop()
		}
		return fmt.Errorf("failed to start simulation tick job: %w", err)
	}

	return nil
}

// Wait blocks until the simulation stops or ctx is done.
func (jm *JobManager) Wait(ctx context.Context) error {
	return jm.tickJob.Wait(ctx)
}

// StopAll stops the tick first so the final flush sees every delivery.
func (jm *JobManager) StopAll() {
	jm.tickJob.Stop()
	if jm.flushJob != nil {
		jm.flushJob.Stop()
	}
}
