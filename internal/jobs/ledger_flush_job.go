package jobs

import (
	"context"
	"log/slog"

	"automail/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultFlushSchedule writes buffered deliveries to the ledger every five seconds.
const DefaultFlushSchedule = "*/5 * * * * *"

// LedgerFlushJob periodically moves recorded deliveries into the persistent ledger.
type LedgerFlushJob struct {
	handler  commands.FlushDeliveriesCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewLedgerFlushJob creates the flush job. An empty schedule means DefaultFlushSchedule.
func NewLedgerFlushJob(handler commands.FlushDeliveriesCommandHandler, schedule string, logger *slog.Logger) *LedgerFlushJob {
	if schedule == "" {
		schedule = DefaultFlushSchedule
	}
	return &LedgerFlushJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "ledger_flush_job"),
	}
}

func (j *LedgerFlushJob) Start() error {
	if _, err := j.cron.AddJob(j.schedule, j); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Ledger flush job started", "schedule", j.schedule)
	return nil
}

// Run implements cron.Job.
func (j *LedgerFlushJob) Run() {
	j.Flush(context.Background())
}

// Flush writes whatever is buffered now. Failed batches stay buffered for the next run.
func (j *LedgerFlushJob) Flush(ctx context.Context) {
	n, err := j.handler.Handle(ctx, commands.NewFlushDeliveriesCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Ledger flush failed", "error", err)
		return
	}
	if n > 0 {
		j.logger.DebugContext(ctx, "Ledger flushed", "records", n)
	}
}

// Stop stops the schedule and flushes one last time.
func (j *LedgerFlushJob) Stop() {
	<-j.cron.Stop().Done()
	j.Flush(context.Background())
	j.logger.InfoContext(context.Background(), "Ledger flush job stopped")
}
