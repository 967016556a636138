package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"automail/internal/core/application/simulation"
	"automail/internal/core/application/usecases/commands"
	"automail/internal/core/domain/model/robot"

	"github.com/robfig/cron/v3"
)

// DefaultTickSchedule advances the simulation once per second.
const DefaultTickSchedule = "* * * * * *"

// SimulationTickJob drives a live run: every firing of its schedule runs one tick.
// The job stops itself on a scheduling defect and, when asked to, once the run is complete.
type SimulationTickJob struct {
	handler          commands.StepSimulationCommandHandler
	sim              *simulation.Simulation
	schedule         string
	stopWhenComplete bool
	cron             *cron.Cron
	logger           *slog.Logger

	once sync.Once
	done chan struct{}
	mu   sync.Mutex
	err  error
}

// NewSimulationTickJob creates the tick job. An empty schedule means DefaultTickSchedule.
func NewSimulationTickJob(
	handler commands.StepSimulationCommandHandler,
	sim *simulation.Simulation,
	schedule string,
	stopWhenComplete bool,
	logger *slog.Logger,
) *SimulationTickJob {
	if schedule == "" {
		schedule = DefaultTickSchedule
	}
	return &SimulationTickJob{
		handler:          handler,
		sim:              sim,
		schedule:         schedule,
		stopWhenComplete: stopWhenComplete,
		cron:             cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:           logger.With("component", "simulation_tick_job"),
		done:             make(chan struct{}),
	}
}

// Start schedules the tick.
func (j *SimulationTickJob) Start() error {
	if _, err := j.cron.AddJob(j.schedule, j); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Simulation tick job started", "schedule", j.schedule)
	return nil
}

// Run executes one tick. It implements cron.Job.
func (j *SimulationTickJob) Run() {
	ctx := context.Background()

	tick, err := j.handler.Handle(ctx, commands.NewStepSimulationCommand())
	if err != nil {
		if robot.IsDefect(err) {
			j.logger.ErrorContext(ctx, "Scheduling defect, stopping simulation", "tick", int(tick), "error", err)
		} else {
			j.logger.ErrorContext(ctx, "Simulation tick failed, stopping simulation", "tick", int(tick), "error", err)
		}
		j.finish(err)
		return
	}

	if j.stopWhenComplete && j.sim.IsComplete() {
		stats := j.sim.Stats()
		j.logger.InfoContext(ctx, "Simulation complete",
			"tick", int(tick),
			"delivered", stats.Delivered,
			"dropped", stats.Dropped,
		)
		j.finish(nil)
	}
}

// finish stops the schedule without waiting, since it may run inside a tick.
func (j *SimulationTickJob) finish(err error) {
	j.once.Do(func() {
		j.mu.Lock()
		j.err = err
		j.mu.Unlock()
		j.cron.Stop()
		close(j.done)
	})
}

// Done is closed once the job stopped itself.
func (j *SimulationTickJob) Done() <-chan struct{} {
	return j.done
}

// Err returns the error that stopped the job, if any.
func (j *SimulationTickJob) Err() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.err
}

// Stop stops the tick job and waits for a running tick to finish.
func (j *SimulationTickJob) Stop() {
	<-j.cron.Stop().Done()
	j.once.Do(func() { close(j.done) })
	j.logger.InfoContext(context.Background(), "Simulation tick job stopped")
}

// ErrJobStopped is returned by Wait when ctx ends before the job does.
var ErrJobStopped = errors.New("tick job stopped before the run finished")

// Wait blocks until the job stops itself or ctx is done.
func (j *SimulationTickJob) Wait(ctx context.Context) error {
	select {
	case <-j.done:
		return j.Err()
	case <-ctx.Done():
		return errors.Join(ErrJobStopped, ctx.Err())
	}
}
