package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"automail/internal/core/application/simulation"
	"automail/internal/core/domain/model/kernel"
)

// ErrSimulationTimedOut is returned when mail is still undelivered after the tick limit.
var ErrSimulationTimedOut = errors.New("simulation timed out")

// RunSimulationResult is the outcome of a batch run.
type RunSimulationResult struct {
	FinalTick kernel.Tick
	Stats     simulation.Stats
}

// RunSimulationCommandHandler steps a run until every generated item is delivered.
type RunSimulationCommandHandler struct {
	sim    *simulation.Simulation
	step   StepSimulationCommandHandler
	logger *slog.Logger
}

func NewRunSimulationCommandHandler(sim *simulation.Simulation, logger *slog.Logger) RunSimulationCommandHandler {
	return RunSimulationCommandHandler{
		sim:    sim,
		step:   NewStepSimulationCommandHandler(sim, logger),
		logger: logger.With("component", "RunSimulationCommandHandler"),
	}
}

// Handle runs ticks until the run is complete, the context is cancelled, a fault
// occurs, or MaxTicks ticks have elapsed.
func (h RunSimulationCommandHandler) Handle(ctx context.Context, cmd RunSimulationCommand) (RunSimulationResult, error) {
	if err := cmd.Validate(); err != nil {
		return RunSimulationResult{}, err
	}

	stepCmd := NewStepSimulationCommand()
	for range cmd.MaxTicks() {
		if err := ctx.Err(); err != nil {
			return h.result(), err
		}

		tick, err := h.step.Handle(ctx, stepCmd)
		if err != nil {
			h.logger.ErrorContext(ctx, "simulation aborted", "tick", int(tick), "error", err)
			return h.result(), err
		}

		if h.sim.IsComplete() {
			res := h.result()
			h.logger.InfoContext(ctx, "simulation complete",
				"tick", int(res.FinalTick),
				"delivered", res.Stats.Delivered,
				"dropped", res.Stats.Dropped,
			)
			return res, nil
		}
	}

	res := h.result()
	return res, fmt.Errorf("%w after %d ticks: %d items in flight",
		ErrSimulationTimedOut, cmd.MaxTicks(), res.Stats.InFlight)
}

func (h RunSimulationCommandHandler) result() RunSimulationResult {
	return RunSimulationResult{
		FinalTick: h.sim.Now(),
		Stats:     h.sim.Stats(),
	}
}
