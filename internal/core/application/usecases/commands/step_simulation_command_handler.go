package commands

import (
	"context"
	"log/slog"

	"automail/internal/core/application/simulation"
	"automail/internal/core/domain/model/kernel"
)

// StepSimulationCommandHandler is the tick driver. Each Handle call runs, in order:
//
//  1. advance the clock
//  2. submit the mail arriving at the new tick
//  3. the allocator's fill step
//  4. every robot's step, in roster order
//
// Fill happens before robots step, so a robot dispatched at tick t leaves at t+1.
type StepSimulationCommandHandler struct {
	sim    *simulation.Simulation
	submit SubmitMailCommandHandler
	assign AssignMailCommandHandler
	move   MoveRobotsCommandHandler
}

// NewStepSimulationCommandHandler wires the per-tick handlers of one run.
func NewStepSimulationCommandHandler(sim *simulation.Simulation, logger *slog.Logger) StepSimulationCommandHandler {
	return StepSimulationCommandHandler{
		sim:    sim,
		submit: NewSubmitMailCommandHandler(sim, logger),
		assign: NewAssignMailCommandHandler(sim),
		move:   NewMoveRobotsCommandHandler(sim, logger),
	}
}

// Handle runs one tick and returns it. The run is started on the first call.
func (h StepSimulationCommandHandler) Handle(ctx context.Context, cmd StepSimulationCommand) (kernel.Tick, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}
	if err := h.sim.Start(); err != nil {
		return 0, err
	}

	tick := h.sim.Advance()

	for _, item := range h.sim.ArrivalsAt(tick) {
		submitCmd, err := NewSubmitMailCommand(item)
		if err != nil {
			return tick, err
		}
		if _, err := h.submit.Handle(ctx, submitCmd); err != nil {
			return tick, err
		}
	}

	if err := h.assign.Handle(ctx, NewAssignMailCommand(tick)); err != nil {
		return tick, err
	}

	if err := h.move.Handle(ctx, NewMoveRobotsCommand(tick)); err != nil {
		return tick, err
	}

	return tick, nil
}
