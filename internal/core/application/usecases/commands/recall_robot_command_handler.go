package commands

import (
	"context"
	"log/slog"

	"automail/internal/core/application/simulation"
)

// RecallRobotCommandHandler recalls robots of a running simulation.
type RecallRobotCommandHandler struct {
	sim    *simulation.Simulation
	logger *slog.Logger
}

func NewRecallRobotCommandHandler(sim *simulation.Simulation, logger *slog.Logger) RecallRobotCommandHandler {
	return RecallRobotCommandHandler{
		sim:    sim,
		logger: logger.With("component", "RecallRobotCommandHandler"),
	}
}

// Handle recalls the robot. Unknown ids yield errs.ErrObjectNotFound.
func (h RecallRobotCommandHandler) Handle(ctx context.Context, cmd RecallRobotCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.sim.Recall(cmd.RobotID()); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "robot recalled", "robot", cmd.RobotID(), "tick", int(h.sim.Now()))
	return nil
}
