package commands

import (
	"context"
	"log/slog"

	"automail/internal/core/application/simulation"
)

// MoveRobotsCommandHandler advances the robots and logs every state change.
// Any error it returns is a scheduling defect and must abort the run.
type MoveRobotsCommandHandler struct {
	sim    *simulation.Simulation
	logger *slog.Logger
}

func NewMoveRobotsCommandHandler(sim *simulation.Simulation, logger *slog.Logger) MoveRobotsCommandHandler {
	return MoveRobotsCommandHandler{
		sim:    sim,
		logger: logger.With("component", "MoveRobotsCommandHandler"),
	}
}

func (h MoveRobotsCommandHandler) Handle(ctx context.Context, cmd MoveRobotsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	transitions, err := h.sim.MoveRobots(cmd.Tick())
	for _, tr := range transitions {
		h.logger.InfoContext(ctx, "robot changed state",
			"tick", int(cmd.Tick()),
			"robot", tr.RobotID,
			"from", tr.From.String(),
			"to", tr.To.String(),
			"floor", int(tr.Floor),
			"carrier", tr.Load,
		)
	}
	return err
}
