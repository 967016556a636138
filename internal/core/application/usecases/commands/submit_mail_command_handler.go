package commands

import (
	"context"
	"errors"
	"log/slog"

	"automail/internal/core/application/simulation"
	"automail/internal/core/domain/services"
)

// SubmitMailCommandHandler admits mail into the run.
// Mail no robot type can carry is logged and dropped; that is not an error for the caller.
type SubmitMailCommandHandler struct {
	sim    *simulation.Simulation
	logger *slog.Logger
}

// NewSubmitMailCommandHandler creates a handler bound to one run.
func NewSubmitMailCommandHandler(sim *simulation.Simulation, logger *slog.Logger) SubmitMailCommandHandler {
	return SubmitMailCommandHandler{
		sim:    sim,
		logger: logger.With("component", "SubmitMailCommandHandler"),
	}
}

// Handle submits the item and reports whether it was accepted.
func (h SubmitMailCommandHandler) Handle(ctx context.Context, cmd SubmitMailCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	item := cmd.Item()
	if err := h.sim.Submit(item); err != nil {
		if errors.Is(err, services.ErrNoCapableAgentType) {
			h.logger.WarnContext(ctx, "mail dropped",
				"item", item.ID(),
				"fragile", item.Fragile(),
				"weight", item.Weight(),
				"error", err,
			)
			return false, nil
		}
		return false, err
	}

	h.logger.DebugContext(ctx, "mail arrived", "tick", int(h.sim.Now()), "item", item.String())
	return true, nil
}
