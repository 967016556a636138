package commands

import (
	"context"

	"automail/internal/core/application/simulation"
)

// AssignMailCommandHandler fills waiting robots from the mail pool.
// Any error it returns is a scheduling defect.
type AssignMailCommandHandler struct {
	sim *simulation.Simulation
}

func NewAssignMailCommandHandler(sim *simulation.Simulation) AssignMailCommandHandler {
	return AssignMailCommandHandler{sim: sim}
}

func (h AssignMailCommandHandler) Handle(_ context.Context, cmd AssignMailCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.sim.Allocate(cmd.Tick())
}
