package queries

import (
	"context"

	"automail/internal/core/application/simulation"
)

// GetRunStatusQueryHandler reads the run status from the running simulation.
type GetRunStatusQueryHandler struct {
	sim *simulation.Simulation
}

func NewGetRunStatusQueryHandler(sim *simulation.Simulation) GetRunStatusQueryHandler {
	return GetRunStatusQueryHandler{sim: sim}
}

func (h GetRunStatusQueryHandler) Handle(_ context.Context, query GetRunStatusQuery) (GetRunStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRunStatusQueryResponse{}, err
	}

	stats := h.sim.Stats()
	return GetRunStatusQueryResponse{
		RunID:     h.sim.RunID().String(),
		Tick:      int(h.sim.Now()),
		Submitted: stats.Submitted,
		Dropped:   stats.Dropped,
		Delivered: stats.Delivered,
		InFlight:  stats.InFlight,
		Complete:  h.sim.IsComplete(),
	}, nil
}
