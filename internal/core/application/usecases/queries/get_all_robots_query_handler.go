package queries

import (
	"context"

	"automail/internal/core/application/simulation"
)

// GetAllRobotsQueryHandler reads robot snapshots from the running simulation.
type GetAllRobotsQueryHandler struct {
	sim *simulation.Simulation
}

func NewGetAllRobotsQueryHandler(sim *simulation.Simulation) GetAllRobotsQueryHandler {
	return GetAllRobotsQueryHandler{sim: sim}
}

// Handle returns the robots in roster order.
func (h GetAllRobotsQueryHandler) Handle(_ context.Context, query GetAllRobotsQuery) ([]GetAllRobotsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	snapshots := h.sim.Robots()
	robots := make([]GetAllRobotsQueryResponse, 0, len(snapshots))
	for _, s := range snapshots {
		robots = append(robots, GetAllRobotsQueryResponse{
			ID:               s.ID,
			Kind:             s.Kind.String(),
			State:            s.State.String(),
			CurrentFloor:     int(s.CurrentFloor),
			DestinationFloor: int(s.DestinationFloor),
			Dispatched:       s.Dispatched,
			Load:             s.Load,
			Capacity:         s.Capacity,
			FragileCount:     s.FragileCount,
			DeliveryItemID:   s.DeliveryItemID,
		})
	}
	return robots, nil
}
