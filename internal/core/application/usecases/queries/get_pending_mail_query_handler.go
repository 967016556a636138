package queries

import (
	"context"

	"automail/internal/core/application/simulation"
)

type GetPendingMailQueryHandler struct {
	sim *simulation.Simulation
}

func NewGetPendingMailQueryHandler(sim *simulation.Simulation) GetPendingMailQueryHandler {
	return GetPendingMailQueryHandler{sim: sim}
}

func (h GetPendingMailQueryHandler) Handle(_ context.Context, query GetPendingMailQuery) (GetPendingMailQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPendingMailQueryResponse{}, err
	}

	pending := h.sim.Pending()
	resp := GetPendingMailQueryResponse{
		LightBudget: h.sim.LightBudget(),
		Items:       make([]PendingMail, 0, len(pending)),
	}
	for _, item := range pending {
		resp.Items = append(resp.Items, PendingMail{
			ID:          item.ID(),
			Destination: int(item.Destination()),
			Arrival:     int(item.Arrival()),
			Weight:      item.Weight(),
			Fragile:     item.Fragile(),
			Priority:    item.Priority(),
		})
	}
	return resp, nil
}
