package queries

import (
	"context"

	"automail/internal/core/ports"
)

// GetDeliveriesQueryHandler reads deliveries from whichever ledger the run writes to.
type GetDeliveriesQueryHandler struct {
	reader ports.DeliveryReader
}

func NewGetDeliveriesQueryHandler(reader ports.DeliveryReader) GetDeliveriesQueryHandler {
	return GetDeliveriesQueryHandler{reader: reader}
}

func (h GetDeliveriesQueryHandler) Handle(ctx context.Context, query GetDeliveriesQuery) ([]GetDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	records, err := h.reader.List(ctx, query.RunID(), query.Limit())
	if err != nil {
		return nil, err
	}

	out := make([]GetDeliveriesQueryResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, GetDeliveriesQueryResponse{
			ItemID:      rec.ItemID(),
			Destination: int(rec.Destination()),
			Arrival:     int(rec.Arrival()),
			DeliveredAt: int(rec.DeliveredAt()),
			Priority:    rec.Priority(),
			Score:       rec.Score(),
		})
	}
	return out, nil
}
