package queries

import (
	"errors"
	"fmt"

	"automail/internal/core/domain/model/kernel"
	"automail/internal/pkg/errs"
	"automail/internal/pkg/guard"
)

// MaxDeliveriesLimit caps one page of deliveries.
const MaxDeliveriesLimit = 1000

var ErrGetDeliveriesQueryIsNotConstructed = errors.New(
	"GetDeliveriesQuery must be created via NewGetDeliveriesQuery constructor",
)

// GetDeliveriesQuery lists the recorded deliveries of one run.
//
// Example:
//
//	query, err := NewGetDeliveriesQuery(sim.RunID(), 50)
//	if err != nil {
//	    return err
//	}
//	deliveries, err := handler.Handle(ctx, query)
type GetDeliveriesQuery struct {
	runID kernel.UUID
	limit int

	guard guard.ConstructorGuard
}

// NewGetDeliveriesQuery creates the query; limit 0 means MaxDeliveriesLimit.
func NewGetDeliveriesQuery(runID kernel.UUID, limit int) (GetDeliveriesQuery, error) {
	if err := runID.Validate(); err != nil {
		return GetDeliveriesQuery{}, err
	}
	if limit < 0 || limit > MaxDeliveriesLimit {
		return GetDeliveriesQuery{}, errs.NewValueIsOutOfRangeErrorWithCause(
			"limit", limit, 0, MaxDeliveriesLimit,
			fmt.Errorf("page size must be between 0 and %d", MaxDeliveriesLimit),
		)
	}
	if limit == 0 {
		limit = MaxDeliveriesLimit
	}

	return GetDeliveriesQuery{
		runID: runID,
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveriesQueryIsNotConstructed)
}

func (q GetDeliveriesQuery) RunID() kernel.UUID {
	return q.runID
}

func (q GetDeliveriesQuery) Limit() int {
	return q.limit
}

// GetDeliveriesQueryResponse is one delivery in the read model.
type GetDeliveriesQueryResponse struct {
	ItemID      string
	Destination int
	Arrival     int
	DeliveredAt int
	Priority    int
	Score       float64
}
