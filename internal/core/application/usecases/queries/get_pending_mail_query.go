package queries

import (
	"errors"

	"automail/internal/pkg/guard"
)

var ErrGetPendingMailQueryIsNotConstructed = errors.New(
	"GetPendingMailQuery must be created via NewGetPendingMailQuery constructor",
)

// GetPendingMailQuery lists the mail waiting in the mailroom, in fill order.
type GetPendingMailQuery struct {
	guard guard.ConstructorGuard
}

func NewGetPendingMailQuery() GetPendingMailQuery {
	return GetPendingMailQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPendingMailQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingMailQueryIsNotConstructed)
}

// GetPendingMailQueryResponse is the mailroom read model.
type GetPendingMailQueryResponse struct {
	LightBudget int
	Items       []PendingMail
}

// PendingMail is one unassigned item.
type PendingMail struct {
	ID          string
	Destination int
	Arrival     int
	Weight      int
	Fragile     bool
	Priority    int
}
