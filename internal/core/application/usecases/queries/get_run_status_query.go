package queries

import (
	"errors"

	"automail/internal/pkg/guard"
)

var ErrGetRunStatusQueryIsNotConstructed = errors.New(
	"GetRunStatusQuery must be created via NewGetRunStatusQuery constructor",
)

// GetRunStatusQuery reads the run's clock and item counters.
type GetRunStatusQuery struct {
	guard guard.ConstructorGuard
}

func NewGetRunStatusQuery() GetRunStatusQuery {
	return GetRunStatusQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetRunStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetRunStatusQueryIsNotConstructed)
}

// GetRunStatusQueryResponse summarizes a run.
type GetRunStatusQueryResponse struct {
	RunID     string
	Tick      int
	Submitted int
	Dropped   int
	Delivered int
	InFlight  int
	Complete  bool
}
