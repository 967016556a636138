// Package queries contains read operations on a simulation run.
// Queries return read models shaped for the status API and never change the run.
package queries

import (
	"errors"

	"automail/internal/pkg/guard"
)

var ErrGetAllRobotsQueryIsNotConstructed = errors.New(
	"GetAllRobotsQuery must be created via NewGetAllRobotsQuery constructor",
)

// GetAllRobotsQuery lists every robot of the run with its current state.
type GetAllRobotsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetAllRobotsQuery() GetAllRobotsQuery {
	return GetAllRobotsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllRobotsQuery) Validate() error {
	return q.guard.Validate(ErrGetAllRobotsQueryIsNotConstructed)
}

// GetAllRobotsQueryResponse is one robot in the read model.
type GetAllRobotsQueryResponse struct {
	ID               string
	Kind             string
	State            string
	CurrentFloor     int
	DestinationFloor int
	Dispatched       bool
	Load             int
	Capacity         int
	FragileCount     int
	DeliveryItemID   string
}
