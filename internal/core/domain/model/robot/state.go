package robot

import (
	"fmt"

	"automail/internal/pkg/errs"
)

// State is the position of a robot in its delivery cycle.
type State int

const (
	// Unknown is the zero value and never a valid state.
	Unknown State = iota
	// Returning robots move back toward the mailroom.
	Returning
	// Waiting robots idle in the mailroom, registered with the allocator.
	Waiting
	// Delivering robots carry mail toward a destination floor.
	Delivering
)

func getStateStrings() map[State]string {
	return map[State]string{
		Unknown:    "UNKNOWN",
		Returning:  "RETURNING",
		Waiting:    "WAITING",
		Delivering: "DELIVERING",
	}
}

func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate rejects Unknown and out-of-range values.
func (s State) Validate() error {
	if s < Returning || s > Delivering {
		return errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%d is not a valid state", s))
	}
	return nil
}
