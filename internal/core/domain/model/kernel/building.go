package kernel

import (
	"errors"
	"fmt"

	"automail/internal/pkg/errs"
	"automail/internal/pkg/guard"
)

// Floor is a floor index inside the building. Floors are plain integers so that
// the ground floor may be 0; validity is always checked against a Building.
type Floor int

// Toward returns the floor one step closer to target, or f itself when already there.
//
// Example:
//
//	kernel.Floor(2).Toward(5) // 3
//	kernel.Floor(2).Toward(0) // 1
func (f Floor) Toward(target Floor) Floor {
	switch {
	case f < target:
		return f + 1
	case f > target:
		return f - 1
	default:
		return f
	}
}

// Distance returns the number of floors between f and other.
func (f Floor) Distance(other Floor) int {
	if f > other {
		return int(f - other)
	}
	return int(other - f)
}

// ErrBuildingIsNotConstructed is returned when a zero value Building is used.
var ErrBuildingIsNotConstructed = errs.NewValueIsRequiredError(
	"building must be created via NewBuilding constructor")

// Building describes the vertical extent robots move in and where the mailroom is.
// It is an immutable value object; the zero value is invalid.
//
// Business rules:
//   - lowest ≤ top
//   - the mailroom lies within [lowest, top]
//
// Example:
//
//	b, err := kernel.NewBuilding(0, 14, 0)
//	if err != nil {
//	    // Handle validation error
//	}
//	dest, err := b.Floor(5)
type Building struct { //nolint:recvcheck //using for validation
	lowest   Floor
	top      Floor
	mailroom Floor
	guard    guard.ConstructorGuard
}

// NewBuilding creates a Building spanning floors [lowest, top] with the mailroom on the given floor.
func NewBuilding(lowest, top, mailroom Floor) (Building, error) {
	b := Building{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(b.setRange(lowest, top), b.setMailroom(mailroom, lowest, top)); err != nil {
		return Building{}, err
	}

	return b, nil
}

// Validate checks that the Building was created through NewBuilding.
func (b Building) Validate() error {
	return b.guard.Validate(ErrBuildingIsNotConstructed)
}

// Lowest returns the lowest reachable floor.
func (b Building) Lowest() Floor {
	return b.lowest
}

// Top returns the highest reachable floor.
func (b Building) Top() Floor {
	return b.top
}

// Mailroom returns the floor robots start from and return to.
func (b Building) Mailroom() Floor {
	return b.mailroom
}

// Floors returns the number of floors in the building.
func (b Building) Floors() int {
	return int(b.top-b.lowest) + 1
}

// Contains reports whether f is a floor of this building.
func (b Building) Contains(f Floor) bool {
	return f >= b.lowest && f <= b.top
}

// Floor converts n into a Floor of this building, rejecting floors outside of it.
func (b Building) Floor(n int) (Floor, error) {
	if err := b.Validate(); err != nil {
		return 0, err
	}

	f := Floor(n)
	if !b.Contains(f) {
		return 0, errs.NewValueIsOutOfRangeError("floor", n, int(b.lowest), int(b.top))
	}
	return f, nil
}

func (b Building) String() string {
	return fmt.Sprintf("Building(%d..%d, mailroom %d)", b.lowest, b.top, b.mailroom)
}

func (b *Building) setRange(lowest, top Floor) error {
	if top < lowest {
		return errs.NewValueIsInvalidErrorWithCause(
			"top",
			fmt.Errorf("top floor %d is below lowest floor %d", top, lowest),
		)
	}

	b.lowest = lowest
	b.top = top
	return nil
}

func (b *Building) setMailroom(mailroom, lowest, top Floor) error {
	if mailroom < lowest || mailroom > top {
		return errs.NewValueIsOutOfRangeError("mailroom", int(mailroom), int(lowest), int(top))
	}

	b.mailroom = mailroom
	return nil
}
