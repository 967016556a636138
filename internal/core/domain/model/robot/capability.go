package robot

import (
	"errors"
	"fmt"
	"strings"

	"automail/internal/pkg/errs"
)

// ErrUnknownAgentType is returned when a roster declares a robot type with no capability profile.
var ErrUnknownAgentType = errors.New("unknown robot type")

// Capability is the fixed profile of one robot: what it may carry and how fast it moves.
// It replaces a type-per-robot hierarchy; every capability check reads a field of this value.
type Capability struct {
	// CanCarryHeavy allows items of mail.Heavy weight class.
	CanCarryHeavy bool
	// MaxFragile is how many fragile items the robot may hold at once; 0 means none.
	MaxFragile int
	// CarrierCapacity is the size of the robot's carrier.
	CarrierCapacity int
	// MovementDelay is the number of steps one floor of movement takes (≥ 1).
	MovementDelay int
}

// CanCarryFragile reports whether the robot may ever hold a fragile item.
func (c Capability) CanCarryFragile() bool {
	return c.MaxFragile > 0
}

// Validate checks the profile's numeric bounds.
func (c Capability) Validate() error {
	var problems []error
	if c.CarrierCapacity <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"carrier capacity", fmt.Errorf("%d is not greater than 0", c.CarrierCapacity)))
	}
	if c.MaxFragile < 0 || c.MaxFragile > c.CarrierCapacity {
		problems = append(problems, errs.NewValueIsOutOfRangeError(
			"max fragile", c.MaxFragile, 0, c.CarrierCapacity))
	}
	if c.MovementDelay < 1 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"movement delay", fmt.Errorf("%d is not greater than 0", c.MovementDelay)))
	}
	return errors.Join(problems...)
}

// Kind is the declared type of a robot in a roster.
type Kind string

const (
	// Standard robots carry any weight, no fragile items, four at a time.
	Standard Kind = "standard"
	// Weak robots carry light items only.
	Weak Kind = "weak"
	// Big robots carry any weight, six at a time.
	Big Kind = "big"
	// Careful robots carry one fragile item at a time and move at half speed.
	Careful Kind = "careful"
)

func profiles() map[Kind]Capability {
	return map[Kind]Capability{
		Standard: {CanCarryHeavy: true, MaxFragile: 0, CarrierCapacity: 4, MovementDelay: 1},
		Weak:     {CanCarryHeavy: false, MaxFragile: 0, CarrierCapacity: 4, MovementDelay: 1},
		Big:      {CanCarryHeavy: true, MaxFragile: 0, CarrierCapacity: 6, MovementDelay: 1},
		Careful:  {CanCarryHeavy: true, MaxFragile: 1, CarrierCapacity: 3, MovementDelay: 2},
	}
}

// Kinds lists every known robot type.
func Kinds() []Kind {
	return []Kind{Standard, Weak, Big, Careful}
}

// ParseKind maps a declared type tag (case-insensitive) to its Kind.
func ParseKind(tag string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(tag)))
	if _, ok := profiles()[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAgentType, tag)
	}
	return k, nil
}

// Capability returns the fixed profile of the kind.
func (k Kind) Capability() (Capability, error) {
	c, ok := profiles()[k]
	if !ok {
		return Capability{}, fmt.Errorf("%w: %q", ErrUnknownAgentType, string(k))
	}
	return c, nil
}

func (k Kind) String() string {
	return string(k)
}
