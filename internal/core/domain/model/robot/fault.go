package robot

import (
	"errors"
	"fmt"

	"automail/internal/core/domain/model/kernel"
)

// Scheduling defects. A correct allocator never lets a robot reach any of these;
// they exist to make scheduling bugs loud.
var (
	// ErrItemTooHeavy is returned when a robot that cannot carry heavy items starts delivering one.
	ErrItemTooHeavy = errors.New("item too heavy for robot")
	// ErrFragileItemBroken is returned when a robot that cannot carry fragile items moves with one.
	ErrFragileItemBroken = errors.New("fragile item broken")
	// ErrExcessiveDelivery is returned when a robot delivers more items in one run than its carrier holds.
	ErrExcessiveDelivery = errors.New("excessive delivery")
)

// FaultError carries the context of a scheduling defect: which robot, which item, when.
// errors.Is matches the wrapped sentinel.
type FaultError struct {
	RobotID string
	ItemID  string
	Tick    kernel.Tick
	Err     error
}

func (e *FaultError) Error() string {
	if e.ItemID == "" {
		return fmt.Sprintf("robot %s at tick %d: %v", e.RobotID, e.Tick, e.Err)
	}
	return fmt.Sprintf("robot %s at tick %d (item %s): %v", e.RobotID, e.Tick, e.ItemID, e.Err)
}

func (e *FaultError) Unwrap() error {
	return e.Err
}

// IsDefect reports whether err signals a scheduling defect that must abort the run.
func IsDefect(err error) bool {
	return errors.Is(err, ErrCapacityExceeded) ||
		errors.Is(err, ErrItemTooHeavy) ||
		errors.Is(err, ErrFragileItemBroken) ||
		errors.Is(err, ErrExcessiveDelivery)
}
