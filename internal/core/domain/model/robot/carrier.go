package robot

import (
	"errors"
	"fmt"

	"automail/internal/core/domain/model/mail"
	"automail/internal/pkg/errs"
	"automail/internal/pkg/guard"
)

var (
	// ErrCapacityExceeded is returned when an item is pushed into a full carrier.
	ErrCapacityExceeded = errors.New("carrier capacity exceeded")

	// ErrCarrierEmpty is returned when popping from an empty carrier.
	ErrCarrierEmpty = errors.New("carrier is empty")

	// ErrCarrierIsNotConstructed indicates that the Carrier was not
	// properly initialized through the NewCarrier constructor function.
	ErrCarrierIsNotConstructed = errors.New("Carrier must be created via NewCarrier constructor")
)

// Carrier is the bounded container ("tube") a robot loads mail into.
// Items come out in last-in-first-out order, so the item pushed last is delivered first.
//
// Key business rules:
//   - Must be constructed through NewCarrier
//   - Never holds more than its capacity
//   - FragileCount always equals the number of fragile items currently held
//
// A Carrier has no thread of control of its own: the Allocator pushes while filling,
// the owning Robot pops while delivering.
//
// Example usage:
//
//	carrier, err := robot.NewCarrier(4)
//	if err != nil {
//	    return err
//	}
//	if err := carrier.Push(item); err != nil {
//	    return err
//	}
//	next, err := carrier.Pop()
type Carrier struct {
	capacity     int
	items        []*mail.Item
	fragileCount int
	guard        guard.ConstructorGuard
}

// NewCarrier creates an empty carrier holding at most capacity items.
func NewCarrier(capacity int) (*Carrier, error) {
	if capacity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"capacity",
			fmt.Errorf("%d is not greater than 0", capacity),
		)
	}

	return &Carrier{
		capacity: capacity,
		items:    make([]*mail.Item, 0, capacity),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the Carrier was created through NewCarrier.
func (c *Carrier) Validate() error {
	if c == nil {
		return ErrCarrierIsNotConstructed
	}
	return c.guard.Validate(ErrCarrierIsNotConstructed)
}

// Push puts item on top of the carrier.
// Returns ErrCapacityExceeded when the carrier is already full.
func (c *Carrier) Push(item *mail.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	if c.IsFull() {
		return ErrCapacityExceeded
	}

	c.items = append(c.items, item)
	if item.Fragile() {
		c.fragileCount++
	}
	return nil
}

// Pop removes and returns the most recently pushed item.
// Returns ErrCarrierEmpty when nothing is left.
func (c *Carrier) Pop() (*mail.Item, error) {
	if c.IsEmpty() {
		return nil, ErrCarrierEmpty
	}

	last := len(c.items) - 1
	item := c.items[last]
	c.items[last] = nil
	c.items = c.items[:last]

	if item.Fragile() {
		c.fragileCount--
	}
	return item, nil
}

// Peek returns the next item Pop would return, or nil when the carrier is empty.
func (c *Carrier) Peek() *mail.Item {
	if c.IsEmpty() {
		return nil
	}
	return c.items[len(c.items)-1]
}

// PeekFragile reports whether the next item to be popped is fragile.
func (c *Carrier) PeekFragile() bool {
	next := c.Peek()
	return next != nil && next.Fragile()
}

func (c *Carrier) FragileCount() int {
	return c.fragileCount
}

func (c *Carrier) Len() int {
	return len(c.items)
}

func (c *Carrier) Capacity() int {
	return c.capacity
}

// Free returns how many more items fit.
func (c *Carrier) Free() int {
	return c.capacity - len(c.items)
}

func (c *Carrier) IsEmpty() bool {
	return len(c.items) == 0
}

func (c *Carrier) IsFull() bool {
	return len(c.items) >= c.capacity
}

// Items returns a copy of the held items, bottom first (the last element pops first).
func (c *Carrier) Items() []*mail.Item {
	out := make([]*mail.Item, len(c.items))
	copy(out, c.items)
	return out
}
