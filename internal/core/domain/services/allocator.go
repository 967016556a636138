package services

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"automail/internal/core/domain/model/kernel"
	"automail/internal/core/domain/model/mail"
	"automail/internal/core/domain/model/robot"
)

// ErrNoCapableAgentType is returned by Submit for an item that no registered robot type could ever carry.
// It is an admission-time rejection: callers drop the item and carry on.
var ErrNoCapableAgentType = errors.New("no capable robot type")

// Allocator is the mailroom scheduler: it holds every undelivered, unassigned item
// and, once per tick, fills waiting robots from it.
//
// Key responsibilities:
//   - Admitting items and rejecting those no robot type can carry
//   - Keeping the pool ordered by priority, then destination, then submission order
//   - Filling robots within their capacity, heavy and fragile limits
//   - Reserving light items for light-only robots through the light budget
//
// Business rules:
//   - Heavy-capable robots are filled before light-only robots
//   - A robot dispatched at tick t is not filled again until it has left and come back
//   - The light budget always equals the number of light items in the pool
//   - A light-only robot stops scanning as soon as the light budget is exhausted
//
// The Allocator implements robot.MailPool and is driven from a single goroutine.
//
// Example usage:
//
//	allocator := services.NewAllocator()
//	robots, _ := robot.NewRoster(tags, building.Mailroom(), allocator, report, kernel.NewSequence("R"))
//	for _, r := range robots {
//	    _ = r.Step(0) // registers every robot
//	}
//	if err := allocator.Submit(item); errors.Is(err, services.ErrNoCapableAgentType) {
//	    // drop the item
//	}
//	err := allocator.Step(clock.Advance())
type Allocator struct {
	pool        []*mail.Item
	lightBudget int

	fragileCapable bool
	heavyCapable   bool

	waiting []*robot.Robot
}

// NewAllocator creates an empty allocator with no registered robots.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Submit admits a new item into the pool.
// Returns ErrNoCapableAgentType when the item is fragile and no fragile-capable robot
// has ever registered, or heavy and no heavy-capable robot has ever registered.
func (a *Allocator) Submit(item *mail.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	if item.Fragile() && !a.fragileCapable {
		return fmt.Errorf("%w: fragile item %s", ErrNoCapableAgentType, item.ID())
	}
	if item.IsHeavy() && !a.heavyCapable {
		return fmt.Errorf("%w: heavy item %s", ErrNoCapableAgentType, item.ID())
	}

	a.insert(item)
	return nil
}

// Return puts an item drained from a robot's carrier back into the pool.
// Returned items were admitted once already and skip the admission checks.
func (a *Allocator) Return(item *mail.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	a.insert(item)
	return nil
}

// RegisterWaiting adds r to the fill order. Heavy-capable robots are placed after
// the last heavy-capable robot already waiting, ahead of every light-only robot.
// Registering a robot that is already waiting has no effect.
func (a *Allocator) RegisterWaiting(r *robot.Robot) {
	if slices.ContainsFunc(a.waiting, r.IsEqual) {
		return
	}

	capability := r.Capability()
	if capability.CanCarryFragile() {
		a.fragileCapable = true
	}
	if !capability.CanCarryHeavy {
		a.waiting = append(a.waiting, r)
		return
	}

	a.heavyCapable = true
	at := 0
	for i, w := range a.waiting {
		if w.Capability().CanCarryHeavy {
			at = i + 1
		}
	}
	a.waiting = slices.Insert(a.waiting, at, r)
}

// DeregisterWaiting removes r from the fill order.
func (a *Allocator) DeregisterWaiting(r *robot.Robot) {
	a.waiting = slices.DeleteFunc(a.waiting, r.IsEqual)
}

// Step fills every waiting, not yet dispatched robot in fill order and dispatches
// those that received at least one item.
// A carrier refusing an item is a scheduling defect and is returned as *robot.FaultError.
func (a *Allocator) Step(tick kernel.Tick) error {
	for _, r := range slices.Clone(a.waiting) {
		if len(a.pool) == 0 {
			return nil
		}
		if !r.IsWaiting() || r.IsDispatched() {
			continue
		}
		if err := a.fill(tick, r); err != nil {
			return err
		}
	}
	return nil
}

// Pending returns the pool in fill order.
func (a *Allocator) Pending() []*mail.Item {
	return slices.Clone(a.pool)
}

// Len returns the number of items in the pool.
func (a *Allocator) Len() int {
	return len(a.pool)
}

// LightBudget returns how many light items are still unreserved.
func (a *Allocator) LightBudget() int {
	return a.lightBudget
}

// WaitingRobots returns the fill order.
func (a *Allocator) WaitingRobots() []*robot.Robot {
	return slices.Clone(a.waiting)
}

func (a *Allocator) fill(tick kernel.Tick, r *robot.Robot) error {
	capability := r.Capability()
	carrier := r.Carrier()
	free := carrier.Free()
	fragileHeld := carrier.FragileCount()

	staged := make([]*mail.Item, 0, free)
	for i := 0; i < len(a.pool) && len(staged) < free; {
		item := a.pool[i]

		if item.Fragile() && (!capability.CanCarryFragile() || fragileHeld >= capability.MaxFragile) {
			i++
			continue
		}

		if !capability.CanCarryHeavy {
			if a.lightBudget <= 0 {
				break
			}
			if item.IsHeavy() {
				i++
				continue
			}
		}

		staged = append(staged, item)
		a.pool = slices.Delete(a.pool, i, i+1)
		if !item.IsHeavy() {
			a.lightBudget--
		}
		if item.Fragile() {
			fragileHeld++
		}
	}

	if len(staged) == 0 {
		return nil
	}

	// the first selected item goes on top so it is delivered first
	for i := len(staged) - 1; i >= 0; i-- {
		if err := carrier.Push(staged[i]); err != nil {
			return &robot.FaultError{RobotID: r.ID(), ItemID: staged[i].ID(), Tick: tick, Err: err}
		}
	}
	r.Dispatch(tick)
	return nil
}

func (a *Allocator) insert(item *mail.Item) {
	a.pool = append(a.pool, item)
	if !item.IsHeavy() {
		a.lightBudget++
	}

	slices.SortStableFunc(a.pool, func(x, y *mail.Item) int {
		if c := cmp.Compare(y.Priority(), x.Priority()); c != 0 {
			return c
		}
		return cmp.Compare(y.Destination(), x.Destination())
	})
}
