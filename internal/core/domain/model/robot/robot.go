package robot

import (
	"errors"
	"fmt"

	"automail/internal/core/domain/model/kernel"
	"automail/internal/core/domain/model/mail"
	"automail/internal/pkg/errs"
	"automail/internal/pkg/guard"
)

// ErrRobotIsNotConstructed is returned when using an improperly initialized Robot.
var ErrRobotIsNotConstructed = errors.New("Robot must be created via NewRobot constructor")

// MailPool is the side of the allocator a robot talks to while in the mailroom.
type MailPool interface {
	// Return puts an undelivered item back into the pool.
	Return(item *mail.Item) error
	// RegisterWaiting makes the robot eligible for filling.
	RegisterWaiting(r *Robot)
	// DeregisterWaiting removes the robot from the fill order.
	DeregisterWaiting(r *Robot)
}

// DeliverySink receives every delivered item exactly once.
type DeliverySink interface {
	Deliver(item *mail.Item)
}

// Robot is a mail-carrying agent. It is an aggregate root that owns one Carrier
// and moves through a three-state cycle:
//
//	RETURNING ──(at mailroom: drain, register)──▶ WAITING
//	WAITING ──(loaded and dispatched on an earlier tick)──▶ DELIVERING
//	DELIVERING ──(carrier empty after a delivery)──▶ RETURNING
//
// Key responsibilities:
//   - Moving one floor per effective step, slowed by the capability's movement delay
//   - Delivering its carrier's items in pop order to the delivery sink
//   - Returning anything still loaded to the mail pool when back in the mailroom
//   - Reporting scheduling defects as *FaultError
//
// Business rules:
//   - A robot dispatched at tick t starts delivering at tick t+1 at the earliest
//   - A robot that cannot carry heavy items never starts a route with a heavy item
//   - A robot that cannot carry fragile items never moves with a fragile item active or next
//   - A robot never delivers more items in one run than its carrier capacity
//
// Example usage:
//
//	r, err := robot.NewRobot("R0", robot.Standard, building.Mailroom(), allocator, report)
//	if err != nil {
//	    return err
//	}
//	if err := r.Step(clock.Now()); err != nil {
//	    return err // scheduling defect
//	}
type Robot struct {
	id         string
	kind       Kind
	capability Capability
	state      State

	origin           kernel.Floor
	currentFloor     kernel.Floor
	destinationFloor kernel.Floor

	dispatched       bool
	dispatchedAt     kernel.Tick
	deliveredThisRun int

	carrier      *Carrier
	deliveryItem *mail.Item
	moveCalls    int

	pool MailPool
	sink DeliverySink

	guard guard.ConstructorGuard
}

// NewRobot creates a robot of the given kind standing at origin (the mailroom).
// New robots start RETURNING so that their first step registers them with the pool.
func NewRobot(id string, kind Kind, origin kernel.Floor, pool MailPool, sink DeliverySink) (*Robot, error) {
	r := &Robot{
		state:            Returning,
		origin:           origin,
		currentFloor:     origin,
		destinationFloor: origin,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setKind(kind),
		r.setCollaborators(pool, sink),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate checks that the Robot was created through NewRobot.
func (r *Robot) Validate() error {
	if r == nil {
		return ErrRobotIsNotConstructed
	}
	return r.guard.Validate(ErrRobotIsNotConstructed)
}

// IsEqual compares robots by id.
func (r *Robot) IsEqual(other *Robot) bool {
	if other == nil {
		return false
	}
	return r.id == other.id
}

func (r *Robot) ID() string {
	return r.id
}

func (r *Robot) Kind() Kind {
	return r.kind
}

func (r *Robot) Capability() Capability {
	return r.capability
}

func (r *Robot) State() State {
	return r.state
}

// IsWaiting reports whether the robot idles in the mailroom.
func (r *Robot) IsWaiting() bool {
	return r.state == Waiting
}

func (r *Robot) Origin() kernel.Floor {
	return r.origin
}

func (r *Robot) CurrentFloor() kernel.Floor {
	return r.currentFloor
}

func (r *Robot) DestinationFloor() kernel.Floor {
	return r.destinationFloor
}

func (r *Robot) IsDispatched() bool {
	return r.dispatched
}

func (r *Robot) DeliveredThisRun() int {
	return r.deliveredThisRun
}

// Carrier returns the robot's carrier. The allocator pushes into it while filling.
func (r *Robot) Carrier() *Carrier {
	return r.carrier
}

// DeliveryItem returns the item being carried to its floor right now, or nil.
func (r *Robot) DeliveryItem() *mail.Item {
	return r.deliveryItem
}

// Dispatch marks the loaded robot as ready to leave. It is called by the allocator only,
// and takes effect on the first step after tick.
func (r *Robot) Dispatch(tick kernel.Tick) {
	r.dispatched = true
	r.dispatchedAt = tick
}

// Step advances the robot by one tick according to its state.
// Any returned error is a *FaultError describing a scheduling defect.
func (r *Robot) Step(tick kernel.Tick) error {
	if err := r.Validate(); err != nil {
		return err
	}

	switch r.state {
	case Returning:
		if r.currentFloor != r.origin {
			return r.moveTowards(tick, r.origin)
		}
		if err := r.drain(); err != nil {
			return err
		}
		r.state = Waiting
		r.pool.RegisterWaiting(r)
		return r.stepWaiting(tick)
	case Waiting:
		return r.stepWaiting(tick)
	case Delivering:
		return r.stepDelivering(tick)
	default:
		return r.state.Validate()
	}
}

// Recall aborts the current run: the active item goes back on top of the carrier
// and the robot heads for the mailroom, where everything still loaded returns to the pool.
// A waiting robot leaves the fill order and drains on its next step.
func (r *Robot) Recall(tick kernel.Tick) error {
	if err := r.Validate(); err != nil {
		return err
	}

	switch r.state {
	case Delivering:
		if r.deliveryItem != nil {
			if err := r.carrier.Push(r.deliveryItem); err != nil {
				return r.fault(tick, r.deliveryItem, err)
			}
			r.deliveryItem = nil
		}
	case Waiting:
		r.pool.DeregisterWaiting(r)
		r.dispatched = false
	}

	r.destinationFloor = r.origin
	r.state = Returning
	return nil
}

// Snapshot is a read-only view of a robot for logging and status reporting.
type Snapshot struct {
	ID               string
	Kind             Kind
	State            State
	CurrentFloor     kernel.Floor
	DestinationFloor kernel.Floor
	Dispatched       bool
	DeliveredThisRun int
	Load             int
	Capacity         int
	FragileCount     int
	DeliveryItemID   string
}

// Snapshot captures the robot's current state.
func (r *Robot) Snapshot() Snapshot {
	s := Snapshot{
		ID:               r.id,
		Kind:             r.kind,
		State:            r.state,
		CurrentFloor:     r.currentFloor,
		DestinationFloor: r.destinationFloor,
		Dispatched:       r.dispatched,
		DeliveredThisRun: r.deliveredThisRun,
	}
	if r.carrier != nil {
		s.Load = r.carrier.Len()
		s.Capacity = r.carrier.Capacity()
		s.FragileCount = r.carrier.FragileCount()
	}
	if r.deliveryItem != nil {
		s.DeliveryItemID = r.deliveryItem.ID()
	}
	return s
}

func (r *Robot) String() string {
	return fmt.Sprintf("%s(%s) %s floor %d [%d/%d]",
		r.id, r.kind, r.state, r.currentFloor, r.carrier.Len(), r.carrier.Capacity())
}

func (r *Robot) stepWaiting(tick kernel.Tick) error {
	if r.carrier.IsEmpty() || !r.dispatched || tick <= r.dispatchedAt {
		return nil
	}

	r.dispatched = false
	r.deliveredThisRun = 0
	if err := r.setRoute(tick); err != nil {
		return err
	}
	r.pool.DeregisterWaiting(r)
	r.state = Delivering
	return nil
}

func (r *Robot) stepDelivering(tick kernel.Tick) error {
	if r.currentFloor != r.destinationFloor {
		return r.moveTowards(tick, r.destinationFloor)
	}

	item := r.deliveryItem
	r.sink.Deliver(item)
	r.deliveryItem = nil
	r.deliveredThisRun++
	if r.deliveredThisRun > r.capability.CarrierCapacity {
		return r.fault(tick, item, ErrExcessiveDelivery)
	}

	if r.carrier.IsEmpty() {
		r.destinationFloor = r.origin
		r.state = Returning
		return nil
	}
	return r.setRoute(tick)
}

// setRoute activates the next item in the carrier and heads for its floor.
func (r *Robot) setRoute(tick kernel.Tick) error {
	item, err := r.carrier.Pop()
	if err != nil {
		return r.fault(tick, nil, err)
	}
	r.deliveryItem = item

	if !r.capability.CanCarryHeavy && item.IsHeavy() {
		return r.fault(tick, item, ErrItemTooHeavy)
	}

	r.destinationFloor = item.Destination()
	return nil
}

func (r *Robot) moveTowards(tick kernel.Tick, target kernel.Floor) error {
	if !r.capability.CanCarryFragile() {
		if r.deliveryItem != nil && r.deliveryItem.Fragile() {
			return r.fault(tick, r.deliveryItem, ErrFragileItemBroken)
		}
		if r.carrier.PeekFragile() {
			return r.fault(tick, r.carrier.Peek(), ErrFragileItemBroken)
		}
	}

	r.moveCalls++
	if r.moveCalls%r.capability.MovementDelay != 0 {
		return nil
	}
	r.currentFloor = r.currentFloor.Toward(target)
	return nil
}

// drain returns everything still in the carrier to the pool.
func (r *Robot) drain() error {
	for !r.carrier.IsEmpty() {
		item, err := r.carrier.Pop()
		if err != nil {
			return err
		}
		if err := r.pool.Return(item); err != nil {
			return err
		}
	}
	return nil
}

func (r *Robot) fault(tick kernel.Tick, item *mail.Item, err error) error {
	fe := &FaultError{RobotID: r.id, Tick: tick, Err: err}
	if item != nil {
		fe.ItemID = item.ID()
	}
	return fe
}

func (r *Robot) setID(id string) error {
	if id == "" {
		return errs.NewValueIsRequiredError("id")
	}
	r.id = id
	return nil
}

func (r *Robot) setKind(kind Kind) error {
	capability, err := kind.Capability()
	if err != nil {
		return err
	}
	if err := capability.Validate(); err != nil {
		return err
	}

	carrier, err := NewCarrier(capability.CarrierCapacity)
	if err != nil {
		return err
	}

	r.kind = kind
	r.capability = capability
	r.carrier = carrier
	return nil
}

func (r *Robot) setCollaborators(pool MailPool, sink DeliverySink) error {
	if pool == nil {
		return errs.NewValueIsRequiredError("pool")
	}
	if sink == nil {
		return errs.NewValueIsRequiredError("sink")
	}
	r.pool = pool
	r.sink = sink
	return nil
}
