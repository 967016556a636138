package simulation

import (
	"errors"
	"slices"
	"sync"

	"automail/internal/core/domain/model/kernel"
	"automail/internal/core/domain/model/mail"
	"automail/internal/core/domain/model/robot"
	"automail/internal/core/domain/services"
	"automail/internal/pkg/errs"
)

// ErrSimulationIsNotConstructed is returned when using an improperly initialized Simulation.
var ErrSimulationIsNotConstructed = errors.New("Simulation must be created via New constructor")

// Transition is one robot changing state during a step.
type Transition struct {
	RobotID string
	From    robot.State
	To      robot.State
	Floor   kernel.Floor
	Load    int
}

// Simulation is the context of one run: the clock, the allocator, the robots and
// the mail still to arrive. The step driver owns it; every core call happens on
// the driver's goroutine, and the mutex only lets the status API take snapshots
// between those calls.
type Simulation struct {
	mu sync.Mutex

	runID     kernel.UUID
	building  kernel.Building
	clock     *kernel.Clock
	allocator *services.Allocator
	robots    []*robot.Robot
	arrivals  services.Arrivals
	mailIDs   *kernel.Sequence
	sink      *countingSink

	lastArrival kernel.Tick
	started     bool
	submitted   int
	dropped     int
}

type countingSink struct {
	next      robot.DeliverySink
	delivered int
}

func (s *countingSink) Deliver(item *mail.Item) {
	s.delivered++
	s.next.Deliver(item)
}

// New builds a run: one robot per tag at the mailroom, all delivering into sink.
// arrivals may be empty when mail is only submitted through the API.
func New(
	runID kernel.UUID,
	building kernel.Building,
	tags []string,
	arrivals services.Arrivals,
	clock *kernel.Clock,
	sink robot.DeliverySink,
) (*Simulation, error) {
	if err := errors.Join(runID.Validate(), building.Validate()); err != nil {
		return nil, err
	}
	if clock == nil {
		return nil, errs.NewValueIsRequiredError("clock")
	}
	if sink == nil {
		return nil, errs.NewValueIsRequiredError("sink")
	}
	if len(tags) == 0 {
		return nil, errs.NewValueIsRequiredError("robots")
	}

	s := &Simulation{
		runID:     runID,
		building:  building,
		clock:     clock,
		allocator: services.NewAllocator(),
		arrivals:  arrivals,
		mailIDs:   kernel.NewSequence("P"),
		sink:      &countingSink{next: sink},
	}
	for _, t := range arrivals.Ticks() {
		s.lastArrival = t
	}

	robots, err := robot.NewRoster(tags, building.Mailroom(), s.allocator, s.sink, kernel.NewSequence("R"))
	if err != nil {
		return nil, err
	}
	s.robots = robots
	return s, nil
}

func (s *Simulation) RunID() kernel.UUID {
	return s.runID
}

func (s *Simulation) Building() kernel.Building {
	return s.building
}

// Now returns the current tick.
func (s *Simulation) Now() kernel.Tick {
	return s.clock.Now()
}

// Start steps every robot once at tick 0 so that all of them register with the
// allocator before any mail is admitted. Calling it again has no effect.
func (s *Simulation) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	for _, r := range s.robots {
		if err := r.Step(s.clock.Now()); err != nil {
			return err
		}
	}
	s.started = true
	return nil
}

// Advance moves the clock one tick forward.
func (s *Simulation) Advance() kernel.Tick {
	return s.clock.Advance()
}

// ArrivalsAt returns the generated mail arriving at tick.
func (s *Simulation) ArrivalsAt(tick kernel.Tick) []*mail.Item {
	return s.arrivals.At(tick)
}

// NextMailID hands out ids for mail submitted from outside the generator.
func (s *Simulation) NextMailID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mailIDs.Next()
}

// Submit admits item. A rejected item is counted as dropped and the
// services.ErrNoCapableAgentType error is returned to the caller.
func (s *Simulation) Submit(item *mail.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.allocator.Submit(item); err != nil {
		if errors.Is(err, services.ErrNoCapableAgentType) {
			s.dropped++
		}
		return err
	}
	s.submitted++
	return nil
}

// Allocate runs the allocator's fill step.
func (s *Simulation) Allocate(tick kernel.Tick) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allocator.Step(tick)
}

// MoveRobots steps every robot in roster order and reports the state changes.
// It stops at the first fault.
func (s *Simulation) MoveRobots(tick kernel.Tick) ([]Transition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var transitions []Transition
	for _, r := range s.robots {
		before := r.State()
		if err := r.Step(tick); err != nil {
			return transitions, err
		}
		if after := r.State(); after != before {
			transitions = append(transitions, Transition{
				RobotID: r.ID(),
				From:    before,
				To:      after,
				Floor:   r.CurrentFloor(),
				Load:    r.Carrier().Len(),
			})
		}
	}
	return transitions, nil
}

// Recall aborts the run of the robot with the given id.
func (s *Simulation) Recall(robotID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.robots {
		if r.ID() == robotID {
			return r.Recall(s.clock.Now())
		}
	}
	return errs.NewObjectNotFoundError("robotID", robotID)
}

// Robots returns a snapshot of every robot in roster order.
func (s *Simulation) Robots() []robot.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]robot.Snapshot, 0, len(s.robots))
	for _, r := range s.robots {
		out = append(out, r.Snapshot())
	}
	return out
}

// Pending returns the unassigned mail in fill order.
func (s *Simulation) Pending() []*mail.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allocator.Pending()
}

func (s *Simulation) LightBudget() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allocator.LightBudget()
}

// Stats are the run's item counters.
type Stats struct {
	Submitted int
	Dropped   int
	Delivered int
	InFlight  int
}

// Stats returns the item counters. Submitted always equals Delivered + InFlight.
func (s *Simulation) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statsLocked()
}

// IsComplete reports whether every generated item has arrived and nothing is left to deliver.
func (s *Simulation) IsComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock.Now() >= s.lastArrival && s.statsLocked().InFlight == 0
}

func (s *Simulation) statsLocked() Stats {
	inFlight := s.allocator.Len()
	for _, r := range s.robots {
		inFlight += r.Carrier().Len()
		if r.DeliveryItem() != nil {
			inFlight++
		}
	}
	return Stats{
		Submitted: s.submitted,
		Dropped:   s.dropped,
		Delivered: s.sink.delivered,
		InFlight:  inFlight,
	}
}

// RobotIDs returns the roster's ids in order.
func (s *Simulation) RobotIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.robots))
	for _, r := range s.robots {
		ids = append(ids, r.ID())
	}
	return slices.Clip(ids)
}
