package mail

import (
	"errors"
	"fmt"
	"math"

	"automail/internal/core/domain/model/kernel"
	"automail/internal/pkg/errs"
	"automail/internal/pkg/guard"
)

const (
	// HeavyThreshold is the weight at and above which an item is heavy.
	HeavyThreshold = 2000
	// DefaultPriority is the priority of ordinary (non-priority) mail.
	DefaultPriority = 1
)

// ErrItemIsNotConstructed is returned when a zero value Item is used.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or NewPriorityItem constructor")

// Item is a mail item waiting in the mailroom or travelling inside a robot's carrier.
// Items are immutable: every scheduling attribute (priority, destination, weight class,
// fragility) is fixed at construction.
//
// Business rules:
//   - id is required
//   - weight is not negative
//   - priority mail has a priority level ≥ 1; ordinary mail always ranks as DefaultPriority
//   - the destination is a floor of the building (enforced by kernel.Building.Floor)
//
// Example usage:
//
//	dest, _ := building.Floor(5)
//	item, err := mail.NewPriorityItem("M7", dest, 12, 850, false, 10)
//	if err != nil {
//	    // Handle validation error
//	}
//	item.WeightClass() // mail.Light
type Item struct {
	id          string
	destination kernel.Floor
	arrival     kernel.Tick
	weight      int
	fragile     bool
	priority    int
	hasPriority bool
	guard       guard.ConstructorGuard
}

// NewItem creates an ordinary mail item.
func NewItem(id string, destination kernel.Floor, arrival kernel.Tick, weight int, fragile bool) (*Item, error) {
	item := &Item{
		destination: destination,
		fragile:     fragile,
		priority:    DefaultPriority,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setArrival(arrival),
		item.setWeight(weight),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// NewPriorityItem creates a priority mail item with the given priority level.
func NewPriorityItem(
	id string,
	destination kernel.Floor,
	arrival kernel.Tick,
	weight int,
	fragile bool,
	priority int,
) (*Item, error) {
	item := &Item{
		destination: destination,
		fragile:     fragile,
		hasPriority: true,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setArrival(arrival),
		item.setWeight(weight),
		item.setPriority(priority),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate checks that the Item was built by one of its constructors.
func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// IsEqual compares items by id.
func (i *Item) IsEqual(other *Item) bool {
	return other != nil && i.id == other.id
}

func (i *Item) ID() string {
	return i.id
}

func (i *Item) Destination() kernel.Floor {
	return i.destination
}

func (i *Item) Arrival() kernel.Tick {
	return i.arrival
}

func (i *Item) Weight() int {
	return i.weight
}

func (i *Item) Fragile() bool {
	return i.fragile
}

// Priority returns the scheduling priority: the priority level for priority mail,
// DefaultPriority otherwise.
func (i *Item) Priority() int {
	return i.priority
}

// IsPriorityMail reports whether the item was created as priority mail.
func (i *Item) IsPriorityMail() bool {
	return i.hasPriority
}

// WeightClass classifies the item against HeavyThreshold.
func (i *Item) WeightClass() WeightClass {
	if i.weight >= HeavyThreshold {
		return Heavy
	}
	return Light
}

// IsHeavy is shorthand for WeightClass() == Heavy.
func (i *Item) IsHeavy() bool {
	return i.WeightClass() == Heavy
}

// Score measures how late the item was delivered:
//
//	(deliveredAt - arrival)^penalty * (1 + sqrt(level))
//
// where level is the priority level of priority mail and 0 for ordinary mail.
func (i *Item) Score(deliveredAt kernel.Tick, penalty float64) float64 {
	level := 0.0
	if i.hasPriority {
		level = float64(i.priority)
	}
	elapsed := float64(deliveredAt - i.arrival)
	return math.Pow(elapsed, penalty) * (1 + math.Sqrt(level))
}

func (i *Item) String() string {
	s := fmt.Sprintf("Mail Item:: ID: %6s | Arrival: %4d | Destination: %2d | Weight: %4d | Fragile: %t",
		i.id, i.arrival, i.destination, i.weight, i.fragile)
	if i.hasPriority {
		s += fmt.Sprintf(" | Priority: %3d", i.priority)
	}
	return s
}

func (i *Item) setID(id string) error {
	if id == "" {
		return errs.NewValueIsRequiredError("id")
	}
	i.id = id
	return nil
}

func (i *Item) setArrival(arrival kernel.Tick) error {
	if arrival < 0 {
		return errs.NewValueIsInvalidErrorWithCause("arrival", fmt.Errorf("%d is before the first tick", arrival))
	}
	i.arrival = arrival
	return nil
}

func (i *Item) setWeight(weight int) error {
	if weight < 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%d is negative", weight))
	}
	i.weight = weight
	return nil
}

func (i *Item) setPriority(priority int) error {
	if priority < DefaultPriority {
		return errs.NewValueIsInvalidErrorWithCause(
			"priority",
			fmt.Errorf("%d is lower than %d", priority, DefaultPriority),
		)
	}
	i.priority = priority
	return nil
}
