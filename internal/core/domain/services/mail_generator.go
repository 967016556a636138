package services

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"automail/internal/core/domain/model/kernel"
	"automail/internal/core/domain/model/mail"
	"automail/internal/pkg/errs"
)

// MinMailWeight is the lightest item the generator produces.
const MinMailWeight = 200

// priorityLevels are the levels priority mail is drawn from.
var priorityLevels = []int{10, 100}

// GeneratorSettings describe the mail a MailGenerator produces.
type GeneratorSettings struct {
	Seed         uint64
	Count        int
	LastArrival  kernel.Tick
	PriorityRate float64
	FragileRate  float64
	MaxWeight    int
}

// Validate checks the settings' bounds.
func (s GeneratorSettings) Validate() error {
	var problems []error
	if s.Count < 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("count", fmt.Errorf("%d is negative", s.Count)))
	}
	if s.LastArrival < 1 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"last arrival", fmt.Errorf("%d is not greater than 0", s.LastArrival)))
	}
	if s.PriorityRate < 0 || s.PriorityRate > 1 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("priority rate", s.PriorityRate, 0, 1))
	}
	if s.FragileRate < 0 || s.FragileRate > 1 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("fragile rate", s.FragileRate, 0, 1))
	}
	if s.MaxWeight < MinMailWeight {
		problems = append(problems, errs.NewValueIsOutOfRangeError("max weight", s.MaxWeight, MinMailWeight, "unbounded"))
	}
	return errors.Join(problems...)
}

// Arrivals is generated mail grouped by the tick it reaches the mailroom.
type Arrivals map[kernel.Tick][]*mail.Item

// At returns the items arriving at tick, in id order.
func (a Arrivals) At(tick kernel.Tick) []*mail.Item {
	return a[tick]
}

// Total returns the number of items across all ticks.
func (a Arrivals) Total() int {
	n := 0
	for _, items := range a {
		n += len(items)
	}
	return n
}

// Ticks returns the arrival ticks in ascending order.
func (a Arrivals) Ticks() []kernel.Tick {
	ticks := make([]kernel.Tick, 0, len(a))
	for t := range a {
		ticks = append(ticks, t)
	}
	slices.Sort(ticks)
	return ticks
}

// MailGenerator produces a reproducible stream of mail for a building.
// The same settings and seed always yield the same items.
type MailGenerator struct {
	building kernel.Building
	settings GeneratorSettings
	rng      *rand.Rand
	ids      *kernel.Sequence
}

// NewMailGenerator creates a generator; ids supplies item ids ("M0", "M1", ...).
func NewMailGenerator(building kernel.Building, settings GeneratorSettings, ids *kernel.Sequence) (*MailGenerator, error) {
	if err := building.Validate(); err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if ids == nil {
		ids = kernel.NewSequence("M")
	}

	return &MailGenerator{
		building: building,
		settings: settings,
		rng:      rand.New(rand.NewPCG(settings.Seed, settings.Seed^0x9e3779b97f4a7c15)),
		ids:      ids,
	}, nil
}

// Generate draws every item. Destinations are uniform over the floors above the
// lowest one (the lowest floor itself in a single-floor building).
func (g *MailGenerator) Generate() (Arrivals, error) {
	arrivals := make(Arrivals)
	for range g.settings.Count {
		item, err := g.next()
		if err != nil {
			return nil, err
		}
		arrivals[item.Arrival()] = append(arrivals[item.Arrival()], item)
	}
	return arrivals, nil
}

func (g *MailGenerator) next() (*mail.Item, error) {
	id := g.ids.Next()
	arrival := kernel.Tick(1 + g.rng.IntN(int(g.settings.LastArrival)))
	weight := MinMailWeight + g.rng.IntN(g.settings.MaxWeight-MinMailWeight+1)
	fragile := g.rng.Float64() < g.settings.FragileRate

	lowest := int(g.building.Lowest())
	if g.building.Floors() > 1 {
		lowest++
	}
	destination, err := g.building.Floor(lowest + g.rng.IntN(int(g.building.Top())-lowest+1))
	if err != nil {
		return nil, err
	}

	if g.rng.Float64() < g.settings.PriorityRate {
		level := priorityLevels[g.rng.IntN(len(priorityLevels))]
		return mail.NewPriorityItem(id, destination, arrival, weight, fragile, level)
	}
	return mail.NewItem(id, destination, arrival, weight, fragile)
}
