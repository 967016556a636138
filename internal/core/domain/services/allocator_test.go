package services_test

import (
	"errors"
	"testing"

	"automail/internal/core/domain/model/kernel"
	"automail/internal/core/domain/model/mail"
	"automail/internal/core/domain/model/robot"
	"automail/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	delivered []*mail.Item
}

func (s *recordingSink) Deliver(item *mail.Item) {
	s.delivered = append(s.delivered, item)
}

// newFleet builds robots from tags and steps each once at tick 0 so they register.
func newFleet(t *testing.T, a *services.Allocator, sink robot.DeliverySink, tags ...string) []*robot.Robot {
	t.Helper()
	robots, err := robot.NewRoster(tags, 0, a, sink, kernel.NewSequence("R"))
	require.NoError(t, err)
	for _, r := range robots {
		require.NoError(t, r.Step(0))
	}
	return robots
}

func item(t *testing.T, id string, dest, weight int, fragile bool) *mail.Item {
	t.Helper()
	i, err := mail.NewItem(id, kernel.Floor(dest), 0, weight, fragile)
	require.NoError(t, err)
	return i
}

func priorityItem(t *testing.T, id string, dest, priority int) *mail.Item {
	t.Helper()
	i, err := mail.NewPriorityItem(id, kernel.Floor(dest), 0, 100, false, priority)
	require.NoError(t, err)
	return i
}

func ids(items []*mail.Item) []string {
	out := make([]string, 0, len(items))
	for _, i := range items {
		out = append(out, i.ID())
	}
	return out
}

func robotIDs(robots []*robot.Robot) []string {
	out := make([]string, 0, len(robots))
	for _, r := range robots {
		out = append(out, r.ID())
	}
	return out
}

func TestAllocator_Submit(t *testing.T) {
	t.Run("should reject fragile mail before any fragile-capable robot registered", func(t *testing.T) {
		a := services.NewAllocator()
		newFleet(t, a, &recordingSink{}, "standard", "weak")

		err := a.Submit(item(t, "F", 3, 100, true))

		require.ErrorIs(t, err, services.ErrNoCapableAgentType)
		assert.Equal(t, 0, a.Len())
	})

	t.Run("should reject heavy mail when only light-only robots registered", func(t *testing.T) {
		a := services.NewAllocator()
		newFleet(t, a, &recordingSink{}, "weak")

		err := a.Submit(item(t, "H", 3, mail.HeavyThreshold, false))

		require.ErrorIs(t, err, services.ErrNoCapableAgentType)
		assert.Equal(t, 0, a.Len())
		assert.Equal(t, 0, a.LightBudget())
	})

	t.Run("should reject everything capability-bound with no robots at all", func(t *testing.T) {
		a := services.NewAllocator()

		require.ErrorIs(t, a.Submit(item(t, "F", 3, 100, true)), services.ErrNoCapableAgentType)
		require.ErrorIs(t, a.Submit(item(t, "H", 3, 2500, false)), services.ErrNoCapableAgentType)
		require.NoError(t, a.Submit(item(t, "L", 3, 100, false)))
	})

	t.Run("should admit fragile mail once a careful robot registered", func(t *testing.T) {
		a := services.NewAllocator()
		newFleet(t, a, &recordingSink{}, "careful")

		require.NoError(t, a.Submit(item(t, "F", 3, 100, true)))
		assert.Equal(t, 1, a.LightBudget())
	})

	t.Run("should reject an unconstructed item", func(t *testing.T) {
		a := services.NewAllocator()

		require.ErrorIs(t, a.Submit(&mail.Item{}), mail.ErrItemIsNotConstructed)
	})
}

func TestAllocator_Ordering(t *testing.T) {
	a := services.NewAllocator()
	newFleet(t, a, &recordingSink{}, "standard")

	submitted := []*mail.Item{
		priorityItem(t, "a", 3, 1),
		priorityItem(t, "b", 7, 1),
		priorityItem(t, "c", 3, 10),
		priorityItem(t, "d", 3, 1),
		priorityItem(t, "e", 9, 100),
		priorityItem(t, "f", 7, 10),
		priorityItem(t, "g", 7, 1),
	}
	order := make(map[string]int, len(submitted))

	for i, it := range submitted {
		order[it.ID()] = i
		require.NoError(t, a.Submit(it))

		pending := a.Pending()
		for j := 1; j < len(pending); j++ {
			prev, cur := pending[j-1], pending[j]
			if prev.Priority() != cur.Priority() {
				assert.Greater(t, prev.Priority(), cur.Priority())
				continue
			}
			if prev.Destination() != cur.Destination() {
				assert.Greater(t, prev.Destination(), cur.Destination())
				continue
			}
			assert.Less(t, order[prev.ID()], order[cur.ID()], "equal keys keep submission order")
		}
	}

	assert.Equal(t, []string{"e", "f", "c", "b", "g", "a", "d"}, ids(a.Pending()))
}

func TestAllocator_RegisterWaiting(t *testing.T) {
	t.Run("should fill heavy-capable robots first", func(t *testing.T) {
		a := services.NewAllocator()
		newFleet(t, a, &recordingSink{}, "weak", "standard", "weak", "big", "careful")

		assert.Equal(t, []string{"R1", "R3", "R4", "R0", "R2"}, robotIDs(a.WaitingRobots()))
	})

	t.Run("should ignore a second registration", func(t *testing.T) {
		a := services.NewAllocator()
		robots := newFleet(t, a, &recordingSink{}, "standard")

		a.RegisterWaiting(robots[0])

		assert.Len(t, a.WaitingRobots(), 1)
	})

	t.Run("should keep capability flags after deregistration", func(t *testing.T) {
		a := services.NewAllocator()
		robots := newFleet(t, a, &recordingSink{}, "careful")

		a.DeregisterWaiting(robots[0])

		assert.Empty(t, a.WaitingRobots())
		require.NoError(t, a.Submit(item(t, "F", 3, 100, true)))
		require.NoError(t, a.Submit(item(t, "H", 3, 3000, false)))
	})
}

func TestAllocator_Step(t *testing.T) {
	t.Run("should load the higher priority item first", func(t *testing.T) {
		a := services.NewAllocator()
		robots := newFleet(t, a, &recordingSink{}, "standard")
		carrier := robots[0].Carrier()
		for _, id := range []string{"x1", "x2", "x3"} {
			require.NoError(t, carrier.Push(item(t, id, 1, 100, false)))
		}
		require.NoError(t, a.Submit(priorityItem(t, "low", 4, 1)))
		require.NoError(t, a.Submit(priorityItem(t, "high", 4, 5)))

		require.NoError(t, a.Step(1))

		assert.Equal(t, "high", carrier.Peek().ID())
		assert.True(t, carrier.IsFull())
		assert.Equal(t, []string{"low"}, ids(a.Pending()))
		assert.True(t, robots[0].IsDispatched())
	})

	t.Run("should put the first selected item on top of the carrier", func(t *testing.T) {
		a := services.NewAllocator()
		robots := newFleet(t, a, &recordingSink{}, "standard")
		require.NoError(t, a.Submit(item(t, "near", 2, 100, false)))
		require.NoError(t, a.Submit(item(t, "far", 9, 100, false)))

		require.NoError(t, a.Step(1))

		assert.Equal(t, []string{"near", "far"}, ids(robots[0].Carrier().Items()))
		assert.Equal(t, "far", robots[0].Carrier().Peek().ID())
	})

	t.Run("should give a single light item to only one robot", func(t *testing.T) {
		a := services.NewAllocator()
		robots := newFleet(t, a, &recordingSink{}, "weak", "standard")
		require.NoError(t, a.Submit(item(t, "L", 4, 100, false)))

		require.NoError(t, a.Step(1))

		weak, strong := robots[0], robots[1]
		assert.True(t, weak.Carrier().IsEmpty())
		assert.False(t, weak.IsDispatched())
		assert.Equal(t, 1, strong.Carrier().Len())
		assert.True(t, strong.IsDispatched())
		assert.Equal(t, 0, a.LightBudget())
		assert.Equal(t, 0, a.Len())
	})

	t.Run("should let light-only robots skip heavy items", func(t *testing.T) {
		a := services.NewAllocator()
		robots := newFleet(t, a, &recordingSink{}, "weak", "standard")
		a.DeregisterWaiting(robots[1])
		require.NoError(t, a.Submit(item(t, "H", 9, 2500, false)))
		require.NoError(t, a.Submit(item(t, "L", 2, 100, false)))

		require.NoError(t, a.Step(1))

		assert.Equal(t, []string{"L"}, ids(robots[0].Carrier().Items()))
		assert.Equal(t, []string{"H"}, ids(a.Pending()))
		assert.Equal(t, 0, a.LightBudget())
	})

	t.Run("should leave a light-only robot empty once the light budget is spent", func(t *testing.T) {
		a := services.NewAllocator()
		robots := newFleet(t, a, &recordingSink{}, "weak", "standard")
		a.DeregisterWaiting(robots[1])
		require.NoError(t, a.Submit(item(t, "H", 9, 2500, false)))

		require.NoError(t, a.Step(1))

		assert.True(t, robots[0].Carrier().IsEmpty())
		assert.False(t, robots[0].IsDispatched())
		assert.Equal(t, 1, a.Len())
	})

	t.Run("should respect the fragile limit", func(t *testing.T) {
		a := services.NewAllocator()
		robots := newFleet(t, a, &recordingSink{}, "careful")
		require.NoError(t, a.Submit(item(t, "F1", 5, 100, true)))
		require.NoError(t, a.Submit(item(t, "F2", 4, 100, true)))
		require.NoError(t, a.Submit(item(t, "L", 3, 100, false)))

		require.NoError(t, a.Step(1))

		carrier := robots[0].Carrier()
		assert.Equal(t, 1, carrier.FragileCount())
		assert.ElementsMatch(t, []string{"F1", "L"}, ids(carrier.Items()))
		assert.Equal(t, []string{"F2"}, ids(a.Pending()))
	})

	t.Run("should never hand fragile mail to fragile-incapable robots", func(t *testing.T) {
		a := services.NewAllocator()
		robots := newFleet(t, a, &recordingSink{}, "standard", "careful")
		a.DeregisterWaiting(robots[1])
		require.NoError(t, a.Submit(item(t, "F", 5, 100, true)))

		require.NoError(t, a.Step(1))

		assert.True(t, robots[0].Carrier().IsEmpty())
		assert.Equal(t, 1, a.Len())
	})

	t.Run("should not refill a dispatched robot", func(t *testing.T) {
		a := services.NewAllocator()
		robots := newFleet(t, a, &recordingSink{}, "standard")
		require.NoError(t, a.Submit(item(t, "A", 5, 100, false)))
		require.NoError(t, a.Step(1))
		require.NoError(t, a.Submit(item(t, "B", 5, 100, false)))

		require.NoError(t, a.Step(2))

		assert.Equal(t, 1, robots[0].Carrier().Len())
		assert.Equal(t, []string{"B"}, ids(a.Pending()))
	})
}

func TestAllocator_Return(t *testing.T) {
	a := services.NewAllocator()
	robots := newFleet(t, a, &recordingSink{}, "standard")
	require.NoError(t, a.Submit(item(t, "A", 5, 100, false)))
	require.NoError(t, a.Step(1))
	require.Equal(t, 0, a.LightBudget())

	require.NoError(t, robots[0].Recall(1))
	assert.Empty(t, a.WaitingRobots())
	require.NoError(t, robots[0].Step(2))

	assert.Equal(t, []string{"A"}, ids(a.Pending()))
	assert.Equal(t, 1, a.LightBudget())
	assert.True(t, robots[0].Carrier().IsEmpty())
	assert.Equal(t, robotIDs(robots), robotIDs(a.WaitingRobots()))
}

func TestAllocator_Simulation(t *testing.T) {
	building, err := kernel.NewBuilding(0, 14, 0)
	require.NoError(t, err)
	generator, err := services.NewMailGenerator(building, services.GeneratorSettings{
		Seed:         7,
		Count:        120,
		LastArrival:  60,
		PriorityRate: 0.2,
		FragileRate:  0.05,
		MaxWeight:    3000,
	}, nil)
	require.NoError(t, err)
	arrivals, err := generator.Generate()
	require.NoError(t, err)

	a := services.NewAllocator()
	sink := &recordingSink{}
	robots := newFleet(t, a, sink, "standard", "weak", "big", "careful")

	submitted := 0
	for tick := kernel.Tick(1); tick <= 5000 && len(sink.delivered) < submitted || tick <= 60; tick++ {
		for _, it := range arrivals.At(tick) {
			if err := a.Submit(it); err != nil {
				require.ErrorIs(t, err, services.ErrNoCapableAgentType)
				continue
			}
			submitted++
		}

		require.NoError(t, a.Step(tick))
		assertCarrierLimits(t, robots)

		for _, r := range robots {
			require.NoError(t, r.Step(tick))
		}
		assertCarrierLimits(t, robots)

		held := a.Len()
		for _, r := range robots {
			held += r.Carrier().Len()
			if r.DeliveryItem() != nil {
				held++
			}
		}
		require.Equal(t, submitted, held+len(sink.delivered), "every item is in exactly one place at tick %d", tick)
	}

	assert.Equal(t, arrivals.Total(), submitted)
	assert.Len(t, sink.delivered, submitted)
	seen := make(map[string]struct{}, submitted)
	for _, d := range sink.delivered {
		_, dup := seen[d.ID()]
		require.False(t, dup, "item %s delivered twice", d.ID())
		seen[d.ID()] = struct{}{}
	}
}

func assertCarrierLimits(t *testing.T, robots []*robot.Robot) {
	t.Helper()
	for _, r := range robots {
		capability := r.Capability()
		carrier := r.Carrier()
		require.LessOrEqual(t, carrier.Len(), capability.CarrierCapacity)
		require.LessOrEqual(t, carrier.FragileCount(), capability.MaxFragile)
		for _, it := range carrier.Items() {
			if it.IsHeavy() {
				require.True(t, capability.CanCarryHeavy, "robot %s holds heavy item %s", r.ID(), it.ID())
			}
			if it.Fragile() {
				require.True(t, capability.CanCarryFragile(), "robot %s holds fragile item %s", r.ID(), it.ID())
			}
		}
	}
}

func TestFaultErrorsAreDefects(t *testing.T) {
	err := &robot.FaultError{RobotID: "R0", Err: robot.ErrCapacityExceeded}

	assert.True(t, robot.IsDefect(err))
	assert.False(t, robot.IsDefect(errors.Join(services.ErrNoCapableAgentType)))
}
