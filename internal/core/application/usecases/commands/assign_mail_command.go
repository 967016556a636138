package commands

import (
	"errors"

	"automail/internal/core/domain/model/kernel"
	"automail/internal/pkg/guard"
)

var ErrAssignMailCommandIsNotConstructed = errors.New(
	"AssignMailCommand must be created via NewAssignMailCommand constructor",
)

// AssignMailCommand runs the allocator's fill step for one tick.
type AssignMailCommand struct {
	tick kernel.Tick

	guard guard.ConstructorGuard
}

// NewAssignMailCommand creates the command for tick.
func NewAssignMailCommand(tick kernel.Tick) AssignMailCommand {
	return AssignMailCommand{
		tick:  tick,
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c AssignMailCommand) Validate() error {
	return c.guard.Validate(ErrAssignMailCommandIsNotConstructed)
}

func (c AssignMailCommand) Tick() kernel.Tick {
	return c.tick
}
