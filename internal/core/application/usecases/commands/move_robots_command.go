package commands

import (
	"errors"

	"automail/internal/core/domain/model/kernel"
	"automail/internal/pkg/guard"
)

var ErrMoveRobotsCommandIsNotConstructed = errors.New(
	"MoveRobotsCommand must be created via NewMoveRobotsCommand constructor",
)

// MoveRobotsCommand steps every robot of the run once, in roster order.
//
// Example:
//
//	cmd := NewMoveRobotsCommand(tick)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("robot step failed: %w", err)
//	}
type MoveRobotsCommand struct {
	tick kernel.Tick

	guard guard.ConstructorGuard
}

// NewMoveRobotsCommand creates the command for tick.
func NewMoveRobotsCommand(tick kernel.Tick) MoveRobotsCommand {
	return MoveRobotsCommand{
		tick:  tick,
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c MoveRobotsCommand) Validate() error {
	return c.guard.Validate(ErrMoveRobotsCommandIsNotConstructed)
}

func (c MoveRobotsCommand) Tick() kernel.Tick {
	return c.tick
}
