package commands

import (
	"errors"
	"fmt"

	"automail/internal/pkg/errs"
	"automail/internal/pkg/guard"
)

var ErrRunSimulationCommandIsNotConstructed = errors.New(
	"RunSimulationCommand must be created via NewRunSimulationCommand constructor",
)

// RunSimulationCommand runs a whole simulation in batch mode.
//
// Example:
//
//	cmd, err := NewRunSimulationCommand(10000)
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrSimulationTimedOut) {
//	    // mail was still in flight after 10000 ticks
//	}
type RunSimulationCommand struct {
	maxTicks int

	guard guard.ConstructorGuard
}

// NewRunSimulationCommand creates a batch run bounded by maxTicks.
func NewRunSimulationCommand(maxTicks int) (RunSimulationCommand, error) {
	if maxTicks <= 0 {
		return RunSimulationCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"maxTicks",
			fmt.Errorf("%d is not greater than 0", maxTicks),
		)
	}

	return RunSimulationCommand{
		maxTicks: maxTicks,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RunSimulationCommand) Validate() error {
	return c.guard.Validate(ErrRunSimulationCommandIsNotConstructed)
}

func (c RunSimulationCommand) MaxTicks() int {
	return c.maxTicks
}
