package commands

import (
	"errors"

	"automail/internal/pkg/guard"
)

var ErrStepSimulationCommandIsNotConstructed = errors.New(
	"StepSimulationCommand must be created via NewStepSimulationCommand constructor",
)

// StepSimulationCommand advances the run by exactly one tick.
// It is parameterless: the run's clock decides which tick comes next.
type StepSimulationCommand struct {
	guard guard.ConstructorGuard
}

func NewStepSimulationCommand() StepSimulationCommand {
	return StepSimulationCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c StepSimulationCommand) Validate() error {
	return c.guard.Validate(ErrStepSimulationCommandIsNotConstructed)
}
