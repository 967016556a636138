package commands

import (
	"errors"

	"automail/internal/pkg/guard"
)

var ErrFlushDeliveriesCommandIsNotConstructed = errors.New(
	"FlushDeliveriesCommand must be created via NewFlushDeliveriesCommand constructor",
)

// FlushDeliveriesCommand writes buffered delivery records to the ledger.
type FlushDeliveriesCommand struct {
	guard guard.ConstructorGuard
}

func NewFlushDeliveriesCommand() FlushDeliveriesCommand {
	return FlushDeliveriesCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c FlushDeliveriesCommand) Validate() error {
	return c.guard.Validate(ErrFlushDeliveriesCommandIsNotConstructed)
}
