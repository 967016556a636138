package commands

import (
	"errors"

	"automail/internal/core/domain/model/mail"
	"automail/internal/pkg/guard"
)

var ErrSubmitMailCommandIsNotConstructed = errors.New(
	"SubmitMailCommand must be created via NewSubmitMailCommand constructor",
)

// SubmitMailCommand hands one arrived mail item to the allocator.
//
// Example:
//
//	cmd, err := NewSubmitMailCommand(item)
//	if err != nil {
//	    return err
//	}
//	accepted, err := handler.Handle(ctx, cmd)
type SubmitMailCommand struct {
	item *mail.Item

	guard guard.ConstructorGuard
}

// NewSubmitMailCommand creates a command for a constructed item.
func NewSubmitMailCommand(item *mail.Item) (SubmitMailCommand, error) {
	if err := item.Validate(); err != nil {
		return SubmitMailCommand{}, err
	}

	return SubmitMailCommand{
		item:  item,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitMailCommand) Validate() error {
	return c.guard.Validate(ErrSubmitMailCommandIsNotConstructed)
}

func (c SubmitMailCommand) Item() *mail.Item {
	return c.item
}
