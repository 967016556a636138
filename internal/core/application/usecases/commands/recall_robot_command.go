package commands

import (
	"errors"

	"automail/internal/pkg/errs"
	"automail/internal/pkg/guard"
)

var ErrRecallRobotCommandIsNotConstructed = errors.New(
	"RecallRobotCommand must be created via NewRecallRobotCommand constructor",
)

// RecallRobotCommand aborts one robot's run and sends it back to the mailroom,
// where everything it still carries returns to the pool.
//
// Example:
//
//	cmd, err := NewRecallRobotCommand("R2")
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to recall robot: %w", err)
//	}
type RecallRobotCommand struct {
	robotID string

	guard guard.ConstructorGuard
}

// NewRecallRobotCommand creates a recall of robotID.
func NewRecallRobotCommand(robotID string) (RecallRobotCommand, error) {
	if robotID == "" {
		return RecallRobotCommand{}, errs.NewValueIsRequiredError("robotID")
	}

	return RecallRobotCommand{
		robotID: robotID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RecallRobotCommand) Validate() error {
	return c.guard.Validate(ErrRecallRobotCommandIsNotConstructed)
}

func (c RecallRobotCommand) RobotID() string {
	return c.robotID
}
