package commands

import (
	"errors"
	"fmt"
	"time"

	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var ErrPurgeOrderHistoryCommandIsNotConstructed = errors.New(
	"PurgeOrderHistoryCommand must be created via NewPurgeOrderHistoryCommand constructor",
)

// PurgeOrderHistoryCommand deletes past orders placed more than retention
// ago.
type PurgeOrderHistoryCommand struct { //nolint:recvcheck //using for validation
	retention time.Duration

	guard guard.ConstructorGuard
}

func NewPurgeOrderHistoryCommand(retention time.Duration) (PurgeOrderHistoryCommand, error) {
	cmd := PurgeOrderHistoryCommand{guard: guard.NewConstructorGuard()}
	if retention <= 0 {
		return PurgeOrderHistoryCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"retention", fmt.Errorf("%s is not positive", retention))
	}
	cmd.retention = retention
	return cmd, nil
}

func (c PurgeOrderHistoryCommand) Validate() error {
	return c.guard.Validate(ErrPurgeOrderHistoryCommandIsNotConstructed)
}

func (c PurgeOrderHistoryCommand) Retention() time.Duration {
	return c.retention
}
