package commands

import (
	"errors"
	"fmt"
	"time"

	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var ErrExpireDeliveredOrderCommandIsNotConstructed = errors.New(
	"ExpireDeliveredOrderCommand must be created via NewExpireDeliveredOrderCommand constructor",
)

// ExpireDeliveredOrderCommand clears the active order once it has been
// delivered for longer than the retention.
type ExpireDeliveredOrderCommand struct { //nolint:recvcheck //using for validation
	retention time.Duration

	guard guard.ConstructorGuard
}

func NewExpireDeliveredOrderCommand(retention time.Duration) (ExpireDeliveredOrderCommand, error) {
	cmd := ExpireDeliveredOrderCommand{guard: guard.NewConstructorGuard()}
	if err := cmd.setRetention(retention); err != nil {
		return ExpireDeliveredOrderCommand{}, err
	}
	return cmd, nil
}

func (c ExpireDeliveredOrderCommand) Validate() error {
	return c.guard.Validate(ErrExpireDeliveredOrderCommandIsNotConstructed)
}

func (c ExpireDeliveredOrderCommand) Retention() time.Duration {
	return c.retention
}

func (c *ExpireDeliveredOrderCommand) setRetention(retention time.Duration) error {
	if retention < 0 {
		return errs.NewValueIsInvalidErrorWithCause("retention", fmt.Errorf("%s is negative", retention))
	}

	c.retention = retention
	return nil
}
