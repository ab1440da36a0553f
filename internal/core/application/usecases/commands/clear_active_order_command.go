package commands

import (
	"errors"

	"tracking/internal/pkg/guard"
)

var ErrClearActiveOrderCommandIsNotConstructed = errors.New(
	"ClearActiveOrderCommand must be created via NewClearActiveOrderCommand constructor",
)

// ClearActiveOrderCommand drops the active order and stops its timers, the
// "Order Again" action of the storefront.
type ClearActiveOrderCommand struct {
	guard guard.ConstructorGuard
}

func NewClearActiveOrderCommand() ClearActiveOrderCommand {
	return ClearActiveOrderCommand{guard: guard.NewConstructorGuard()}
}

func (c ClearActiveOrderCommand) Validate() error {
	return c.guard.Validate(ErrClearActiveOrderCommandIsNotConstructed)
}
