package commands

import (
	"errors"
	"fmt"

	"tracking/internal/core/domain/model/order"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var ErrRecordDeliveredOrderCommandIsNotConstructed = errors.New(
	"RecordDeliveredOrderCommand must be created via NewRecordDeliveredOrderCommand constructor",
)

// RecordDeliveredOrderCommand stores a delivered order in history.
type RecordDeliveredOrderCommand struct { //nolint:recvcheck //using for validation
	order *order.Order

	guard guard.ConstructorGuard
}

func NewRecordDeliveredOrderCommand(o *order.Order) (RecordDeliveredOrderCommand, error) {
	cmd := RecordDeliveredOrderCommand{guard: guard.NewConstructorGuard()}
	if err := cmd.setOrder(o); err != nil {
		return RecordDeliveredOrderCommand{}, err
	}
	return cmd, nil
}

func (c RecordDeliveredOrderCommand) Validate() error {
	return c.guard.Validate(ErrRecordDeliveredOrderCommandIsNotConstructed)
}

func (c RecordDeliveredOrderCommand) Order() *order.Order {
	return c.order
}

func (c *RecordDeliveredOrderCommand) setOrder(o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.Status() != order.Delivered {
		return errs.NewValueIsInvalidErrorWithCause("order",
			fmt.Errorf("status is %s, expected %s", o.Status(), order.Delivered))
	}

	c.order = o
	return nil
}
