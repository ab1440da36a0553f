package commands

import (
	"errors"
	"strings"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderItem is one cart line of a PlaceOrderCommand.
type PlaceOrderItem struct {
	MenuItemID  string
	Name        string
	PriceRupees int64
	Quantity    int
}

// PlaceOrderCommand checks out a cart and makes it the active order.
//
//	cmd, err := NewPlaceOrderCommand(kernel.NewUUID(), "r-7", "Meghana Foods",
//	    []PlaceOrderItem{{MenuItemID: "m-1", Name: "Biryani", PriceRupees: 320, Quantity: 2}},
//	    order.PaymentMethodUPI, "asha@okaxis")
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	restaurantID   string
	restaurantName string
	items          []order.Item
	payment        order.Payment

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand validates the cart and payment. Item and payment rules
// are those of the order aggregate.
func NewPlaceOrderCommand(
	orderID kernel.UUID,
	restaurantID string,
	restaurantName string,
	items []PlaceOrderItem,
	paymentMethod order.PaymentMethod,
	upiID string,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRestaurant(restaurantID, restaurantName),
		cmd.setItems(items),
		cmd.setPayment(paymentMethod, upiID),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c PlaceOrderCommand) RestaurantID() string {
	return c.restaurantID
}

func (c PlaceOrderCommand) RestaurantName() string {
	return c.restaurantName
}

func (c PlaceOrderCommand) Items() []order.Item {
	return append([]order.Item(nil), c.items...)
}

func (c PlaceOrderCommand) Payment() order.Payment {
	return c.payment
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setRestaurant(id string, name string) error {
	var errList []error
	if strings.TrimSpace(id) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("restaurantId"))
	}
	if strings.TrimSpace(name) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("restaurantName"))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	c.restaurantID = id
	c.restaurantName = name
	return nil
}

func (c *PlaceOrderCommand) setItems(lines []PlaceOrderItem) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	items := make([]order.Item, 0, len(lines))
	var errList []error
	for _, line := range lines {
		price, err := kernel.NewMoney(line.PriceRupees)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		item, err := order.NewItem(line.MenuItemID, line.Name, price, line.Quantity)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	c.items = items
	return nil
}

func (c *PlaceOrderCommand) setPayment(method order.PaymentMethod, upiID string) error {
	payment, err := order.NewPayment(method, upiID)
	if err != nil {
		return err
	}

	c.payment = payment
	return nil
}
