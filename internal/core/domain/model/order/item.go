package order

import (
	"errors"
	"strings"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when a zero-value Item is used.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one cart line frozen at checkout: what was ordered, at which price,
// and how many. Later menu price changes never touch a placed order.
type Item struct { //nolint:recvcheck //using for validation
	menuItemID string
	name       string
	price      kernel.Money
	quantity   int
	subtotal   kernel.Money
	guard      guard.ConstructorGuard
}

// NewItem validates the cart line. quantity must be at least 1.
func NewItem(menuItemID string, name string, price kernel.Money, quantity int) (Item, error) {
	item := Item{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setMenuItemID(menuItemID),
		item.setName(name),
		item.setPrice(price),
		item.setQuantity(quantity),
	); err != nil {
		return Item{}, err
	}

	subtotal, err := item.price.Multiply(item.quantity)
	if err != nil {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("subtotal", err)
	}
	item.subtotal = subtotal

	return item, nil
}

// Validate returns ErrItemIsNotConstructed for a zero-value Item.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) MenuItemID() string {
	return i.menuItemID
}

func (i Item) Name() string {
	return i.name
}

func (i Item) Price() kernel.Money {
	return i.price
}

func (i Item) Quantity() int {
	return i.quantity
}

// Subtotal is price times quantity.
func (i Item) Subtotal() kernel.Money {
	return i.subtotal
}

func (i *Item) setMenuItemID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errs.NewValueIsRequiredError("menuItemId")
	}
	i.menuItemID = id
	return nil
}

func (i *Item) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	i.name = name
	return nil
}

func (i *Item) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	i.price = price
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	i.quantity = quantity
	return nil
}
