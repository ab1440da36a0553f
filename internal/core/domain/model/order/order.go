package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
)

const (
	// DeliveryFeeRupees is charged on every order.
	DeliveryFeeRupees = 40
	// PlatformFeeRupees is charged on every order.
	PlatformFeeRupees = 5
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrDriverAlreadyAssigned guards the assign-once rule.
	ErrDriverAlreadyAssigned = errors.New("driver is already assigned")
)

// Order is the aggregate root of a food order being delivered.
//
// Invariants:
//   - restaurant, items, total and payment are frozen at checkout
//   - total is the sum of item subtotals and, with fees, fits in int64
//   - status only moves forward (see Status)
//   - a driver is attached exactly once, on FindingDriver -> DriverAssigned
type Order struct {
	id             kernel.UUID
	restaurantID   string
	restaurantName string
	items          []Item
	total          kernel.Money
	amountToPay    kernel.Money
	payment        Payment
	placedAt       time.Time
	status         Status
	driver         *Driver

	isConstructed bool
}

// NewOrder creates an order in Placed status from the checked-out cart.
//
//	o, err := order.NewOrder(kernel.NewUUID(), "r-12", "Biryani House", items, payment, clock.Now())
func NewOrder(
	id kernel.UUID,
	restaurantID string,
	restaurantName string,
	items []Item,
	payment Payment,
	placedAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Placed,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setRestaurant(restaurantID, restaurantName),
		o.setItems(items),
		o.setPayment(payment),
		o.setPlacedAt(placedAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from storage, including its status and
// driver. The status/driver pair is checked with ValidateCanHaveDriver.
func RestoreOrder(
	id kernel.UUID,
	restaurantID string,
	restaurantName string,
	items []Item,
	payment Payment,
	placedAt time.Time,
	status Status,
	driver *Driver,
) (*Order, error) {
	o, err := NewOrder(id, restaurantID, restaurantName, items, payment, placedAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	if err = status.ValidateCanHaveDriver(driver != nil); err != nil {
		return nil, err
	}
	if driver != nil {
		if err = driver.Validate(); err != nil {
			return nil, err
		}
		d := *driver
		o.driver = &d
	}

	o.status = status
	return o, nil
}

// Validate ensures the order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

// DisplayCode is the short human-facing reference shown to the customer,
// e.g. "ORD-550E".
func (o *Order) DisplayCode() string {
	return DisplayCodeFor(o.id)
}

// DisplayCodeFor derives the display code of an order id.
func DisplayCodeFor(id kernel.UUID) string {
	return "ORD-" + strings.ToUpper(id.String()[:4])
}

func (o *Order) RestaurantID() string {
	return o.restaurantID
}

func (o *Order) RestaurantName() string {
	return o.restaurantName
}

// Items returns a copy of the ordered lines.
func (o *Order) Items() []Item {
	return slices.Clone(o.items)
}

// Total is the sum of item subtotals, fees excluded.
func (o *Order) Total() kernel.Money {
	return o.total
}

// AmountToPay is Total plus the delivery and platform fees.
func (o *Order) AmountToPay() kernel.Money {
	return o.amountToPay
}

func (o *Order) Payment() Payment {
	return o.payment
}

func (o *Order) PlacedAt() time.Time {
	return o.placedAt
}

func (o *Order) Status() Status {
	return o.status
}

// Driver returns the assigned driver, nil before DriverAssigned.
func (o *Order) Driver() *Driver {
	if o.driver == nil {
		return nil
	}
	d := *o.driver
	return &d
}

// Clone returns a detached copy that later transitions of o do not affect.
func (o *Order) Clone() *Order {
	cp := *o
	cp.items = slices.Clone(o.items)
	cp.driver = o.Driver()
	return &cp
}

// FindDriver moves the order to FindingDriver.
func (o *Order) FindDriver() error {
	return o.transition(o.status.FindDriver)
}

// AssignDriver attaches the driver and moves the order to DriverAssigned.
// A driver can be attached only once.
func (o *Order) AssignDriver(driver Driver) error {
	if err := driver.Validate(); err != nil {
		return err
	}
	if o.driver != nil {
		return ErrDriverAlreadyAssigned
	}

	newStatus, err := o.status.AssignDriver()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.driver = &driver
	return nil
}

// PickUp moves the order to PickedUp.
func (o *Order) PickUp() error {
	return o.transition(o.status.PickUp)
}

// Deliver moves the order to Delivered.
func (o *Order) Deliver() error {
	return o.transition(o.status.Deliver)
}

// Cancel moves a non-terminal order to Cancelled.
func (o *Order) Cancel() error {
	return o.transition(o.status.Cancel)
}

func (o *Order) transition(next func() (Status, error)) error {
	newStatus, err := next()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setRestaurant(id string, name string) error {
	var errList []error
	if strings.TrimSpace(id) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("restaurantId"))
	}
	if strings.TrimSpace(name) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("restaurantName"))
	}
	if len(errList) > 0 {
		return errors.Join(errList...)
	}
	o.restaurantID = id
	o.restaurantName = name
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	total := kernel.ZeroMoney()
	for idx, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", idx), err)
		}
		var err error
		if total, err = total.Add(item.Subtotal()); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("total", err)
		}
	}

	fees, err := kernel.NewMoney(DeliveryFeeRupees + PlatformFeeRupees)
	if err != nil {
		return err
	}
	amountToPay, err := total.Add(fees)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("amountToPay", err)
	}

	o.items = slices.Clone(items)
	o.total = total
	o.amountToPay = amountToPay
	return nil
}

func (o *Order) setPayment(payment Payment) error {
	if err := payment.Validate(); err != nil {
		return err
	}
	o.payment = payment
	return nil
}

func (o *Order) setPlacedAt(placedAt time.Time) error {
	if placedAt.IsZero() {
		return errs.NewValueIsRequiredError("placedAt")
	}
	o.placedAt = placedAt
	return nil
}
