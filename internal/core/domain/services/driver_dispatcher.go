package services

import (
	"errors"
	"strings"

	"tracking/internal/core/domain/model/order"
	"tracking/internal/pkg/errs"
)

// DefaultDriverPhone is the support line shown for every simulated driver.
const DefaultDriverPhone = "+91 98765 43210"

// ErrDriverNotFound is returned when the dispatcher has nobody to send.
var ErrDriverNotFound = errors.New("driver not found")

// Chooser picks an index in [0, n). *rand.Rand from math/rand/v2 satisfies
// it; tests pass a fixed sequence.
type Chooser interface {
	IntN(n int) int
}

// DefaultDriverNames is the roster of simulated delivery partners.
func DefaultDriverNames() []string {
	return []string{
		"Ramesh Kumar",
		"Suresh Yadav",
		"Amit Sharma",
		"Rahul Verma",
		"Vikram Singh",
		"Arjun Nair",
	}
}

// DriverDispatcher finds a delivery partner for an order that is looking for
// one and attaches it to the order.
//
// Business rules:
//   - the order must be valid and in FindingDriver status
//   - the driver is drawn uniformly from the roster
//   - every driver shares the same contact phone
type DriverDispatcher struct {
	names   []string
	phone   string
	chooser Chooser
}

// NewDriverDispatcher validates the roster. Blank names are dropped; an empty
// roster is rejected.
func NewDriverDispatcher(names []string, phone string, chooser Chooser) (*DriverDispatcher, error) {
	if chooser == nil {
		return nil, errs.NewValueIsRequiredError("chooser")
	}
	if strings.TrimSpace(phone) == "" {
		return nil, errs.NewValueIsRequiredError("phone")
	}

	roster := make([]string, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) != "" {
			roster = append(roster, name)
		}
	}
	if len(roster) == 0 {
		return nil, errs.NewValueIsRequiredErrorWithCause("names", ErrDriverNotFound)
	}

	return &DriverDispatcher{names: roster, phone: phone, chooser: chooser}, nil
}

// Dispatch picks a driver and assigns it to o, moving o to DriverAssigned.
func (d *DriverDispatcher) Dispatch(o *order.Order) (order.Driver, error) {
	if err := o.Validate(); err != nil {
		return order.Driver{}, err
	}

	idx := d.chooser.IntN(len(d.names))
	if idx < 0 || idx >= len(d.names) {
		return order.Driver{}, errs.NewValueIsOutOfRangeError("driver index", idx, 0, len(d.names)-1)
	}

	driver, err := order.NewDriver(d.names[idx], d.phone)
	if err != nil {
		return order.Driver{}, err
	}

	if err = o.AssignDriver(driver); err != nil {
		return order.Driver{}, err
	}

	return driver, nil
}
