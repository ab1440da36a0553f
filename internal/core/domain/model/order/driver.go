package order

import (
	"errors"
	"strings"

	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

// ErrDriverIsNotConstructed is returned when a zero-value Driver is used.
var ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")

// Driver is the delivery partner attached to an order once one is found.
type Driver struct { //nolint:recvcheck //using for validation
	name  string
	phone string
	guard guard.ConstructorGuard
}

// NewDriver requires both a name and a contact phone.
func NewDriver(name string, phone string) (Driver, error) {
	d := Driver{guard: guard.NewConstructorGuard()}

	if err := errors.Join(d.setName(name), d.setPhone(phone)); err != nil {
		return Driver{}, err
	}

	return d, nil
}

// Validate returns ErrDriverIsNotConstructed for a zero-value Driver.
func (d Driver) Validate() error {
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

func (d Driver) Name() string {
	return d.name
}

func (d Driver) Phone() string {
	return d.phone
}

func (d *Driver) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("driver name")
	}
	d.name = name
	return nil
}

func (d *Driver) setPhone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return errs.NewValueIsRequiredError("driver phone")
	}
	d.phone = phone
	return nil
}
