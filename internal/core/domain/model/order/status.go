package order

import (
	"fmt"

	"tracking/internal/pkg/errs"
)

// Status is the lifecycle state of an order. The pipeline is strictly one
// directional:
//
//	Placed ──> FindingDriver ──> DriverAssigned ──> PickedUp ──> Delivered
//	   │             │                  │               │
//	   └─────────────┴──────────────────┴───────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal. Each transition method returns the
// next status or an error when the move is not allowed from the receiver.
type Status int

const (
	// Unknown (0) catches uninitialized values.
	Unknown Status = iota

	// Placed is the status right after checkout.
	Placed

	// FindingDriver means the platform is looking for a delivery partner.
	FindingDriver

	// DriverAssigned means a driver is heading to the restaurant.
	DriverAssigned

	// PickedUp means the driver collected the order and is on the way.
	PickedUp

	// Delivered is the successful terminal status.
	Delivered

	// Cancelled is the unsuccessful terminal status. Nothing in the
	// simulation emits it yet; it is kept so stored orders can carry it.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		Placed:         "PLACED",
		FindingDriver:  "FINDING_DRIVER",
		DriverAssigned: "DRIVER_ASSIGNED",
		PickedUp:       "PICKED_UP",
		Delivered:      "DELIVERED",
		Cancelled:      "CANCELLED",
	}
}

func getValidStatusStrings() map[Status]string {
	valid := getStatusStrings()
	delete(valid, Unknown)
	return valid
}

// ParseStatus converts the wire name (e.g. "PICKED_UP") back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name, "UNKNOWN" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsInTransit reports whether a driver is moving on the map.
func (s Status) IsInTransit() bool {
	return s == DriverAssigned || s == PickedUp
}

// ValidateCanHaveDriver checks that a driver is attached exactly when the
// status requires one: never before DriverAssigned, always from
// DriverAssigned to Delivered. Cancelled orders may go either way.
func (s Status) ValidateCanHaveDriver(hasDriver bool) error {
	switch s {
	case Placed, FindingDriver:
		if hasDriver {
			return errs.NewValueIsInvalidErrorWithCause(
				"status is invalid",
				fmt.Errorf("%s is not a valid status to have a driver", s),
			)
		}
	case DriverAssigned, PickedUp, Delivered:
		if !hasDriver {
			return errs.NewValueIsInvalidErrorWithCause(
				"status is invalid",
				fmt.Errorf("%s is not a valid status to have no driver", s),
			)
		}
	case Cancelled:
	default:
		return s.Validate()
	}
	return nil
}

// FindDriver moves Placed -> FindingDriver.
func (s Status) FindDriver() (Status, error) {
	return s.advance(Placed, FindingDriver)
}

// AssignDriver moves FindingDriver -> DriverAssigned.
func (s Status) AssignDriver() (Status, error) {
	return s.advance(FindingDriver, DriverAssigned)
}

// PickUp moves DriverAssigned -> PickedUp.
func (s Status) PickUp() (Status, error) {
	return s.advance(DriverAssigned, PickedUp)
}

// Deliver moves PickedUp -> Delivered.
func (s Status) Deliver() (Status, error) {
	return s.advance(PickedUp, Delivered)
}

// Cancel moves any valid non-terminal status to Cancelled.
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s.IsTerminal() {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s),
		)
	}
	return Cancelled, nil
}

func (s Status) advance(from, to Status) (Status, error) {
	if s != from {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to move to %s", s, to),
		)
	}
	return to, nil
}
