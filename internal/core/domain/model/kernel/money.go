package kernel

import (
	"fmt"
	"math"

	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

// ErrMoneyIsNotConstructed is returned when a zero-value Money is used.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney")

// Money is a non-negative amount in whole rupees. Menu prices, order totals
// and fees are all integral in the ordering app, so no minor units are kept.
type Money struct {
	rupees int64
	guard  guard.ConstructorGuard
}

// NewMoney rejects negative amounts.
func NewMoney(rupees int64) (Money, error) {
	if rupees < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("money", rupees, 0, "unbounded")
	}
	return Money{rupees: rupees, guard: guard.NewConstructorGuard()}, nil
}

// ZeroMoney is the constructed zero amount, the neutral element of Add.
func ZeroMoney() Money {
	return Money{guard: guard.NewConstructorGuard()}
}

// Validate returns ErrMoneyIsNotConstructed for a zero-value Money.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Rupees returns the amount.
func (m Money) Rupees() int64 {
	return m.rupees
}

// Add returns m + other. A sum past math.MaxInt64 is out of range.
func (m Money) Add(other Money) (Money, error) {
	if other.rupees > math.MaxInt64-m.rupees {
		return Money{}, errs.NewValueIsOutOfRangeError("money", fmt.Sprintf("%d + %d", m.rupees, other.rupees), 0, int64(math.MaxInt64))
	}
	return Money{rupees: m.rupees + other.rupees, guard: guard.NewConstructorGuard()}, nil
}

// Multiply returns m * quantity. quantity must not be negative and the
// product must fit in int64.
func (m Money) Multiply(quantity int) (Money, error) {
	if quantity < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 0, "unbounded")
	}
	if quantity > 0 && m.rupees > math.MaxInt64/int64(quantity) {
		return Money{}, errs.NewValueIsOutOfRangeError("money", fmt.Sprintf("%d x %d", m.rupees, quantity), 0, int64(math.MaxInt64))
	}
	return Money{rupees: m.rupees * int64(quantity), guard: guard.NewConstructorGuard()}, nil
}

// String renders the amount the way the storefront does, e.g. "₹500".
func (m Money) String() string {
	return fmt.Sprintf("₹%d", m.rupees)
}
