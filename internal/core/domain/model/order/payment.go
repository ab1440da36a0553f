package order

import (
	"errors"
	"fmt"
	"regexp"

	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

// PaymentMethod is how the customer pays at checkout.
type PaymentMethod string

const (
	PaymentMethodUPI  PaymentMethod = "UPI"
	PaymentMethodCard PaymentMethod = "CARD"
	PaymentMethodCOD  PaymentMethod = "COD"
)

// ErrPaymentIsNotConstructed is returned when a zero-value Payment is used.
var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")

var upiIDPattern = regexp.MustCompile(`^[a-zA-Z0-9.\-_]{2,256}@[a-zA-Z]{2,64}$`)

// Validate rejects unknown payment methods.
func (m PaymentMethod) Validate() error {
	switch m {
	case PaymentMethodUPI, PaymentMethodCard, PaymentMethodCOD:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%q is not supported", string(m)))
	}
}

// Payment is the payment choice recorded with the order. A UPI payment needs
// the customer's UPI ID (e.g. "name@okbank"); other methods must not carry one.
type Payment struct { //nolint:recvcheck //using for validation
	method PaymentMethod
	upiID  string
	guard  guard.ConstructorGuard
}

// NewPayment validates the method and the UPI ID rule.
func NewPayment(method PaymentMethod, upiID string) (Payment, error) {
	if err := method.Validate(); err != nil {
		return Payment{}, err
	}

	switch {
	case method == PaymentMethodUPI && upiID == "":
		return Payment{}, errs.NewValueIsRequiredError("upiId")
	case method == PaymentMethodUPI && !upiIDPattern.MatchString(upiID):
		return Payment{}, errs.NewValueIsInvalidErrorWithCause("upiId", fmt.Errorf("%q is not a UPI ID", upiID))
	case method != PaymentMethodUPI && upiID != "":
		return Payment{}, errs.NewValueIsInvalidErrorWithCause(
			"upiId", fmt.Errorf("UPI ID is not accepted for %s", method))
	}

	return Payment{method: method, upiID: upiID, guard: guard.NewConstructorGuard()}, nil
}

// Validate returns ErrPaymentIsNotConstructed for a zero-value Payment.
func (p Payment) Validate() error {
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

func (p Payment) Method() PaymentMethod {
	return p.method
}

// UPIID is empty unless Method is PaymentMethodUPI.
func (p Payment) UPIID() string {
	return p.upiID
}
