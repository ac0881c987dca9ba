package order

import (
	"fmt"
	"strings"

	"storefront/internal/pkg/errs"
)

// PaymentStatus tracks whether funds for the order were collected.
// PENDING may move to COMPLETED or FAILED, FAILED may still complete on a retried payment,
// and COMPLETED never changes again.
type PaymentStatus int

const (
	PaymentUnknown PaymentStatus = iota
	PaymentPending
	PaymentCompleted
	PaymentFailed
)

var paymentStatusNames = map[PaymentStatus]string{
	PaymentPending:   "PENDING",
	PaymentCompleted: "COMPLETED",
	PaymentFailed:    "FAILED",
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for status, name := range paymentStatusNames {
		if name == normalized {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment status is invalid", fmt.Errorf("%q is not a valid payment status", s),
	)
}

func (p PaymentStatus) Validate() error {
	if _, ok := paymentStatusNames[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment status is invalid", fmt.Errorf("%d is not a valid payment status", p),
		)
	}
	return nil
}

func (p PaymentStatus) String() string {
	if name, ok := paymentStatusNames[p]; ok {
		return name
	}
	return "UNKNOWN"
}

// CanTransitionTo reports whether the payment status may move to target.
func (p PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	switch p {
	case PaymentPending:
		return target == PaymentCompleted || target == PaymentFailed
	case PaymentFailed:
		return target == PaymentCompleted
	default:
		return false
	}
}

// PaymentMethod is the method chosen at checkout. Only COD changes the core's behaviour;
// other values are recorded as given.
type PaymentMethod string

const (
	PaymentMethodCOD          PaymentMethod = "COD"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCard         PaymentMethod = "CARD"
)

// NewPaymentMethod normalizes s to upper case and rejects blank input.
func NewPaymentMethod(s string) (PaymentMethod, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	if normalized == "" {
		return "", errs.NewValueIsRequiredError("payment method")
	}
	return PaymentMethod(normalized), nil
}

func (m PaymentMethod) IsCOD() bool {
	return m == PaymentMethodCOD
}

func (m PaymentMethod) String() string {
	return string(m)
}
