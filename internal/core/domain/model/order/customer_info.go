package order

import (
	"errors"
	"strings"

	"storefront/internal/pkg/errs"
)

// CustomerInfo is the contact and shipping snapshot copied onto the order at checkout.
type CustomerInfo struct {
	name            string
	phone           string
	email           string
	shippingAddress string
}

func NewCustomerInfo(name, phone, email, shippingAddress string) CustomerInfo {
	return CustomerInfo{
		name:            strings.TrimSpace(name),
		phone:           strings.TrimSpace(phone),
		email:           strings.TrimSpace(email),
		shippingAddress: strings.TrimSpace(shippingAddress),
	}
}

func (c CustomerInfo) Name() string            { return c.name }
func (c CustomerInfo) Phone() string           { return c.phone }
func (c CustomerInfo) Email() string           { return c.email }
func (c CustomerInfo) ShippingAddress() string { return c.shippingAddress }

// WithDefaults fills blank fields from fallback. Used to complete checkout input from the
// user directory and the address book.
func (c CustomerInfo) WithDefaults(fallback CustomerInfo) CustomerInfo {
	pick := func(v, d string) string {
		if v != "" {
			return v
		}
		return d
	}
	return CustomerInfo{
		name:            pick(c.name, fallback.name),
		phone:           pick(c.phone, fallback.phone),
		email:           pick(c.email, fallback.email),
		shippingAddress: pick(c.shippingAddress, fallback.shippingAddress),
	}
}

// ValidateForCOD requires name, phone and shipping address. All missing fields are reported at once.
func (c CustomerInfo) ValidateForCOD() error {
	var missing []error
	if c.name == "" {
		missing = append(missing, errs.NewValueIsRequiredError("customer name"))
	}
	if c.phone == "" {
		missing = append(missing, errs.NewValueIsRequiredError("customer phone"))
	}
	if c.shippingAddress == "" {
		missing = append(missing, errs.NewValueIsRequiredError("shipping address"))
	}
	if len(missing) == 0 {
		return nil
	}
	return errs.NewValidationErrorWithCause("cod customer info", errors.Join(missing...))
}
