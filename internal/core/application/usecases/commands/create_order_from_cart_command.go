package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var ErrCreateOrderFromCartCommandIsNotConstructed = errors.New(
	"CreateOrderFromCartCommand must be created via NewCreateOrderFromCartCommand constructor",
)

// CreateOrderFromCartCommand asks to check out the user's cart.
//
// COD fields are not validated here: blank customer fields may still be completed from the
// saved address referenced by AddressID, so the check happens in the handler.
//
// Example:
//
//	cmd, err := NewCreateOrderFromCartCommand(
//	    userID,
//	    "COD",
//	    order.NewCustomerInfo("Lan", "0901234567", "lan@example.com", "12 Le Loi"),
//	    nil,
//	    "call before delivery",
//	)
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderFromCartCommand struct { //nolint:recvcheck //using for validation
	userID        kernel.UUID
	paymentMethod order.PaymentMethod
	customer      order.CustomerInfo
	addressID     *kernel.UUID
	notes         string

	guard guard.ConstructorGuard
}

func NewCreateOrderFromCartCommand(
	userID kernel.UUID,
	paymentMethod string,
	customer order.CustomerInfo,
	addressID *kernel.UUID,
	notes string,
) (CreateOrderFromCartCommand, error) {
	cmd := CreateOrderFromCartCommand{
		customer: customer,
		notes:    notes,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setPaymentMethod(paymentMethod),
		cmd.setAddressID(addressID),
	); err != nil {
		return CreateOrderFromCartCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderFromCartCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderFromCartCommandIsNotConstructed)
}

func (c CreateOrderFromCartCommand) UserID() kernel.UUID                { return c.userID }
func (c CreateOrderFromCartCommand) PaymentMethod() order.PaymentMethod { return c.paymentMethod }
func (c CreateOrderFromCartCommand) Customer() order.CustomerInfo       { return c.customer }
func (c CreateOrderFromCartCommand) Notes() string                      { return c.notes }

// AddressID returns the saved address to complete shipping details from, or nil.
func (c CreateOrderFromCartCommand) AddressID() *kernel.UUID {
	if c.addressID == nil {
		return nil
	}
	id := *c.addressID
	return &id
}

func (c *CreateOrderFromCartCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	c.userID = userID
	return nil
}

func (c *CreateOrderFromCartCommand) setPaymentMethod(paymentMethod string) error {
	method, err := order.NewPaymentMethod(paymentMethod)
	if err != nil {
		return err
	}
	c.paymentMethod = method
	return nil
}

func (c *CreateOrderFromCartCommand) setAddressID(addressID *kernel.UUID) error {
	if addressID == nil {
		return nil
	}
	if err := addressID.Validate(); err != nil {
		return err
	}
	id := *addressID
	c.addressID = &id
	return nil
}
