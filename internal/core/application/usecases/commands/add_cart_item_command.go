package commands

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrAddCartItemCommandIsNotConstructed = errors.New(
	"AddCartItemCommand must be created via NewAddCartItemCommand constructor",
)

// AddCartItemCommand asks to put quantity units of a product into the user's cart.
//
// Example:
//
//	cmd, err := NewAddCartItemCommand(userID, productID, 2)
//	if err != nil {
//	    return fmt.Errorf("invalid cart input: %w", err)
//	}
//	cart, err := handler.Handle(ctx, cmd)
type AddCartItemCommand struct { //nolint:recvcheck //using for validation
	userID    kernel.UUID
	productID kernel.UUID
	quantity  int

	guard guard.ConstructorGuard
}

func NewAddCartItemCommand(userID, productID kernel.UUID, quantity int) (AddCartItemCommand, error) {
	cmd := AddCartItemCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setProductID(productID),
		cmd.setQuantity(quantity),
	); err != nil {
		return AddCartItemCommand{}, err
	}

	return cmd, nil
}

func (c AddCartItemCommand) Validate() error {
	return c.guard.Validate(ErrAddCartItemCommandIsNotConstructed)
}

func (c AddCartItemCommand) UserID() kernel.UUID    { return c.userID }
func (c AddCartItemCommand) ProductID() kernel.UUID { return c.productID }
func (c AddCartItemCommand) Quantity() int          { return c.quantity }

func (c *AddCartItemCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	c.userID = userID
	return nil
}

func (c *AddCartItemCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	c.productID = productID
	return nil
}

func (c *AddCartItemCommand) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	c.quantity = quantity
	return nil
}
