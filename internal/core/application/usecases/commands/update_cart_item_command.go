package commands

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrUpdateCartItemCommandIsNotConstructed = errors.New(
	"UpdateCartItemCommand must be created via NewUpdateCartItemCommand constructor",
)

// UpdateCartItemCommand sets the quantity of a product already in the cart.
// A quantity of 0 is rejected; RemoveCartItemCommand removes lines.
type UpdateCartItemCommand struct { //nolint:recvcheck //using for validation
	userID    kernel.UUID
	productID kernel.UUID
	quantity  int

	guard guard.ConstructorGuard
}

func NewUpdateCartItemCommand(userID, productID kernel.UUID, quantity int) (UpdateCartItemCommand, error) {
	cmd := UpdateCartItemCommand{guard: guard.NewConstructorGuard()}

	var quantityErr error
	if quantity < 1 {
		quantityErr = errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	if err := errors.Join(userID.Validate(), productID.Validate(), quantityErr); err != nil {
		return UpdateCartItemCommand{}, err
	}

	cmd.userID = userID
	cmd.productID = productID
	cmd.quantity = quantity
	return cmd, nil
}

func (c UpdateCartItemCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCartItemCommandIsNotConstructed)
}

func (c UpdateCartItemCommand) UserID() kernel.UUID    { return c.userID }
func (c UpdateCartItemCommand) ProductID() kernel.UUID { return c.productID }
func (c UpdateCartItemCommand) Quantity() int          { return c.quantity }
