package order

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// LineItem is a frozen copy of product data taken when the order is placed. Later catalog
// changes never reach it.
type LineItem struct {
	productID kernel.UUID
	name      string
	unitPrice kernel.Money
	quantity  int
}

func NewLineItem(productID kernel.UUID, name string, unitPrice kernel.Money, quantity int) (LineItem, error) {
	var nameErr, quantityErr error
	if strings.TrimSpace(name) == "" {
		nameErr = errs.NewValueIsRequiredError("line item name")
	}
	if quantity <= 0 {
		quantityErr = errs.NewValueIsInvalidErrorWithCause(
			"line item quantity", fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	if err := errors.Join(productID.Validate(), nameErr, quantityErr); err != nil {
		return LineItem{}, err
	}

	return LineItem{
		productID: productID,
		name:      strings.TrimSpace(name),
		unitPrice: unitPrice,
		quantity:  quantity,
	}, nil
}

func (l LineItem) ProductID() kernel.UUID  { return l.productID }
func (l LineItem) Name() string            { return l.name }
func (l LineItem) UnitPrice() kernel.Money { return l.unitPrice }
func (l LineItem) Quantity() int           { return l.quantity }

// Subtotal is unit price times quantity.
func (l LineItem) Subtotal() kernel.Money {
	return l.unitPrice.Times(l.quantity)
}

func (l LineItem) StockLine() catalog.StockLine {
	return catalog.StockLine{ProductID: l.productID, Quantity: l.quantity}
}
