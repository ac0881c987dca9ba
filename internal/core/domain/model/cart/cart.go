// Package cart provides the per-user shopping cart aggregate. Items are unique per product;
// totals are always computed from the items and never stored.
package cart

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// ErrCartIsNotConstructed is returned when a Cart was not created through NewCart or RestoreCart.
var ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart constructor")

// Item is one product line of a cart with the unit price captured when it was last added.
type Item struct {
	productID kernel.UUID
	quantity  int
	unitPrice kernel.Money
}

func NewItem(productID kernel.UUID, quantity int, unitPrice kernel.Money) (Item, error) {
	if err := errors.Join(productID.Validate(), validateQuantity(quantity)); err != nil {
		return Item{}, err
	}
	return Item{productID: productID, quantity: quantity, unitPrice: unitPrice}, nil
}

func (i Item) ProductID() kernel.UUID  { return i.productID }
func (i Item) Quantity() int           { return i.quantity }
func (i Item) UnitPrice() kernel.Money { return i.unitPrice }

// Subtotal is unit price times quantity.
func (i Item) Subtotal() kernel.Money {
	return i.unitPrice.Times(i.quantity)
}

// Cart is a user's mutable collection of items.
type Cart struct {
	userID kernel.UUID
	items  []Item

	isConstructed bool
}

// NewCart creates an empty cart for userID.
func NewCart(userID kernel.UUID) (*Cart, error) {
	return RestoreCart(userID, nil)
}

// RestoreCart rebuilds a cart from storage. Duplicate product lines are rejected.
func RestoreCart(userID kernel.UUID, items []Item) (*Cart, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	c := &Cart{userID: userID, isConstructed: true}
	for _, item := range items {
		if _, found := c.indexOf(item.productID); found {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"cart items", fmt.Errorf("product %s appears more than once", item.productID),
			)
		}
		c.items = append(c.items, item)
	}
	return c, nil
}

// LockKey names the per-user lock that serializes every read-modify-write of a cart.
func LockKey(userID kernel.UUID) string {
	return "cart:" + userID.String()
}

func (c *Cart) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCartIsNotConstructed
	}
	return nil
}

func (c *Cart) UserID() kernel.UUID {
	return c.userID
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []Item {
	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items
}

// Item returns the line for productID, if any.
func (c *Cart) Item(productID kernel.UUID) (Item, bool) {
	i, found := c.indexOf(productID)
	if !found {
		return Item{}, false
	}
	return c.items[i], true
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// ItemCount is the number of distinct products.
func (c *Cart) ItemCount() int {
	return len(c.items)
}

// TotalQuantity is the sum of all line quantities.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.items {
		total += item.quantity
	}
	return total
}

// Subtotal is the sum of every line's unit price times quantity.
func (c *Cart) Subtotal() kernel.Money {
	total := kernel.Zero
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Add puts quantity units of product into the cart, merging with an existing line. The line's
// unit price is refreshed to the product's current price.
//
// The stock check is advisory: it compares the merged quantity against product.Stock and fails
// with errs.OutOfStockError. The authoritative check happens when the order is placed.
// The merged quantity is only computed once it is known to fit in stock.
func (c *Cart) Add(product catalog.Product, quantity int) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if !product.IsPurchasable() {
		return errs.NewObjectNotFoundError("product", product.ID)
	}
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	if quantity > product.Stock {
		return errs.NewOutOfStockError(product.ID.String(), quantity, product.Stock)
	}

	i, found := c.indexOf(product.ID)
	if found {
		existing := c.items[i].quantity
		if existing > product.Stock-quantity {
			return errs.NewOutOfStockError(product.ID.String(), existing+quantity, product.Stock)
		}
		c.items[i].quantity = existing + quantity
		c.items[i].unitPrice = product.Price
		return nil
	}

	item, err := NewItem(product.ID, quantity, product.Price)
	if err != nil {
		return err
	}
	c.items = append(c.items, item)
	return nil
}

// Update sets the quantity of an existing line. Quantity must be at least 1; use Remove for 0.
func (c *Cart) Update(product catalog.Product, quantity int) error {
	if err := c.Validate(); err != nil {
		return err
	}
	i, found := c.indexOf(product.ID)
	if !found {
		return errs.NewObjectNotFoundError("cart item", product.ID)
	}
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	if !product.IsPurchasable() {
		return errs.NewObjectNotFoundError("product", product.ID)
	}
	if quantity > product.Stock {
		return errs.NewOutOfStockError(product.ID.String(), quantity, product.Stock)
	}

	c.items[i].quantity = quantity
	return nil
}

// Remove deletes the line for productID. Removing a missing line is a no-op.
func (c *Cart) Remove(productID kernel.UUID) {
	i, found := c.indexOf(productID)
	if !found {
		return
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
}

// Clear removes every line.
func (c *Cart) Clear() {
	c.items = nil
}

// StockLines returns the quantities a checkout of this cart must reserve.
func (c *Cart) StockLines() []catalog.StockLine {
	lines := make([]catalog.StockLine, 0, len(c.items))
	for _, item := range c.items {
		lines = append(lines, catalog.StockLine{ProductID: item.productID, Quantity: item.quantity})
	}
	return lines
}

func (c *Cart) indexOf(productID kernel.UUID) (int, bool) {
	for i, item := range c.items {
		if item.productID.IsEqual(productID) {
			return i, true
		}
	}
	return 0, false
}

func validateQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	return nil
}
