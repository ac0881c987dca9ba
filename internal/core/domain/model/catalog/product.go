// Package catalog holds the read model of products owned by the external catalog and the
// stock lines the order core reserves and restores against it.
package catalog

import (
	"fmt"
	"slices"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// Product is the catalog's view of a sellable item. The order core never mutates it directly;
// stock changes go through StockRepository.
type Product struct {
	ID     kernel.UUID
	Name   string
	Price  kernel.Money
	Stock  int
	Active bool
}

// IsPurchasable reports whether the product may be put into a cart or an order.
func (p Product) IsPurchasable() bool {
	return p.Active
}

// StockLine is a quantity of one product to take from or give back to stock.
type StockLine struct {
	ProductID kernel.UUID
	Quantity  int
}

func NewStockLine(productID kernel.UUID, quantity int) (StockLine, error) {
	if err := productID.Validate(); err != nil {
		return StockLine{}, err
	}
	if quantity <= 0 {
		return StockLine{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	return StockLine{ProductID: productID, Quantity: quantity}, nil
}

// MergeStockLines sums quantities per product and returns the lines ordered by product ID,
// the order in which row locks are taken.
func MergeStockLines(lines []StockLine) []StockLine {
	totals := make(map[kernel.UUID]int, len(lines))
	ids := make([]kernel.UUID, 0, len(lines))
	for _, l := range lines {
		if _, seen := totals[l.ProductID]; !seen {
			ids = append(ids, l.ProductID)
		}
		totals[l.ProductID] += l.Quantity
	}

	slices.SortFunc(ids, kernel.UUID.Compare)

	merged := make([]StockLine, 0, len(ids))
	for _, id := range ids {
		merged = append(merged, StockLine{ProductID: id, Quantity: totals[id]})
	}
	return merged
}
