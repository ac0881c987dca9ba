package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// InventoryCoordinator reserves and restores stock for orders.
//
// Business rules:
//   - A reservation either decrements every line or none of them
//   - Row locks are taken in ascending product ID order so concurrent checkouts cannot deadlock
//   - Unknown or inactive products fail the reservation with errs.ObjectNotFoundError
//   - A restoration never fails because of stock levels; lines for removed products are skipped
//
// Both operations must run inside an open unit of work: the locks and the updates live and die
// with the caller's transaction.
type InventoryCoordinator struct {
	logger *slog.Logger
}

func NewInventoryCoordinator(logger *slog.Logger) InventoryCoordinator {
	return InventoryCoordinator{logger: logger.With("component", "InventoryCoordinator")}
}

// ReserveAndDecrement locks every product of lines, checks all of them against current stock,
// and only then decrements them.
//
// Returns:
//   - errs.InsufficientStockError for the first line (in product ID order) that cannot be served
//   - errs.ObjectNotFoundError if a product is unknown or inactive
//   - nil once every line was decremented
func (c InventoryCoordinator) ReserveAndDecrement(
	ctx context.Context, stock ports.StockRepository, lines []catalog.StockLine,
) error {
	merged := catalog.MergeStockLines(lines)
	if len(merged) == 0 {
		return errs.NewValueIsRequiredError("stock lines")
	}

	ids := make([]kernel.UUID, 0, len(merged))
	for _, line := range merged {
		ids = append(ids, line.ProductID)
	}

	products, err := stock.LockForUpdate(ctx, ids)
	if err != nil {
		return fmt.Errorf("lock stock: %w", err)
	}
	byID := make(map[kernel.UUID]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, line := range merged {
		p, found := byID[line.ProductID]
		if !found || !p.IsPurchasable() {
			return errs.NewObjectNotFoundError("product", line.ProductID)
		}
		if p.Stock < line.Quantity {
			return errs.NewInsufficientStockError(line.ProductID.String(), line.Quantity, p.Stock)
		}
	}

	for _, line := range merged {
		if err = stock.Decrement(ctx, line.ProductID, line.Quantity); err != nil {
			return err
		}
	}

	return nil
}

// Restore gives the quantities of lines back to stock. Lines whose product no longer exists are
// logged and skipped; they are returned so callers can report them. Any other failure aborts
// the restore and the caller's transaction must roll back.
func (c InventoryCoordinator) Restore(
	ctx context.Context, stock ports.StockRepository, lines []catalog.StockLine,
) ([]catalog.StockLine, error) {
	var skipped []catalog.StockLine

	for _, line := range catalog.MergeStockLines(lines) {
		err := stock.Increment(ctx, line.ProductID, line.Quantity)
		if errors.Is(err, errs.ErrObjectNotFound) {
			c.logger.WarnContext(ctx, "skipping stock restore for removed product",
				"product_id", line.ProductID.String(),
				"quantity", line.Quantity,
			)
			skipped = append(skipped, line)
			continue
		}
		if err != nil {
			return skipped, fmt.Errorf("restore stock for product %s: %w", line.ProductID, err)
		}
	}

	return skipped, nil
}
