package memory_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/adapters/out/memory"
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProduct(t *testing.T, store *memory.Store, stock int) catalog.Product {
	t.Helper()
	price, err := kernel.MoneyFromInt(100)
	require.NoError(t, err)
	p := catalog.Product{ID: kernel.NewUUID(), Name: "Lamp", Price: price, Stock: stock, Active: true}
	store.SaveProduct(p)
	return p
}

func newOrder(t *testing.T, number string, userID kernel.UUID, createdAt time.Time) *order.Order {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), "Lamp", kernel.Zero, 1)
	require.NoError(t, err)
	o, err := order.NewOrder(
		kernel.NewUUID(), number, userID, order.CustomerInfo{}, order.PaymentMethodCard,
		[]order.LineItem{item}, kernel.Zero, createdAt,
	)
	require.NoError(t, err)
	return o
}

func TestUnitOfWork_CommitAndRollback(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	factory := memory.NewUnitOfWorkFactory(store)
	p := seedProduct(t, store, 5)

	t.Run("rollback discards writes", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))
		require.NoError(t, uow.StockRepository().Decrement(ctx, p.ID, 2))

		inTx, err := uow.Catalog().GetProduct(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, inTx.Stock)

		require.NoError(t, uow.Rollback(ctx))

		after, err := factory.Create().Catalog().GetProduct(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, after.Stock)
	})

	t.Run("commit publishes writes", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))
		require.NoError(t, uow.StockRepository().Decrement(ctx, p.ID, 2))
		require.NoError(t, uow.Commit(ctx))

		after, err := factory.Create().Catalog().GetProduct(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, after.Stock)
	})

	t.Run("rollback after commit reports no transaction", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))
		require.NoError(t, uow.Commit(ctx))

		require.ErrorIs(t, uow.Rollback(ctx), memory.ErrNoTransaction)
	})
}

func TestStockRepository(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uow := memory.NewUnitOfWorkFactory(store).Create()
	p := seedProduct(t, store, 1)

	err := uow.StockRepository().Decrement(ctx, p.ID, 2)
	var stockErr *errs.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 1, stockErr.Available)

	require.ErrorIs(t, uow.StockRepository().Increment(ctx, kernel.NewUUID(), 1), errs.ErrObjectNotFound)

	locked, err := uow.StockRepository().LockForUpdate(ctx, []kernel.UUID{kernel.NewUUID(), p.ID})
	require.NoError(t, err)
	require.Len(t, locked, 1)
	assert.Equal(t, p.ID, locked[0].ID)
}

func TestCartRepository(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uow := memory.NewUnitOfWorkFactory(store).Create()
	p := seedProduct(t, store, 10)
	userID := kernel.NewUUID()

	_, err := uow.CartRepository().Get(ctx, userID)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	c, err := uow.CartRepository().GetForUpdate(ctx, userID)
	require.NoError(t, err)
	require.True(t, c.IsEmpty())
	require.NoError(t, c.Add(p, 3))
	require.NoError(t, uow.CartRepository().Save(ctx, c))

	loaded, err := uow.CartRepository().Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.TotalQuantity())
	assert.Equal(t, "300.00", loaded.Subtotal().String())

	locked, err := uow.CartRepository().GetForUpdate(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 3, locked.TotalQuantity())
}

func TestOrderRepository(t *testing.T) {
	ctx := context.Background()
	uow := memory.NewUnitOfWorkFactory(memory.NewStore()).Create()
	userID := kernel.NewUUID()
	base := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

	older := newOrder(t, "ORD-1", userID, base)
	newer := newOrder(t, "ORD-2", userID, base.Add(time.Hour))
	require.NoError(t, uow.OrderRepository().Add(ctx, older))
	require.NoError(t, uow.OrderRepository().Add(ctx, newer))
	require.NoError(t, uow.OrderRepository().Add(ctx, newOrder(t, "ORD-3", kernel.NewUUID(), base)))

	t.Run("duplicate numbers conflict", func(t *testing.T) {
		err := uow.OrderRepository().Add(ctx, newOrder(t, "ORD-1", userID, base))
		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("list is newest first and limited", func(t *testing.T) {
		orders, err := uow.OrderRepository().ListByUser(ctx, userID, 0)
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, "ORD-2", orders[0].Number())

		limited, err := uow.OrderRepository().ListByUser(ctx, userID, 1)
		require.NoError(t, err)
		assert.Len(t, limited, 1)
	})

	t.Run("update persists status", func(t *testing.T) {
		_, err := older.ChangeStatus(order.Cancelled, base)
		require.NoError(t, err)
		require.NoError(t, uow.OrderRepository().Update(ctx, older))

		loaded, err := uow.OrderRepository().GetForUpdate(ctx, older.ID())
		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, loaded.Status())
		assert.True(t, loaded.StockRestored())
	})

	t.Run("unknown order is not found", func(t *testing.T) {
		_, err := uow.OrderRepository().Get(ctx, kernel.NewUUID())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
