package queries_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront/internal/adapters/out/memory"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/keylock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCartCache struct{ mock.Mock }

func (m *MockCartCache) Get(ctx context.Context, userID kernel.UUID) (ports.CartView, bool, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(ports.CartView), args.Bool(1), args.Error(2)
}

func (m *MockCartCache) Set(ctx context.Context, view ports.CartView) error {
	return m.Called(ctx, view).Error(0)
}

func (m *MockCartCache) Invalidate(ctx context.Context, userID kernel.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func money(t *testing.T, amount int64) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromInt(amount)
	require.NoError(t, err)
	return m
}

func saveCart(t *testing.T, uows *memory.UnitOfWorkFactory, userID kernel.UUID, price int64, quantity int) {
	t.Helper()
	c, err := cart.NewCart(userID)
	require.NoError(t, err)
	p := catalog.Product{ID: kernel.NewUUID(), Name: "Mug", Price: money(t, price), Stock: 100, Active: true}
	require.NoError(t, c.Add(p, quantity))
	require.NoError(t, uows.Create().CartRepository().Save(context.Background(), c))
}

func saveOrder(
	t *testing.T, uows *memory.UnitOfWorkFactory, userID kernel.UUID, number string, createdAt time.Time,
) *order.Order {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), "Mug", money(t, 30000), 2)
	require.NoError(t, err)
	o, err := order.NewOrder(
		kernel.NewUUID(), number, userID,
		order.NewCustomerInfo("Lan", "0901234567", "lan@example.com", "12 Le Loi"),
		order.PaymentMethodCOD, []order.LineItem{item}, money(t, 15000), createdAt,
	)
	require.NoError(t, err)
	require.NoError(t, uows.Create().OrderRepository().Add(context.Background(), o))
	return o
}

func TestGetCartQueryHandler(t *testing.T) {
	ctx := t.Context()

	t.Run("cache miss reads storage and fills the cache", func(t *testing.T) {
		// Arrange
		uows := memory.NewUnitOfWorkFactory(memory.NewStore())
		userID := kernel.NewUUID()
		saveCart(t, uows, userID, 25000, 2)

		cache := new(MockCartCache)
		cache.On("Get", ctx, userID).Return(ports.CartView{}, false, nil).Once()
		cache.On("Set", mock.Anything, mock.AnythingOfType("ports.CartView")).Return(nil).Once()

		query, err := queries.NewGetCartQuery(userID)
		require.NoError(t, err)

		// Act
		view, err := queries.NewGetCartQueryHandler(uows, keylock.New(), cache, discardLogger()).Handle(ctx, query)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, userID.String(), view.UserID)
		assert.Equal(t, 1, view.ItemCount)
		assert.Equal(t, 2, view.TotalQuantity)
		assert.Equal(t, "50000.00", view.Subtotal)
		cache.AssertExpectations(t)
	})

	t.Run("cache hit skips storage", func(t *testing.T) {
		// Arrange
		userID := kernel.NewUUID()
		cached := ports.CartView{UserID: userID.String(), ItemCount: 7, Subtotal: "1.00"}

		cache := new(MockCartCache)
		cache.On("Get", ctx, userID).Return(cached, true, nil).Once()

		query, err := queries.NewGetCartQuery(userID)
		require.NoError(t, err)

		// Act
		view, err := queries.NewGetCartQueryHandler(
			memory.NewUnitOfWorkFactory(memory.NewStore()), keylock.New(), cache, discardLogger(),
		).Handle(ctx, query)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, cached, view)
		cache.AssertExpectations(t)
	})

	t.Run("missing cart and failing cache give an empty view", func(t *testing.T) {
		// Arrange
		userID := kernel.NewUUID()
		cache := new(MockCartCache)
		cache.On("Get", ctx, userID).Return(ports.CartView{}, false, errors.New("connection refused")).Once()
		cache.On("Set", mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()

		query, err := queries.NewGetCartQuery(userID)
		require.NoError(t, err)

		// Act
		view, err := queries.NewGetCartQueryHandler(
			memory.NewUnitOfWorkFactory(memory.NewStore()), keylock.New(), cache, discardLogger(),
		).Handle(ctx, query)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, view.Items)
		assert.Equal(t, "0.00", view.Subtotal)
	})

	t.Run("fill outlives a cancelled caller", func(t *testing.T) {
		// Arrange
		uows := memory.NewUnitOfWorkFactory(memory.NewStore())
		userID := kernel.NewUUID()
		saveCart(t, uows, userID, 25000, 1)

		callerCtx, cancel := context.WithCancel(ctx)
		cancel()

		cache := new(MockCartCache)
		cache.On("Get", callerCtx, userID).Return(ports.CartView{}, false, nil).Once()
		cache.On("Set", mock.Anything, mock.AnythingOfType("ports.CartView")).
			Run(func(args mock.Arguments) {
				assert.NoError(t, args.Get(0).(context.Context).Err())
			}).
			Return(nil).Once()

		query, err := queries.NewGetCartQuery(userID)
		require.NoError(t, err)

		// Act
		view, err := queries.NewGetCartQueryHandler(uows, keylock.New(), cache, discardLogger()).Handle(callerCtx, query)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, view.ItemCount)
		cache.AssertExpectations(t)
	})

	t.Run("zero value query is rejected", func(t *testing.T) {
		_, err := queries.NewGetCartQueryHandler(
			memory.NewUnitOfWorkFactory(memory.NewStore()), keylock.New(), new(MockCartCache), discardLogger(),
		).Handle(ctx, queries.GetCartQuery{})

		require.ErrorIs(t, err, queries.ErrGetCartQueryIsNotConstructed)
	})
}

func TestGetOrderQueryHandler(t *testing.T) {
	ctx := t.Context()
	uows := memory.NewUnitOfWorkFactory(memory.NewStore())
	owner := kernel.NewUUID()
	placed := saveOrder(t, uows, owner, "ORD-20260301-AAAAAAAA", time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))
	handler := queries.NewGetOrderQueryHandler(uows)

	t.Run("owner sees the order", func(t *testing.T) {
		query, err := queries.NewGetOrderQuery(placed.ID(), &owner)
		require.NoError(t, err)

		view, err := handler.Handle(ctx, query)

		require.NoError(t, err)
		assert.Equal(t, "ORD-20260301-AAAAAAAA", view.Number)
		assert.Equal(t, "PROCESSING", view.Status)
		assert.Equal(t, "PENDING", view.PaymentStatus)
		assert.Equal(t, "60000.00", view.Subtotal)
		assert.Equal(t, "75000.00", view.GrandTotal)
		require.Len(t, view.Items, 1)
		assert.Equal(t, "Mug", view.Items[0].Name)
	})

	t.Run("staff lookup without a requesting user", func(t *testing.T) {
		query, err := queries.NewGetOrderQuery(placed.ID(), nil)
		require.NoError(t, err)

		_, err = handler.Handle(ctx, query)

		require.NoError(t, err)
	})

	t.Run("another user is rejected", func(t *testing.T) {
		stranger := kernel.NewUUID()
		query, err := queries.NewGetOrderQuery(placed.ID(), &stranger)
		require.NoError(t, err)

		_, err = handler.Handle(ctx, query)

		require.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("unknown order", func(t *testing.T) {
		query, err := queries.NewGetOrderQuery(kernel.NewUUID(), nil)
		require.NoError(t, err)

		_, err = handler.Handle(ctx, query)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestListUserOrdersQueryHandler(t *testing.T) {
	// Arrange
	ctx := t.Context()
	uows := memory.NewUnitOfWorkFactory(memory.NewStore())
	userID := kernel.NewUUID()
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	saveOrder(t, uows, userID, "ORD-20260301-AAAAAAA1", base)
	saveOrder(t, uows, userID, "ORD-20260302-AAAAAAA2", base.Add(24*time.Hour))
	saveOrder(t, uows, userID, "ORD-20260303-AAAAAAA3", base.Add(48*time.Hour))
	saveOrder(t, uows, kernel.NewUUID(), "ORD-20260303-OTHERUSR", base)

	handler := queries.NewListUserOrdersQueryHandler(uows)

	// Act
	all, errAll := handler.Handle(ctx, mustListQuery(t, userID, 0))
	latest, errLatest := handler.Handle(ctx, mustListQuery(t, userID, 2))

	// Assert
	require.NoError(t, errAll)
	require.NoError(t, errLatest)
	require.Len(t, all, 3)
	assert.Equal(t, "ORD-20260303-AAAAAAA3", all[0].Number)
	assert.Equal(t, "ORD-20260301-AAAAAAA1", all[2].Number)
	require.Len(t, latest, 2)
	assert.Equal(t, "ORD-20260302-AAAAAAA2", latest[1].Number)
}

func mustListQuery(t *testing.T, userID kernel.UUID, limit int) queries.ListUserOrdersQuery {
	t.Helper()
	q, err := queries.NewListUserOrdersQuery(userID, limit)
	require.NoError(t, err)
	return q
}
