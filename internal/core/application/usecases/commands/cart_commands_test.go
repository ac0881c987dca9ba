package commands_test

import (
	"context"
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/customer"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddCartItemCommand(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		userID, productID := kernel.NewUUID(), kernel.NewUUID()

		cmd, err := commands.NewAddCartItemCommand(userID, productID, 2)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, userID, cmd.UserID())
		assert.Equal(t, productID, cmd.ProductID())
		assert.Equal(t, 2, cmd.Quantity())
	})

	t.Run("collects every invalid field", func(t *testing.T) {
		_, err := commands.NewAddCartItemCommand(kernel.UUID{}, kernel.NewUUID(), 0)

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		require.ErrorIs(t, commands.AddCartItemCommand{}.Validate(), commands.ErrAddCartItemCommandIsNotConstructed)
	})
}

func TestCartCommands(t *testing.T) {
	ctx := context.Background()

	t.Run("add merges quantities and invalidates the cache", func(t *testing.T) {
		s := newStorefront(t)
		userID := s.user(t)
		p := s.product(t, 50000, 10)

		s.add(t, userID, p.ID, 1)
		cmd, err := commands.NewAddCartItemCommand(userID, p.ID, 2)
		require.NoError(t, err)
		c, err := s.addItem.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, 1, c.ItemCount())
		assert.Equal(t, 3, c.TotalQuantity())
		assert.Equal(t, "150000.00", c.Subtotal().String())
		assert.Equal(t, 2, s.cache.invalidated)
	})

	t.Run("add rejects quantities above stock", func(t *testing.T) {
		s := newStorefront(t)
		userID := s.user(t)
		p := s.product(t, 100, 2)
		s.add(t, userID, p.ID, 2)

		cmd, err := commands.NewAddCartItemCommand(userID, p.ID, 1)
		require.NoError(t, err)
		_, err = s.addItem.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrOutOfStock)
	})

	t.Run("add rejects unknown products and inactive users", func(t *testing.T) {
		s := newStorefront(t)
		userID := s.user(t)

		cmd, err := commands.NewAddCartItemCommand(userID, kernel.NewUUID(), 1)
		require.NoError(t, err)
		_, err = s.addItem.Handle(ctx, cmd)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)

		inactive := kernel.NewUUID()
		s.store.SaveUser(customer.User{ID: inactive, Active: false})
		cmd, err = commands.NewAddCartItemCommand(inactive, s.product(t, 1, 1).ID, 1)
		require.NoError(t, err)
		_, err = s.addItem.Handle(ctx, cmd)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("update requires an existing line", func(t *testing.T) {
		s := newStorefront(t)
		userID := s.user(t)
		p := s.product(t, 100, 5)

		cmd, err := commands.NewUpdateCartItemCommand(userID, p.ID, 2)
		require.NoError(t, err)
		_, err = s.update.Handle(ctx, cmd)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)

		s.add(t, userID, p.ID, 1)
		c, err := s.update.Handle(ctx, cmd)
		require.NoError(t, err)
		assert.Equal(t, 2, c.TotalQuantity())

		_, err = commands.NewUpdateCartItemCommand(userID, p.ID, 0)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("remove and clear are idempotent", func(t *testing.T) {
		s := newStorefront(t)
		userID := s.user(t)
		p := s.product(t, 100, 5)
		s.add(t, userID, p.ID, 1)

		removeCmd, err := commands.NewRemoveCartItemCommand(userID, p.ID)
		require.NoError(t, err)
		for range 2 {
			c, err := s.remove.Handle(ctx, removeCmd)
			require.NoError(t, err)
			assert.True(t, c.IsEmpty())
		}

		clearCmd, err := commands.NewClearCartCommand(kernel.NewUUID())
		require.NoError(t, err)
		c, err := s.clear.Handle(ctx, clearCmd)
		require.NoError(t, err)
		assert.True(t, c.IsEmpty())
	})
}
