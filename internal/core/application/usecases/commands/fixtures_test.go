package commands_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"storefront/internal/adapters/out/memory"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/customer"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/keylock"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type cartFactory struct{ f ports.UnitOfWorkFactory }

func (c cartFactory) Create() commands.CartUoW { return c.f.Create() }

type orderFactory struct{ f ports.UnitOfWorkFactory }

func (o orderFactory) Create() commands.OrderUoW { return o.f.Create() }

type checkoutFactory struct{ f ports.UnitOfWorkFactory }

func (c checkoutFactory) Create() commands.CheckoutUoW { return c.f.Create() }

// recordingSink keeps every notification it receives.
type recordingSink struct {
	mu   sync.Mutex
	sent []ports.Notification
}

func (s *recordingSink) Notify(_ context.Context, n ports.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, n)
}

func (s *recordingSink) kinds() []ports.EventKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	kinds := make([]ports.EventKind, 0, len(s.sent))
	for _, n := range s.sent {
		kinds = append(kinds, n.Kind)
	}
	return kinds
}

// countingCache is an always-missing cache that counts invalidations.
type countingCache struct {
	mu          sync.Mutex
	invalidated int
}

func (c *countingCache) Get(context.Context, kernel.UUID) (ports.CartView, bool, error) {
	return ports.CartView{}, false, nil
}

func (c *countingCache) Set(context.Context, ports.CartView) error { return nil }

func (c *countingCache) Invalidate(context.Context, kernel.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	return nil
}

// sequenceNumbers returns the given numbers in order, then generated ones.
type sequenceNumbers struct {
	mu      sync.Mutex
	numbers []string
	next    int
}

func (s *sequenceNumbers) Generate(time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	if len(s.numbers) > 0 {
		n := s.numbers[0]
		s.numbers = s.numbers[1:]
		return n, nil
	}
	return fmt.Sprintf("ORD-TEST-%06d", s.next), nil
}

type storefront struct {
	store    *memory.Store
	uows     *memory.UnitOfWorkFactory
	sink     *recordingSink
	cache    *countingCache
	numbers  *sequenceNumbers
	locks    *keylock.KeyedMutex
	addItem  commands.AddCartItemCommandHandler
	update   commands.UpdateCartItemCommandHandler
	remove   commands.RemoveCartItemCommandHandler
	clear    commands.ClearCartCommandHandler
	checkout commands.CreateOrderFromCartCommandHandler
	status   commands.UpdateOrderStatusCommandHandler
	cancel   commands.CancelOrderCommandHandler
	confirm  commands.ConfirmDeliveryCommandHandler
	payment  commands.UpdatePaymentStatusCommandHandler
}

func newStorefront(t *testing.T) *storefront {
	t.Helper()
	store := memory.NewStore()
	uows := memory.NewUnitOfWorkFactory(store)
	logger := discardLogger()
	locks := keylock.New()
	inventory := services.NewInventoryCoordinator(logger)

	s := &storefront{
		store:   store,
		uows:    uows,
		sink:    &recordingSink{},
		cache:   &countingCache{},
		numbers: &sequenceNumbers{},
		locks:   locks,
	}

	carts := cartFactory{uows}
	orders := orderFactory{uows}
	s.addItem = commands.NewAddCartItemCommandHandler(carts, locks, s.cache, logger)
	s.update = commands.NewUpdateCartItemCommandHandler(carts, locks, s.cache, logger)
	s.remove = commands.NewRemoveCartItemCommandHandler(carts, locks, s.cache, logger)
	s.clear = commands.NewClearCartCommandHandler(carts, locks, s.cache, logger)
	s.checkout = commands.NewCreateOrderFromCartCommandHandler(
		checkoutFactory{uows}, locks, inventory, s.numbers, kernel.Zero, s.cache, s.sink, logger,
	)
	s.status = commands.NewUpdateOrderStatusCommandHandler(orders, locks, inventory, s.sink, logger)
	s.cancel = commands.NewCancelOrderCommandHandler(orders, locks, inventory, s.sink, logger)
	s.confirm = commands.NewConfirmDeliveryCommandHandler(orders, locks, inventory, s.sink, logger)
	s.payment = commands.NewUpdatePaymentStatusCommandHandler(orders, locks, inventory, s.sink, logger)
	return s
}

func (s *storefront) user(t *testing.T) kernel.UUID {
	t.Helper()
	id := kernel.NewUUID()
	s.store.SaveUser(customer.User{
		ID: id, Name: "Lan", Email: "lan@example.com", Phone: "0901234567", Active: true,
	})
	return id
}

func (s *storefront) product(t *testing.T, price int64, stock int) catalog.Product {
	t.Helper()
	m, err := kernel.MoneyFromInt(price)
	require.NoError(t, err)
	p := catalog.Product{ID: kernel.NewUUID(), Name: "Desk Lamp", Price: m, Stock: stock, Active: true}
	s.store.SaveProduct(p)
	return p
}

func (s *storefront) stock(t *testing.T, productID kernel.UUID) int {
	t.Helper()
	p, err := s.uows.Create().Catalog().GetProduct(context.Background(), productID)
	require.NoError(t, err)
	return p.Stock
}

func (s *storefront) add(t *testing.T, userID, productID kernel.UUID, quantity int) {
	t.Helper()
	cmd, err := commands.NewAddCartItemCommand(userID, productID, quantity)
	require.NoError(t, err)
	_, err = s.addItem.Handle(context.Background(), cmd)
	require.NoError(t, err)
}

func (s *storefront) placeCOD(ctx context.Context, userID kernel.UUID, name string) (*order.Order, error) {
	cmd, err := commands.NewCreateOrderFromCartCommand(
		userID, "COD", order.NewCustomerInfo(name, "0901234567", "", "12 Le Loi, District 1"), nil, "",
	)
	if err != nil {
		return nil, err
	}
	return s.checkout.Handle(ctx, cmd)
}

func (s *storefront) setStatus(t *testing.T, orderID kernel.UUID, status string) *order.Order {
	t.Helper()
	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, status, "", "")
	require.NoError(t, err)
	o, err := s.status.Handle(context.Background(), cmd)
	require.NoError(t, err)
	return o
}

func (s *storefront) storedOrder(t *testing.T, orderID kernel.UUID) *order.Order {
	t.Helper()
	o, err := s.uows.Create().OrderRepository().Get(context.Background(), orderID)
	require.NoError(t, err)
	return o
}
