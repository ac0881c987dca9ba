package cmd

import (
	"log/slog"

	httpadapter "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/notify"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/jobs"
	"storefront/internal/metrics"
	"storefront/internal/pkg/keylock"

	"github.com/prometheus/client_golang/prometheus"
)

// CompositionRoot wires storage, cache and notification adapters into the use case handlers.
// Every handler it creates shares the same lock table, so per-cart and per-order serialization
// holds across handlers.
type CompositionRoot struct {
	config     Config
	uowFactory ports.UnitOfWorkFactory
	locks      *keylock.KeyedMutex
	inventory  services.InventoryCoordinator
	numbers    services.OrderNumberGenerator
	cache      ports.CartCache
	dispatcher *notify.Dispatcher
	notifier   ports.NotificationSink
	logger     *slog.Logger
}

func NewCompositionRoot(
	config Config,
	uowFactory ports.UnitOfWorkFactory,
	cache ports.CartCache,
	sink notify.Sink,
	registry prometheus.Registerer,
	logger *slog.Logger,
) *CompositionRoot {
	dispatcher := notify.NewDispatcher(sink, config.NotifyQueueSize, logger)
	return &CompositionRoot{
		config:     config,
		uowFactory: uowFactory,
		locks:      keylock.New(),
		inventory:  services.NewInventoryCoordinator(logger),
		numbers:    services.NewOrderNumberGenerator(),
		cache:      cache,
		dispatcher: dispatcher,
		notifier:   metrics.NewOrderEvents(registry).Wrap(dispatcher),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateAddCartItemCommandHandler() commands.AddCartItemCommandHandler {
	return commands.NewAddCartItemCommandHandler(c.cartUoWFactory(), c.locks, c.cache, c.logger)
}

func (c *CompositionRoot) CreateUpdateCartItemCommandHandler() commands.UpdateCartItemCommandHandler {
	return commands.NewUpdateCartItemCommandHandler(c.cartUoWFactory(), c.locks, c.cache, c.logger)
}

func (c *CompositionRoot) CreateRemoveCartItemCommandHandler() commands.RemoveCartItemCommandHandler {
	return commands.NewRemoveCartItemCommandHandler(c.cartUoWFactory(), c.locks, c.cache, c.logger)
}

func (c *CompositionRoot) CreateClearCartCommandHandler() commands.ClearCartCommandHandler {
	return commands.NewClearCartCommandHandler(c.cartUoWFactory(), c.locks, c.cache, c.logger)
}

func (c *CompositionRoot) CreateCreateOrderFromCartCommandHandler() commands.CreateOrderFromCartCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderFromCartCommandHandler(
		f, c.locks, c.inventory, c.numbers, c.config.ShippingFee, c.cache, c.notifier, c.logger,
	)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory(), c.locks, c.inventory, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateUpdatePaymentStatusCommandHandler() commands.UpdatePaymentStatusCommandHandler {
	return commands.NewUpdatePaymentStatusCommandHandler(
		c.orderUoWFactory(), c.locks, c.inventory, c.notifier, c.logger,
	)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.locks, c.inventory, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(c.orderUoWFactory(), c.locks, c.inventory, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateGetCartQueryHandler() queries.GetCartQueryHandler {
	return queries.NewGetCartQueryHandler(c.uowFactory, c.locks, c.cache, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateListUserOrdersQueryHandler() queries.ListUserOrdersQueryHandler {
	return queries.NewListUserOrdersQueryHandler(c.uowFactory)
}

// CreateHTTPServer builds the echo controllers over every use case.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		AddCartItem:         c.CreateAddCartItemCommandHandler(),
		UpdateCartItem:      c.CreateUpdateCartItemCommandHandler(),
		RemoveCartItem:      c.CreateRemoveCartItemCommandHandler(),
		ClearCart:           c.CreateClearCartCommandHandler(),
		CreateOrderFromCart: c.CreateCreateOrderFromCartCommandHandler(),
		UpdateOrderStatus:   c.CreateUpdateOrderStatusCommandHandler(),
		UpdatePaymentStatus: c.CreateUpdatePaymentStatusCommandHandler(),
		CancelOrder:         c.CreateCancelOrderCommandHandler(),
		ConfirmDelivery:     c.CreateConfirmDeliveryCommandHandler(),
		GetCart:             c.CreateGetCartQueryHandler(),
		GetOrder:            c.CreateGetOrderQueryHandler(),
		ListUserOrders:      c.CreateListUserOrdersQueryHandler(),
	}, c.logger)
}

// CreateJobManager schedules the relay of queued notifications.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.dispatcher, c.config.NotifyRelaySpec, c.logger)
}

func (c *CompositionRoot) cartUoWFactory() commands.CartUoWFactory {
	return FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

type FuncCartUoWFactory func() commands.CartUoW

func (f FuncCartUoWFactory) Create() commands.CartUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}
