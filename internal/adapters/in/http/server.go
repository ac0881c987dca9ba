package http

import (
	"log/slog"
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// UserIDHeader carries the authenticated caller. It is set by the gateway in front of the service.
const UserIDHeader = "X-User-ID"

const defaultOrderListLimit = 20

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	AddCartItem         commands.AddCartItemCommandHandler
	UpdateCartItem      commands.UpdateCartItemCommandHandler
	RemoveCartItem      commands.RemoveCartItemCommandHandler
	ClearCart           commands.ClearCartCommandHandler
	CreateOrderFromCart commands.CreateOrderFromCartCommandHandler
	UpdateOrderStatus   commands.UpdateOrderStatusCommandHandler
	UpdatePaymentStatus commands.UpdatePaymentStatusCommandHandler
	CancelOrder         commands.CancelOrderCommandHandler
	ConfirmDelivery     commands.ConfirmDeliveryCommandHandler

	GetCart        queries.GetCartQueryHandler
	GetOrder       queries.GetOrderQueryHandler
	ListUserOrders queries.ListUserOrdersQueryHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "HTTPServer"),
	}
}

// GetCart handles GET /api/v1/cart.
func (s *Server) GetCart(ctx echo.Context) error {
	userID, err := callerID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetCartQuery(userID)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.handlers.GetCart.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, view)
}

// AddCartItem handles POST /api/v1/cart/items.
func (s *Server) AddCartItem(ctx echo.Context) error {
	userID, err := callerID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var request AddCartItemRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	productID, err := parseID("product id", request.ProductID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAddCartItemCommand(userID, productID, request.Quantity)
	if err != nil {
		return s.fail(ctx, err)
	}

	c, err := s.handlers.AddCartItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, queries.NewCartView(c))
}

// UpdateCartItem handles PUT /api/v1/cart/items/:productId.
func (s *Server) UpdateCartItem(ctx echo.Context) error {
	userID, err := callerID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	productID, err := parseID("product id", ctx.Param("productId"))
	if err != nil {
		return s.fail(ctx, err)
	}

	var request UpdateCartItemRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateCartItemCommand(userID, productID, request.Quantity)
	if err != nil {
		return s.fail(ctx, err)
	}

	c, err := s.handlers.UpdateCartItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, queries.NewCartView(c))
}

// RemoveCartItem handles DELETE /api/v1/cart/items/:productId.
func (s *Server) RemoveCartItem(ctx echo.Context) error {
	userID, err := callerID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	productID, err := parseID("product id", ctx.Param("productId"))
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewRemoveCartItemCommand(userID, productID)
	if err != nil {
		return s.fail(ctx, err)
	}

	c, err := s.handlers.RemoveCartItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, queries.NewCartView(c))
}

// ClearCart handles DELETE /api/v1/cart.
func (s *Server) ClearCart(ctx echo.Context) error {
	userID, err := callerID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewClearCartCommand(userID)
	if err != nil {
		return s.fail(ctx, err)
	}

	c, err := s.handlers.ClearCart.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, queries.NewCartView(c))
}

// CreateOrder handles POST /api/v1/orders - checks out the caller's cart.
func (s *Server) CreateOrder(ctx echo.Context) error {
	userID, err := callerID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var request CheckoutRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var addressID *kernel.UUID
	if request.AddressID != nil && *request.AddressID != "" {
		id, parseErr := parseID("address id", *request.AddressID)
		if parseErr != nil {
			return s.fail(ctx, parseErr)
		}
		addressID = &id
	}

	customer := order.NewCustomerInfo(
		request.CustomerName, request.CustomerPhone, request.CustomerEmail, request.ShippingAddress,
	)
	cmd, err := commands.NewCreateOrderFromCartCommand(
		userID, request.PaymentMethod, customer, addressID, request.Notes,
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.handlers.CreateOrderFromCart.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, queries.NewOrderView(o))
}

// ListOrders handles GET /api/v1/orders?limit=N - the caller's orders, newest first.
func (s *Server) ListOrders(ctx echo.Context) error {
	userID, err := callerID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	limit := defaultOrderListLimit
	if err = echo.QueryParamsBinder(ctx).Int("limit", &limit).BindError(); err != nil {
		return badRequest(ctx, "Invalid limit")
	}

	query, err := queries.NewListUserOrdersQuery(userID, limit)
	if err != nil {
		return s.fail(ctx, err)
	}

	views, err := s.handlers.ListUserOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, views)
}

// GetOrder handles GET /api/v1/orders/:id for the order's owner.
func (s *Server) GetOrder(ctx echo.Context) error {
	userID, err := callerID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.getOrder(ctx, &userID)
}

// GetOrderAsStaff handles GET /api/v1/admin/orders/:id.
func (s *Server) GetOrderAsStaff(ctx echo.Context) error {
	return s.getOrder(ctx, nil)
}

func (s *Server) getOrder(ctx echo.Context, requestingUserID *kernel.UUID) error {
	orderID, err := parseID("order id", ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID, requestingUserID)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, view)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	userID, err := callerID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	orderID, err := parseID("order id", ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, userID)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.handlers.CancelOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, queries.NewOrderView(o))
}

// ConfirmDelivery handles POST /api/v1/orders/:id/confirm-delivery.
func (s *Server) ConfirmDelivery(ctx echo.Context) error {
	userID, err := callerID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	orderID, err := parseID("order id", ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewConfirmDeliveryCommand(orderID, userID)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.handlers.ConfirmDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, queries.NewOrderView(o))
}

// UpdateOrderStatus handles PUT /api/v1/admin/orders/:id/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := parseID("order id", ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	var request UpdateOrderStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(
		orderID, request.Status, request.TrackingNumber, request.Notes,
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.handlers.UpdateOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, queries.NewOrderView(o))
}

// UpdatePaymentStatus handles PUT /api/v1/admin/orders/:id/payment.
func (s *Server) UpdatePaymentStatus(ctx echo.Context) error {
	orderID, err := parseID("order id", ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	var request UpdatePaymentStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdatePaymentStatusCommand(orderID, request.PaymentStatus)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.handlers.UpdatePaymentStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, queries.NewOrderView(o))
}

// callerID reads the authenticated user from UserIDHeader. A missing or malformed header is
// reported as an authorization failure.
func callerID(ctx echo.Context) (kernel.UUID, error) {
	raw := ctx.Request().Header.Get(UserIDHeader)
	if raw == "" {
		return kernel.UUID{}, errs.NewAuthorizationError("anonymous", ctx.Path())
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewAuthorizationError("invalid", ctx.Path())
	}
	return id, nil
}

func parseID(paramName, raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	return id, nil
}
