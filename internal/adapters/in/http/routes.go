package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// StaffTokenHeader authenticates calls to the /api/v1/admin routes.
const StaffTokenHeader = "X-Staff-Token"

// RegisterHandlers mounts the storefront API on router. When staffToken is empty the admin routes
// are left open, which is only meant for local development.
func RegisterHandlers(router *echo.Echo, s *Server, staffToken string) {
	router.GET("/health", Health)

	api := router.Group("/api/v1")
	api.GET("/cart", s.GetCart)
	api.DELETE("/cart", s.ClearCart)
	api.POST("/cart/items", s.AddCartItem)
	api.PUT("/cart/items/:productId", s.UpdateCartItem)
	api.DELETE("/cart/items/:productId", s.RemoveCartItem)

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/confirm-delivery", s.ConfirmDelivery)

	admin := api.Group("/admin")
	if staffToken != "" {
		admin.Use(middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
			KeyLookup: "header:" + StaffTokenHeader,
			Validator: func(key string, _ echo.Context) (bool, error) {
				return subtle.ConstantTimeCompare([]byte(key), []byte(staffToken)) == 1, nil
			},
		}))
	}
	admin.GET("/orders/:id", s.GetOrderAsStaff)
	admin.PUT("/orders/:id/status", s.UpdateOrderStatus)
	admin.PUT("/orders/:id/payment", s.UpdatePaymentStatus)
}

func Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}
