package http

import (
	"errors"
	"net/http"

	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errs.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrOutOfStock),
		errors.Is(err, errs.ErrInsufficientStock),
		errors.Is(err, errs.ErrEmptyCart):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an Error body. Internal errors are logged and hidden from the client.
func (s *Server) fail(ctx echo.Context, err error) error {
	code := statusFor(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
		message = "Internal server error"
	}
	return ctx.JSON(code, Error{Code: code, Message: message})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}
