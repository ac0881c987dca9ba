package errs

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrOutOfStock        = errors.New("out of stock")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidState      = errors.New("invalid state")
	ErrUnauthorized      = errors.New("not authorized")
	ErrConflict          = errors.New("conflict")
)

// ValidationError groups one or more field errors raised while validating a request.
type ValidationError struct {
	Subject string
	Cause   error
}

func NewValidationError(subject string) *ValidationError {
	return &ValidationError{Subject: subject}
}

func NewValidationErrorWithCause(subject string, cause error) *ValidationError {
	return &ValidationError{Subject: subject, Cause: cause}
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValidation, e.Subject, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrValidation, e.Subject)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// OutOfStockError is the advisory stock rejection raised by cart operations.
type OutOfStockError struct {
	ProductID string
	Requested int
	Available int
}

func NewOutOfStockError(productID string, requested, available int) *OutOfStockError {
	return &OutOfStockError{ProductID: productID, Requested: requested, Available: available}
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("%s: product %s, requested %d, available %d",
		ErrOutOfStock, e.ProductID, e.Requested, e.Available)
}

func (e *OutOfStockError) Unwrap() error {
	return ErrOutOfStock
}

// InsufficientStockError is the authoritative rejection raised while reserving stock for an order.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func NewInsufficientStockError(productID string, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{ProductID: productID, Requested: requested, Available: available}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: product %s, requested %d, available %d",
		ErrInsufficientStock, e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

type EmptyCartError struct {
	UserID string
}

func NewEmptyCartError(userID string) *EmptyCartError {
	return &EmptyCartError{UserID: userID}
}

func (e *EmptyCartError) Error() string {
	return fmt.Sprintf("%s: user %s", ErrEmptyCart, e.UserID)
}

func (e *EmptyCartError) Unwrap() error {
	return ErrEmptyCart
}

// InvalidTransitionError reports a status change that is not an edge of the state machine.
type InvalidTransitionError struct {
	From string
	To   string
}

func NewInvalidTransitionError(from, to fmt.Stringer) *InvalidTransitionError {
	return &InvalidTransitionError{From: from.String(), To: to.String()}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// InvalidStateError reports an operation attempted while the aggregate is in the wrong state.
type InvalidStateError struct {
	Expected string
	Actual   string
}

func NewInvalidStateError(expected, actual fmt.Stringer) *InvalidStateError {
	return &InvalidStateError{Expected: expected.String(), Actual: actual.String()}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: expected %s, actual %s", ErrInvalidState, e.Expected, e.Actual)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// AuthorizationError reports that a user acted on a resource they do not own.
type AuthorizationError struct {
	UserID   string
	Resource string
}

func NewAuthorizationError(userID, resource string) *AuthorizationError {
	return &AuthorizationError{UserID: userID, Resource: resource}
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s: user %s on %s", ErrUnauthorized, e.UserID, e.Resource)
}

func (e *AuthorizationError) Unwrap() error {
	return ErrUnauthorized
}

// ConflictError reports a uniqueness or concurrency conflict detected by storage.
type ConflictError struct {
	ParamName string
	Cause     error
}

func NewConflictError(paramName string, cause error) *ConflictError {
	return &ConflictError{ParamName: paramName, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrConflict, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrConflict, e.ParamName)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// IsValidation reports whether err is any of the input validation errors.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsOutOfRange)
}
