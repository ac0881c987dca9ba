// Package errs provides standardized error types for the storefront order core.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes:
//   - ObjectNotFoundError: an unknown product, order, cart line or user
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: field level rejections
//   - ValidationError: a request that failed validation as a whole (e.g. missing COD fields)
//   - OutOfStockError, InsufficientStockError: advisory and authoritative stock rejections
//   - EmptyCartError: checkout attempted with no cart lines
//   - InvalidTransitionError, InvalidStateError: illegal state machine moves
//   - AuthorizationError: a customer acting on an order they do not own
//   - ConflictError: uniqueness violations reported by storage
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is classifies it
package errs
