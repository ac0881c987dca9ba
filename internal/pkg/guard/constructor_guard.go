// Package guard provides ConstructorGuard, a marker that lets value objects, commands
// and queries detect whether they were built through their constructor or are zero values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate on a zero-value guard when
// no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types that must only be created via a constructor.
//
//	type AddCartItemCommand struct {
//	    userID kernel.UUID
//	    guard  guard.ConstructorGuard
//	}
//
//	func (c AddCartItemCommand) Validate() error {
//	    return c.guard.Validate(ErrAddCartItemCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks an object as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
