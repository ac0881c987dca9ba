package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")
	ErrVersionIsInvalid  = errors.New("version is invalid")
)

// ObjectNotFoundError reports that an entity looked up by ID does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, sanitize(fmt.Sprint(e.ID)), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(fmt.Sprint(e.ID)))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a value that failed a domain rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside of [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitize(fmt.Sprint(e.Value)), e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// VersionIsInvalidError reports a stale or malformed aggregate version.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewVersionIsInvalidError(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

func NewVersionIsInvalidErrorWithCause(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

func (e *VersionIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrVersionIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName)
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
