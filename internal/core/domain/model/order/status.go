package order

import (
	"fmt"
	"strings"

	"storefront/internal/pkg/errs"
)

// Status represents the fulfillment state of an order.
//
// State transitions:
//
//	PENDING ──┬──> CONFIRMED ──┐
//	          │        │       v
//	          ├────────┼──> PROCESSING ──> SHIPPED ──> DELIVERED
//	          │        │       │
//	          v        v       v
//	      CANCELLED <──┴───────┘
//
// DELIVERED and CANCELLED are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota
	Pending
	Confirmed
	Processing
	Shipped
	Delivered
	Cancelled
)

var statusNames = map[Status]string{
	Pending:    "PENDING",
	Confirmed:  "CONFIRMED",
	Processing: "PROCESSING",
	Shipped:    "SHIPPED",
	Delivered:  "DELIVERED",
	Cancelled:  "CANCELLED",
}

// transitions lists the directed edges of the state machine.
var transitions = map[Status][]Status{
	Pending:    {Confirmed, Processing, Cancelled},
	Confirmed:  {Processing, Cancelled},
	Processing: {Shipped, Cancelled},
	Shipped:    {Delivered},
}

// ParseStatus converts the persisted or wire name of a status, case-insensitively.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for status, name := range statusNames {
		if name == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid", fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is one of the defined states.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the upper-case name used in storage and on the wire.
// It is safe to call on any Status value, including invalid ones.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// CanTransitionTo reports whether target is a direct successor of s.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is permitted from s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsCancellable reports whether s is inside the pre-shipment window.
func (s Status) IsCancellable() bool {
	return s.CanTransitionTo(Cancelled)
}
