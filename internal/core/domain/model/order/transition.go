package order

import (
	"errors"
	"time"

	"storefront/internal/pkg/errs"
)

// Effect is a side effect the caller must perform after persisting a transition.
type Effect int

const (
	// EffectNotify asks the caller to emit a status change notification.
	EffectNotify Effect = iota + 1

	// EffectRestoreStock asks the caller to give the order's StockLines back to inventory.
	EffectRestoreStock
)

func (e Effect) String() string {
	switch e {
	case EffectNotify:
		return "notify"
	case EffectRestoreStock:
		return "restore_stock"
	default:
		return "unknown"
	}
}

// TransitionResult is the outcome of Transition: the next state and the effects to run.
type TransitionResult struct {
	Order   *Order
	From    Status
	Effects []Effect
}

// Has reports whether the result carries effect e.
func (r TransitionResult) Has(e Effect) bool {
	for _, effect := range r.Effects {
		if effect == e {
			return true
		}
	}
	return false
}

// Transition computes the state of o after moving to target at the given time. o itself is
// never modified, so the state machine can be exercised without any storage.
//
// Side effects of entering a status:
//   - SHIPPED sets shippedAt if unset
//   - DELIVERED sets deliveredAt if unset; for COD orders it also completes the payment
//     and sets deliveryConfirmedAt
//   - CANCELLED yields EffectRestoreStock, only the first time the order is cancelled
//
// Every successful transition yields EffectNotify. A target that is not a successor of the
// current status fails with errs.InvalidTransitionError.
func Transition(o *Order, target Status, at time.Time) (TransitionResult, error) {
	if err := errors.Join(o.Validate(), target.Validate()); err != nil {
		return TransitionResult{}, err
	}
	if !o.status.CanTransitionTo(target) {
		return TransitionResult{}, errs.NewInvalidTransitionError(o.status, target)
	}

	at = at.UTC()
	next := o.clone()
	next.status = target
	result := TransitionResult{Order: next, From: o.status}

	switch target {
	case Shipped:
		if next.shippedAt == nil {
			next.shippedAt = &at
		}
	case Delivered:
		if next.deliveredAt == nil {
			next.deliveredAt = &at
		}
		if next.paymentMethod.IsCOD() {
			next.paymentStatus = PaymentCompleted
			if next.deliveryConfirmedAt == nil {
				next.deliveryConfirmedAt = &at
			}
		}
	case Cancelled:
		if !next.stockRestored {
			next.stockRestored = true
			result.Effects = append(result.Effects, EffectRestoreStock)
		}
	}

	result.Effects = append(result.Effects, EffectNotify)
	return result, nil
}
