package queries

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New("GetOrderQuery must be created via NewGetOrderQuery constructor")

	ErrListUserOrdersQueryIsNotConstructed = errors.New(
		"ListUserOrdersQuery must be created via NewListUserOrdersQuery constructor",
	)
)

// GetOrderQuery retrieves one order. With a requesting user the order must belong to that user;
// without one (staff access) any order is returned.
type GetOrderQuery struct {
	orderID          kernel.UUID
	requestingUserID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID, requestingUserID *kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	q := GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}
	if requestingUserID != nil {
		if err := requestingUserID.Validate(); err != nil {
			return GetOrderQuery{}, err
		}
		id := *requestingUserID
		q.requestingUserID = &id
	}
	return q, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// ListUserOrdersQuery retrieves a user's orders, newest first.
type ListUserOrdersQuery struct {
	userID kernel.UUID
	limit  int

	guard guard.ConstructorGuard
}

// NewListUserOrdersQuery treats a non-positive limit as no limit.
func NewListUserOrdersQuery(userID kernel.UUID, limit int) (ListUserOrdersQuery, error) {
	if err := userID.Validate(); err != nil {
		return ListUserOrdersQuery{}, err
	}
	return ListUserOrdersQuery{userID: userID, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q ListUserOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListUserOrdersQueryIsNotConstructed)
}

func (q ListUserOrdersQuery) UserID() kernel.UUID { return q.userID }
func (q ListUserOrdersQuery) Limit() int          { return q.limit }
