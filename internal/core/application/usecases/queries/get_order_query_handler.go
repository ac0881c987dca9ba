package queries

import (
	"context"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

type GetOrderQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetOrderQueryHandler(uowFactory ports.UnitOfWorkFactory) GetOrderQueryHandler {
	return GetOrderQueryHandler{uowFactory: uowFactory}
}

// Handle returns errs.AuthorizationError when a requesting user asks for someone else's order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	o, err := h.uowFactory.Create().OrderRepository().Get(ctx, query.OrderID())
	if err != nil {
		return OrderView{}, err
	}

	if query.requestingUserID != nil && !o.IsOwnedBy(*query.requestingUserID) {
		return OrderView{}, errs.NewAuthorizationError(query.requestingUserID.String(), "order "+o.ID().String())
	}

	return NewOrderView(o), nil
}

type ListUserOrdersQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewListUserOrdersQueryHandler(uowFactory ports.UnitOfWorkFactory) ListUserOrdersQueryHandler {
	return ListUserOrdersQueryHandler{uowFactory: uowFactory}
}

func (h ListUserOrdersQueryHandler) Handle(ctx context.Context, query ListUserOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.uowFactory.Create().OrderRepository().ListByUser(ctx, query.UserID(), query.Limit())
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, NewOrderView(o))
	}
	return views, nil
}
