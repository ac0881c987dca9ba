package queries

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrGetCartQueryIsNotConstructed = errors.New("GetCartQuery must be created via NewGetCartQuery constructor")

// GetCartQuery retrieves a user's cart with its totals. A user without a stored cart gets an
// empty one.
type GetCartQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetCartQuery(userID kernel.UUID) (GetCartQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetCartQuery{}, err
	}
	return GetCartQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCartQueryIsNotConstructed)
}

func (q GetCartQuery) UserID() kernel.UUID {
	return q.userID
}
