package queries

import (
	"errors"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/guard"
)

var ErrListOrdersForUserQueryIsNotConstructed = errors.New(
	"ListOrdersForUserQuery must be created via NewListOrdersForUserQuery constructor",
)

// ListOrdersForUserQuery lists the orders a user takes part in, newest first. Customers
// see the orders they placed, drivers the orders assigned to them and admins every order.
type ListOrdersForUserQuery struct {
	userID kernel.UUID
	guard  guard.ConstructorGuard
}

func NewListOrdersForUserQuery(userID kernel.UUID) (ListOrdersForUserQuery, error) {
	q := ListOrdersForUserQuery{guard: guard.NewConstructorGuard()}
	if err := requireID("userID", userID, &q.userID); err != nil {
		return ListOrdersForUserQuery{}, err
	}
	return q, nil
}

func (q ListOrdersForUserQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersForUserQueryIsNotConstructed)
}

func (q ListOrdersForUserQuery) UserID() kernel.UUID {
	return q.userID
}
