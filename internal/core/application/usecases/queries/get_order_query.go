package queries

import (
	"errors"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New("GetOrderQuery must be created via NewGetOrderQuery constructor")

// GetOrderQuery fetches one order with its payment and rating. Only the customer, the
// assigned driver and admins may read it.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID, callerID)
//	view, err := handler.Handle(ctx, query)
//	if view.Payment != nil {
//	    fmt.Println("paid", view.Payment.Amount)
//	}
type GetOrderQuery struct {
	orderID  kernel.UUID
	callerID kernel.UUID
	guard    guard.ConstructorGuard
}

func NewGetOrderQuery(orderID, callerID kernel.UUID) (GetOrderQuery, error) {
	q := GetOrderQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		requireID("orderID", orderID, &q.orderID),
		requireID("callerID", callerID, &q.callerID),
	); err != nil {
		return GetOrderQuery{}, err
	}
	return q, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetOrderQuery) CallerID() kernel.UUID {
	return q.callerID
}
