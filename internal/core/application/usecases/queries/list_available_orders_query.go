package queries

import (
	"errors"

	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

// DefaultAvailableOrdersLimit is the page size of the available-orders feed.
const DefaultAvailableOrdersLimit = 20

var ErrListAvailableOrdersQueryIsNotConstructed = errors.New(
	"ListAvailableOrdersQuery must be created via NewListAvailableOrdersQuery constructor",
)

// ListAvailableOrdersQuery is the feed drivers pick orders from: PENDING orders without
// a driver, newest first.
type ListAvailableOrdersQuery struct {
	limit int
	guard guard.ConstructorGuard
}

// NewListAvailableOrdersQuery builds the query. A zero limit means
// DefaultAvailableOrdersLimit.
func NewListAvailableOrdersQuery(limit int) (ListAvailableOrdersQuery, error) {
	if limit == 0 {
		limit = DefaultAvailableOrdersLimit
	}
	if limit < 0 || limit > 100 {
		return ListAvailableOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, 100)
	}
	return ListAvailableOrdersQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q ListAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListAvailableOrdersQueryIsNotConstructed)
}

func (q ListAvailableOrdersQuery) Limit() int {
	return q.limit
}
