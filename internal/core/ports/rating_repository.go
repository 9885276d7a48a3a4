package ports

import (
	"context"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/rating"
)

type RatingRepository interface {
	// Add persists a rating. A second rating for the same order is reported as
	// errs.ConflictError.
	Add(ctx context.Context, aggregate *rating.Rating) error

	ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error)

	// ScoresForUser returns every score the user has ever received.
	ScoresForUser(ctx context.Context, userID kernel.UUID) ([]int, error)
}
