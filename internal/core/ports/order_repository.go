// Package ports defines the contracts between the core and its adapters:
// repositories for every aggregate, the unit of work that binds them to one
// transaction, and the outbound document storage and event publisher.
package ports

import (
	"context"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order. Order number and QR code must be unique.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order with an optimistic version check:
	// the write only applies if the stored version still equals aggregate.Version().
	// A lost race returns an errs.VersionIsInvalidError.
	//
	// Example:
	//   if err := repo.Update(ctx, o); errs.IsRetryableConflict(err) {
	//       // reload and retry, or report Conflict
	//   }
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id. Missing orders return errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
