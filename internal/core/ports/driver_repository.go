package ports

import (
	"context"

	"parcel/internal/core/domain/model/driver"
	"parcel/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for driver aggregates, documents
// included.
type DriverRepository interface {
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update persists the profile under the same optimistic version check as orders and
	// synchronises the document set: documents no longer in the aggregate are deleted.
	Update(ctx context.Context, aggregate *driver.Driver) error

	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetByUserID loads the profile of a driver user account.
	GetByUserID(ctx context.Context, userID kernel.UUID) (*driver.Driver, error)

	// GetByDocumentID loads the driver owning a document.
	GetByDocumentID(ctx context.Context, documentID kernel.UUID) (*driver.Driver, error)
}
