package postgres

import (
	"context"

	"parcel/internal/adapters/out/postgres/driverrepo"
	"parcel/internal/adapters/out/postgres/orderrepo"
	"parcel/internal/adapters/out/postgres/outboxrepo"
	"parcel/internal/adapters/out/postgres/paymentrepo"
	"parcel/internal/adapters/out/postgres/ratingrepo"
	"parcel/internal/adapters/out/postgres/userrepo"

	"gorm.io/gorm"
)

// Models lists every table the service owns, in dependency order.
func Models() []any {
	return []any{
		&userrepo.UserDTO{},
		&driverrepo.DriverDTO{},
		&driverrepo.DocumentDTO{},
		&orderrepo.OrderDTO{},
		&ratingrepo.RatingDTO{},
		&paymentrepo.PaymentDTO{},
		&outboxrepo.MessageDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(Models()...)
}
