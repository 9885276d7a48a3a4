package ports

import (
	"context"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/user"
)

type UserRepository interface {
	// Add persists a new user. A duplicate email is reported as errs.ConflictError.
	Add(ctx context.Context, aggregate *user.User) error

	Get(ctx context.Context, id kernel.UUID) (*user.User, error)
}
