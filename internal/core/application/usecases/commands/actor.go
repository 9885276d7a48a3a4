package commands

import (
	"context"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/user"
	"parcel/internal/core/ports"
)

// loadActor resolves the caller's current role from storage instead of trusting the
// transport.
func loadActor(ctx context.Context, users ports.UserRepository, callerID kernel.UUID) (user.Actor, error) {
	u, err := users.Get(ctx, callerID)
	if err != nil {
		return user.Actor{}, err
	}
	return u.Actor(), nil
}
