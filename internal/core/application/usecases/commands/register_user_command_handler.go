package commands

import (
	"context"

	"parcel/internal/core/domain/model/driver"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/user"
)

type RegisterUserCommandHandler struct {
	uowFactory AccountUoWFactory
}

func NewRegisterUserCommandHandler(uowFactory AccountUoWFactory) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{uowFactory: uowFactory}
}

// Handle returns the id of the new user. A duplicate email is a Conflict.
func (h RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	u, err := user.NewUser(kernel.NewUUID(), cmd.Name(), cmd.Email(), cmd.Role())
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.UserRepository().Add(ctx, u); err != nil {
		return kernel.UUID{}, err
	}

	if u.Role() == user.RoleDriver {
		d, err := driver.NewDriver(kernel.NewUUID(), u.ID(), cmd.VehicleType())
		if err != nil {
			return kernel.UUID{}, err
		}
		if err = uow.DriverRepository().Add(ctx, d); err != nil {
			return kernel.UUID{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return u.ID(), nil
}
