package commands

import (
	"errors"

	"parcel/internal/core/domain/model/driver"
	"parcel/internal/core/domain/model/user"
	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

// RegisterUserCommand creates an account. Drivers also get a profile; vehicleType is
// ignored for other roles and defaults to driver.DefaultVehicleType.
type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	name        string
	email       string
	role        user.Role
	vehicleType driver.VehicleType

	guard guard.ConstructorGuard
}

func NewRegisterUserCommand(name, email string, role user.Role, vehicleType driver.VehicleType) (RegisterUserCommand, error) {
	if vehicleType == driver.VehicleUnknown {
		vehicleType = driver.DefaultVehicleType
	}

	cmd := RegisterUserCommand{
		name:        name,
		email:       email,
		vehicleType: vehicleType,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRole(role),
		vehicleType.Validate(),
	); err != nil {
		return RegisterUserCommand{}, err
	}

	return cmd, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) Name() string {
	return c.name
}

func (c RegisterUserCommand) Email() string {
	return c.email
}

func (c RegisterUserCommand) Role() user.Role {
	return c.role
}

func (c RegisterUserCommand) VehicleType() driver.VehicleType {
	return c.vehicleType
}

func (c *RegisterUserCommand) setRole(role user.Role) error {
	if role == user.RoleUnknown {
		return errs.NewValueIsRequiredError("role")
	}
	if err := role.Validate(); err != nil {
		return err
	}
	c.role = role
	return nil
}
