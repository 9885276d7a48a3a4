package commands

import (
	"errors"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/guard"
)

var ErrSetDriverAvailabilityCommandIsNotConstructed = errors.New(
	"SetDriverAvailabilityCommand must be created via NewSetDriverAvailabilityCommand constructor",
)

// SetDriverAvailabilityCommand toggles the caller's online flag.
type SetDriverAvailabilityCommand struct { //nolint:recvcheck //using for validation
	callerID kernel.UUID
	online   bool

	guard guard.ConstructorGuard
}

func NewSetDriverAvailabilityCommand(callerID kernel.UUID, online bool) (SetDriverAvailabilityCommand, error) {
	if err := callerID.Validate(); err != nil {
		return SetDriverAvailabilityCommand{}, err
	}
	return SetDriverAvailabilityCommand{
		callerID: callerID,
		online:   online,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c SetDriverAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetDriverAvailabilityCommandIsNotConstructed)
}

func (c SetDriverAvailabilityCommand) CallerID() kernel.UUID {
	return c.callerID
}

func (c SetDriverAvailabilityCommand) Online() bool {
	return c.online
}
