package commands

import (
	"context"

	"parcel/internal/pkg/errs"
)

const RuleOnlyDriversGoOnline = "only drivers can change availability"

type SetDriverAvailabilityCommandHandler struct {
	uowFactory AccountUoWFactory
	maxRetries uint64
}

func NewSetDriverAvailabilityCommandHandler(uowFactory AccountUoWFactory) SetDriverAvailabilityCommandHandler {
	return SetDriverAvailabilityCommandHandler{
		uowFactory: uowFactory,
		maxRetries: DefaultMaxRetries,
	}
}

func (h SetDriverAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetDriverAvailabilityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return retryOnStaleVersion(ctx, h.maxRetries, func() error {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		actor, err := loadActor(ctx, uow.UserRepository(), cmd.CallerID())
		if err != nil {
			return err
		}
		if !actor.IsDriver() {
			return errs.NewForbiddenError(RuleOnlyDriversGoOnline)
		}

		d, err := uow.DriverRepository().GetByUserID(ctx, actor.ID)
		if err != nil {
			return err
		}
		d.SetOnline(cmd.Online())

		if err = uow.DriverRepository().Update(ctx, d); err != nil {
			return err
		}
		return uow.Commit(ctx)
	})
}
