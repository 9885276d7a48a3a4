package commands

import (
	"context"
	"time"

	"parcel/internal/core/domain/model/driver"
	"parcel/internal/pkg/errs"
)

// ReviewDocumentCommandHandler applies an admin's decision to a document. Approval
// re-evaluates the driver's verification in the same transaction.
type ReviewDocumentCommandHandler struct {
	uowFactory AccountUoWFactory
	maxRetries uint64
}

func NewReviewDocumentCommandHandler(uowFactory AccountUoWFactory) ReviewDocumentCommandHandler {
	return ReviewDocumentCommandHandler{
		uowFactory: uowFactory,
		maxRetries: DefaultMaxRetries,
	}
}

func (h ReviewDocumentCommandHandler) Handle(ctx context.Context, cmd ReviewDocumentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return retryOnStaleVersion(ctx, h.maxRetries, func() error {
		return h.handle(ctx, cmd)
	})
}

func (h ReviewDocumentCommandHandler) handle(ctx context.Context, cmd ReviewDocumentCommand) error {
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
	if !actor.IsAdmin() {
		return errs.NewForbiddenError(driver.RuleOnlyAdminReview)
	}

	driverRepo := uow.DriverRepository()
	d, err := driverRepo.GetByDocumentID(ctx, cmd.DocumentID())
	if err != nil {
		return err
	}

	now := time.Now()
	switch cmd.Action() {
	case driver.ReviewApprove:
		_, err = d.ApproveDocument(actor, cmd.DocumentID(), now)
	case driver.ReviewReject:
		_, err = d.RejectDocument(actor, cmd.DocumentID(), cmd.Reason(), now)
	default:
		err = cmd.Action().Validate()
	}
	if err != nil {
		return err
	}

	if err = driverRepo.Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
