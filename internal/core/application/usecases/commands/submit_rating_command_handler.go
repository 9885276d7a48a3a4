package commands

import (
	"context"
	"time"

	"parcel/internal/core/domain/services"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/rating"
	"parcel/internal/pkg/errs"
)

// SubmitRatingCommandHandler stores a rating and, when a driver was rated, recomputes the
// driver's average in the same transaction. The order itself is not modified.
type SubmitRatingCommandHandler struct {
	uowFactory UoWFactory
	maxRetries uint64
}

func NewSubmitRatingCommandHandler(uowFactory UoWFactory) SubmitRatingCommandHandler {
	return SubmitRatingCommandHandler{
		uowFactory: uowFactory,
		maxRetries: DefaultMaxRetries,
	}
}

// Handle returns the id of the new rating.
func (h SubmitRatingCommandHandler) Handle(ctx context.Context, cmd SubmitRatingCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	var ratingID kernel.UUID
	err := retryOnStaleVersion(ctx, h.maxRetries, func() error {
		var err error
		ratingID, err = h.handle(ctx, cmd)
		return err
	})
	if err != nil {
		return kernel.UUID{}, err
	}
	return ratingID, nil
}

func (h SubmitRatingCommandHandler) handle(ctx context.Context, cmd SubmitRatingCommand) (kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	actor, err := loadActor(ctx, uow.UserRepository(), cmd.CallerID())
	if err != nil {
		return kernel.UUID{}, err
	}

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return kernel.UUID{}, err
	}

	r, err := rating.NewRating(kernel.NewUUID(), o, actor, cmd.Score(), cmd.Comment(), time.Now())
	if err != nil {
		return kernel.UUID{}, err
	}

	ratingRepo := uow.RatingRepository()
	exists, err := ratingRepo.ExistsForOrder(ctx, o.ID())
	if err != nil {
		return kernel.UUID{}, err
	}
	if exists {
		return kernel.UUID{}, errs.NewConflictError(rating.RuleAlreadyRated)
	}

	if err = ratingRepo.Add(ctx, r); err != nil {
		return kernel.UUID{}, err
	}

	if r.TargetsDriver() {
		if err = h.refreshDriverAverage(ctx, uow, r.ToUserID()); err != nil {
			return kernel.UUID{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return r.ID(), nil
}

func (h SubmitRatingCommandHandler) refreshDriverAverage(ctx context.Context, uow UoW, driverUserID kernel.UUID) error {
	d, err := uow.DriverRepository().GetByUserID(ctx, driverUserID)
	if err != nil {
		return err
	}

	scores, err := uow.RatingRepository().ScoresForUser(ctx, driverUserID)
	if err != nil {
		return err
	}

	if err = d.SetAverageRating(services.AverageScore(scores)); err != nil {
		return err
	}
	return uow.DriverRepository().Update(ctx, d)
}
