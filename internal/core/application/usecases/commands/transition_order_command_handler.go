package commands

import (
	"context"
	"time"

	"parcel/internal/core/domain/model/driver"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/core/domain/model/payment"
	"parcel/internal/core/domain/model/user"
	"parcel/internal/pkg/errs"
)

// RuleDriverNotVerified is returned by accept when the strict driver gate is enabled.
const RuleDriverNotVerified = "driver is not verified or not active"

// TransitionPolicy holds deployment switches for order transitions.
type TransitionPolicy struct {
	// RequireVerifiedDriver makes accept require a verified, active driver profile.
	RequireVerifiedDriver bool
	// Currency is recorded on the payment created at delivery.
	Currency string
	// MaxRetries bounds re-runs after a lost optimistic-lock race.
	MaxRetries uint64
}

// TransitionOrderCommandHandler applies one state machine action to an order inside a
// single unit of work. Delivery also updates the driver's statistics and records the
// payment in the same transaction.
//
// Concurrent accepts of one order resolve at the storage layer: the order update is a
// compare-and-set on the row version, so exactly one transaction commits. The losers
// re-run, see the order already accepted and fail with Conflict "already accepted".
type TransitionOrderCommandHandler struct {
	uowFactory UoWFactory
	policy     TransitionPolicy
	now        func() time.Time
}

func NewTransitionOrderCommandHandler(uowFactory UoWFactory, policy TransitionPolicy) TransitionOrderCommandHandler {
	if policy.Currency == "" {
		policy.Currency = payment.DefaultCurrency
	}
	if policy.MaxRetries == 0 {
		policy.MaxRetries = DefaultMaxRetries
	}
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		now:        time.Now,
	}
}

func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return retryOnStaleVersion(ctx, h.policy.MaxRetries, func() error {
		return h.handle(ctx, cmd)
	})
}

func (h TransitionOrderCommandHandler) handle(ctx context.Context, cmd TransitionOrderCommand) error {
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

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	now := h.now()
	var deliveredBy *driver.Driver

	switch cmd.Action() {
	case order.ActionAccept:
		if err = h.checkDriverGate(ctx, uow, actor); err != nil {
			return err
		}
		err = o.Accept(actor, now)
	case order.ActionPickup:
		err = o.PickUp(actor, now)
	case order.ActionDeliver:
		if err = o.Deliver(actor, now); err == nil {
			deliveredBy, err = uow.DriverRepository().GetByUserID(ctx, actor.ID)
		}
	case order.ActionCancel:
		err = o.Cancel(actor, cmd.Reason(), now)
	default:
		err = cmd.Action().Validate()
	}
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	if deliveredBy != nil {
		if err = h.settleDelivery(ctx, uow, o, deliveredBy, now); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func (h TransitionOrderCommandHandler) checkDriverGate(ctx context.Context, uow UoW, actor user.Actor) error {
	if !h.policy.RequireVerifiedDriver || !actor.IsDriver() {
		return nil
	}
	d, err := uow.DriverRepository().GetByUserID(ctx, actor.ID)
	if err != nil {
		return err
	}
	if !d.CanAcceptOrders() {
		return errs.NewForbiddenError(RuleDriverNotVerified)
	}
	return nil
}

func (h TransitionOrderCommandHandler) settleDelivery(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	d *driver.Driver,
	now time.Time,
) error {
	if err := d.RecordDelivery(o.Pricing().DriverEarnings()); err != nil {
		return err
	}
	if err := uow.DriverRepository().Update(ctx, d); err != nil {
		return err
	}

	p, err := payment.NewCompleted(kernel.NewUUID(), o.ID(), o.Pricing().TotalPrice(), h.policy.Currency, now)
	if err != nil {
		return err
	}
	return uow.PaymentRepository().Add(ctx, p)
}
