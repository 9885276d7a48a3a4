package commands

import (
	"context"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/core/domain/services"
	"parcel/internal/pkg/errs"
)

// CreateOrderCommandHandler prices a new order, generates its number and QR token and
// stores it as PENDING.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	pricing    *services.PricingEngine
	codes      *services.OrderCodeGenerator
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	pricing *services.PricingEngine,
	codes *services.OrderCodeGenerator,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
		codes:      codes,
	}
}

// Handle returns the id of the created order.
//
// Returns:
//   - Forbidden when the caller is not a customer
//   - NotFound when the caller does not exist
//   - Validation for invalid parameters
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	actor, err := loadActor(ctx, uow.UserRepository(), cmd.CustomerID())
	if err != nil {
		return kernel.UUID{}, err
	}
	if !actor.IsCustomer() && !actor.IsAdmin() {
		return kernel.UUID{}, errs.NewForbiddenError(order.RuleOnlyCustomerCreate)
	}

	pricing, err := h.pricing.Calculate(cmd.DistanceKm(), cmd.Details().Package.Type, cmd.Details().IsUrgent)
	if err != nil {
		return kernel.UUID{}, err
	}

	number, qrCode := h.codes.Next()
	o, err := order.NewOrder(kernel.NewUUID(), number, qrCode, actor.ID, cmd.Details(), pricing, time.Now())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return o.ID(), nil
}
