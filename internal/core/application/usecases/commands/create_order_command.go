package commands

import (
	"errors"
	"math"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand is a customer's request for a new delivery.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(callerID, details, 5.2)
//	if err != nil {
//	    return err // field-level validation errors
//	}
//	orderID, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	details    order.Details
	distanceKm float64

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates every field up front and reports all problems at once.
func NewCreateOrderCommand(customerID kernel.UUID, details order.Details, distanceKm float64) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setDetails(details),
		cmd.setDistanceKm(distanceKm),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c CreateOrderCommand) Details() order.Details {
	return c.details
}

func (c CreateOrderCommand) DistanceKm() float64 {
	return c.distanceKm
}

func (c *CreateOrderCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.customerID = id
	return nil
}

func (c *CreateOrderCommand) setDetails(d order.Details) error {
	if err := d.Validate(); err != nil {
		return err
	}
	c.details = d
	return nil
}

func (c *CreateOrderCommand) setDistanceKm(km float64) error {
	if math.IsNaN(km) || math.IsInf(km, 0) || km < 0 {
		return errs.NewValueIsOutOfRangeError("distance", km, 0, "+Inf")
	}
	c.distanceKm = km
	return nil
}
