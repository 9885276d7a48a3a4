package commands

import (
	"errors"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand asks to accept, pick up, deliver or cancel an order.
// Reason is only used by cancel.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	callerID kernel.UUID
	action   order.Action
	reason   string

	guard guard.ConstructorGuard
}

func NewTransitionOrderCommand(
	orderID, callerID kernel.UUID,
	action order.Action,
	reason string,
) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCallerID(callerID),
		cmd.setAction(action),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return cmd, nil
}

func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c TransitionOrderCommand) CallerID() kernel.UUID {
	return c.callerID
}

func (c TransitionOrderCommand) Action() order.Action {
	return c.action
}

func (c TransitionOrderCommand) Reason() string {
	return c.reason
}

func (c *TransitionOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *TransitionOrderCommand) setCallerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.callerID = id
	return nil
}

func (c *TransitionOrderCommand) setAction(a order.Action) error {
	if err := a.Validate(); err != nil {
		return err
	}
	c.action = a
	return nil
}
