package commands

import (
	"errors"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/guard"
)

var ErrSubmitRatingCommandIsNotConstructed = errors.New(
	"SubmitRatingCommand must be created via NewSubmitRatingCommand constructor",
)

// SubmitRatingCommand rates the counterparty of a delivered order. Score bounds are
// checked by the rating aggregate.
type SubmitRatingCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	callerID kernel.UUID
	score    int
	comment  string

	guard guard.ConstructorGuard
}

func NewSubmitRatingCommand(orderID, callerID kernel.UUID, score int, comment string) (SubmitRatingCommand, error) {
	cmd := SubmitRatingCommand{
		score:   score,
		comment: comment,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCallerID(callerID),
	); err != nil {
		return SubmitRatingCommand{}, err
	}

	return cmd, nil
}

func (c SubmitRatingCommand) Validate() error {
	return c.guard.Validate(ErrSubmitRatingCommandIsNotConstructed)
}

func (c SubmitRatingCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c SubmitRatingCommand) CallerID() kernel.UUID {
	return c.callerID
}

func (c SubmitRatingCommand) Score() int {
	return c.score
}

func (c SubmitRatingCommand) Comment() string {
	return c.comment
}

func (c *SubmitRatingCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *SubmitRatingCommand) setCallerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.callerID = id
	return nil
}
