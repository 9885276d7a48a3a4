package commands

import (
	"errors"

	"parcel/internal/core/domain/model/driver"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/guard"
)

var ErrReviewDocumentCommandIsNotConstructed = errors.New(
	"ReviewDocumentCommand must be created via NewReviewDocumentCommand constructor",
)

// ReviewDocumentCommand is an admin's approve or reject decision. Reason is required for
// reject; the aggregate enforces it.
type ReviewDocumentCommand struct { //nolint:recvcheck //using for validation
	documentID kernel.UUID
	callerID   kernel.UUID
	action     driver.ReviewAction
	reason     string

	guard guard.ConstructorGuard
}

func NewReviewDocumentCommand(
	documentID, callerID kernel.UUID,
	action driver.ReviewAction,
	reason string,
) (ReviewDocumentCommand, error) {
	cmd := ReviewDocumentCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDocumentID(documentID),
		cmd.setCallerID(callerID),
		cmd.setAction(action),
	); err != nil {
		return ReviewDocumentCommand{}, err
	}

	return cmd, nil
}

func (c ReviewDocumentCommand) Validate() error {
	return c.guard.Validate(ErrReviewDocumentCommandIsNotConstructed)
}

func (c ReviewDocumentCommand) DocumentID() kernel.UUID {
	return c.documentID
}

func (c ReviewDocumentCommand) CallerID() kernel.UUID {
	return c.callerID
}

func (c ReviewDocumentCommand) Action() driver.ReviewAction {
	return c.action
}

func (c ReviewDocumentCommand) Reason() string {
	return c.reason
}

func (c *ReviewDocumentCommand) setDocumentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.documentID = id
	return nil
}

func (c *ReviewDocumentCommand) setCallerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.callerID = id
	return nil
}

func (c *ReviewDocumentCommand) setAction(a driver.ReviewAction) error {
	if err := a.Validate(); err != nil {
		return err
	}
	c.action = a
	return nil
}
