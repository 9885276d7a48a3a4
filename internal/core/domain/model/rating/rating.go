package rating

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/order"
	"parcel/internal/core/domain/model/user"
	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

const (
	RuleNotDelivered   = "can only rate delivered orders"
	RuleAlreadyRated   = "order has already been rated"
	RuleNotParticipant = "only order participants can rate"

	// MaxCommentLength bounds the free-text comment, in runes.
	MaxCommentLength = 1000
)

var ErrRatingIsNotConstructed = errors.New("Rating must be created via NewRating or RestoreRating constructor")

// Target says which side of the order received the rating.
type Target int

const (
	TargetUnknown Target = iota
	TargetDriver
	TargetCustomer
)

func (t Target) String() string {
	switch t {
	case TargetDriver:
		return "DRIVER"
	case TargetCustomer:
		return "CUSTOMER"
	default:
		return "UNKNOWN"
	}
}

func ParseTarget(s string) (Target, error) {
	switch strings.ToUpper(s) {
	case "DRIVER":
		return TargetDriver, nil
	case "CUSTOMER":
		return TargetCustomer, nil
	default:
		return TargetUnknown, errs.NewValueIsInvalidErrorWithCause("target", fmt.Errorf("%q is not a valid target", s))
	}
}

// Rating is the single rating of a delivered order.
type Rating struct {
	id         kernel.UUID
	orderID    kernel.UUID
	fromUserID kernel.UUID
	toUserID   kernel.UUID
	target     Target
	score      Score
	comment    string
	createdAt  time.Time
	guard      guard.ConstructorGuard
}

// NewRating validates that the rater may rate the order and derives the counterparty.
// Checking that the order has no rating yet is the caller's job; the returned error for
// that case should be Conflict RuleAlreadyRated.
//
// Returns:
//   - Validation when the score is outside [1, 5] or the comment is too long
//   - Forbidden when the rater is neither the customer nor the assigned driver
//   - Conflict when the order is not DELIVERED
func NewRating(
	id kernel.UUID,
	o *order.Order,
	rater user.Actor,
	score int,
	comment string,
	now time.Time,
) (*Rating, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	r := &Rating{
		orderID:    o.ID(),
		fromUserID: rater.ID,
		comment:    strings.TrimSpace(comment),
		createdAt:  now.UTC(),
		guard:      guard.NewConstructorGuard(),
	}
	if err := errors.Join(r.setID(id), r.setScore(score), r.validateComment()); err != nil {
		return nil, err
	}

	isCustomer := o.CustomerID().IsEqual(rater.ID)
	if !isCustomer && !o.IsAssignedDriver(rater.ID) {
		return nil, errs.NewForbiddenError(RuleNotParticipant)
	}
	if o.Status() != order.Delivered || o.DriverID() == nil {
		return nil, errs.NewConflictErrorWithCause(RuleNotDelivered, fmt.Errorf("status is %s", o.Status()))
	}

	if isCustomer {
		r.toUserID = *o.DriverID()
		r.target = TargetDriver
	} else {
		r.toUserID = o.CustomerID()
		r.target = TargetCustomer
	}

	return r, nil
}

// RestoreRating rebuilds a rating loaded from storage.
func RestoreRating(
	id, orderID, fromUserID, toUserID kernel.UUID,
	target Target,
	score int,
	comment string,
	createdAt time.Time,
) (*Rating, error) {
	r := &Rating{
		orderID:    orderID,
		fromUserID: fromUserID,
		toUserID:   toUserID,
		target:     target,
		comment:    comment,
		createdAt:  createdAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setScore(score),
		orderID.Validate(),
		fromUserID.Validate(),
		toUserID.Validate(),
	); err != nil {
		return nil, err
	}
	if target != TargetDriver && target != TargetCustomer {
		return nil, errs.NewValueIsInvalidErrorWithCause("target", fmt.Errorf("%d is not a valid target", target))
	}

	return r, nil
}

func (r *Rating) Validate() error {
	if r == nil {
		return ErrRatingIsNotConstructed
	}
	return r.guard.Validate(ErrRatingIsNotConstructed)
}

func (r *Rating) ID() kernel.UUID {
	return r.id
}

func (r *Rating) OrderID() kernel.UUID {
	return r.orderID
}

func (r *Rating) FromUserID() kernel.UUID {
	return r.fromUserID
}

func (r *Rating) ToUserID() kernel.UUID {
	return r.toUserID
}

func (r *Rating) Target() Target {
	return r.target
}

func (r *Rating) Score() int {
	return r.score.Int()
}

func (r *Rating) Comment() string {
	return r.comment
}

func (r *Rating) CreatedAt() time.Time {
	return r.createdAt
}

// TargetsDriver reports whether the rating feeds a driver's average.
func (r *Rating) TargetsDriver() bool {
	return r.target == TargetDriver
}

func (r *Rating) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Rating) setScore(v int) error {
	s, err := NewScore(v)
	if err != nil {
		return err
	}
	r.score = s
	return nil
}

func (r *Rating) validateComment() error {
	if n := len([]rune(r.comment)); n > MaxCommentLength {
		return errs.NewValueIsOutOfRangeError("comment", n, 0, MaxCommentLength)
	}
	return nil
}
