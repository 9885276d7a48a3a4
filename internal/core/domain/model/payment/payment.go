// Package payment holds the payment record written when an order is delivered.
// No gateway is involved; the record only documents the amount owed.
package payment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

// DefaultCurrency is used when no currency is configured.
const DefaultCurrency = "EUR"

var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewCompleted or RestorePayment constructor")

type Status int

const (
	StatusUnknown Status = iota
	StatusPending
	StatusCompleted
	StatusFailed
	StatusRefunded
)

var statusNames = map[Status]string{
	StatusPending:   "PENDING",
	StatusCompleted: "COMPLETED",
	StatusFailed:    "FAILED",
	StatusRefunded:  "REFUNDED",
}

func ParseStatus(s string) (Status, error) {
	for st, name := range statusNames {
		if strings.EqualFold(s, name) {
			return st, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid payment status", s))
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Payment is owned by exactly one order.
type Payment struct {
	id        kernel.UUID
	orderID   kernel.UUID
	amount    kernel.Money
	currency  string
	status    Status
	createdAt time.Time
	guard     guard.ConstructorGuard
}

// NewCompleted records a completed payment of amount for a delivered order.
func NewCompleted(id, orderID kernel.UUID, amount kernel.Money, currency string, now time.Time) (*Payment, error) {
	return build(id, orderID, amount, currency, StatusCompleted, now.UTC())
}

// RestorePayment rebuilds a payment loaded from storage.
func RestorePayment(
	id, orderID kernel.UUID,
	amount kernel.Money,
	currency string,
	status Status,
	createdAt time.Time,
) (*Payment, error) {
	return build(id, orderID, amount, currency, status, createdAt)
}

func build(
	id, orderID kernel.UUID,
	amount kernel.Money,
	currency string,
	status Status,
	createdAt time.Time,
) (*Payment, error) {
	var amountErr, currencyErr, statusErr error
	if amount.IsNegative() {
		amountErr = errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is negative", amount))
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 {
		currencyErr = errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%q is not an ISO 4217 code", currency))
	}
	if _, ok := statusNames[status]; !ok {
		statusErr = errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid payment status", status))
	}
	if err := errors.Join(id.Validate(), orderID.Validate(), amountErr, currencyErr, statusErr); err != nil {
		return nil, err
	}

	return &Payment{
		id:        id,
		orderID:   orderID,
		amount:    amount,
		currency:  currency,
		status:    status,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (p *Payment) Validate() error {
	if p == nil {
		return ErrPaymentIsNotConstructed
	}
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

func (p *Payment) ID() kernel.UUID {
	return p.id
}

func (p *Payment) OrderID() kernel.UUID {
	return p.orderID
}

func (p *Payment) Amount() kernel.Money {
	return p.amount
}

func (p *Payment) Currency() string {
	return p.currency
}

func (p *Payment) Status() Status {
	return p.status
}

func (p *Payment) CreatedAt() time.Time {
	return p.createdAt
}
