package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/user"
	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Order is the aggregate root of one delivery request, from creation through a terminal
// state.
//
// Order follows these invariants:
//   - id, number, qrCode and customerID are set at creation and never change
//   - the pricing snapshot is taken at creation and never changes
//   - driverID is set exactly once, by Accept
//   - acceptedAt, pickedUpAt and deliveredAt are each set exactly once, by their transition
//   - cancellationReason is only set by Cancel
//   - a failing transition leaves the order untouched
//
// Every successful transition records a StatusChangedEvent. The order never touches the
// driver profile or payments; the caller applies those side effects in the same unit of
// work.
type Order struct {
	id                 kernel.UUID
	number             string
	qrCode             string
	customerID         kernel.UUID
	driverID           *kernel.UUID
	details            Details
	pricing            Pricing
	status             Status
	createdAt          time.Time
	acceptedAt         *time.Time
	pickedUpAt         *time.Time
	deliveredAt        *time.Time
	cancellationReason string

	// version is the optimistic-lock counter of the persisted row. Repositories compare
	// and bump it; the aggregate only carries it.
	version int

	events kernel.EventRecorder
	guard  guard.ConstructorGuard
}

// NewOrder creates a PENDING order with no driver and records a CreatedEvent.
//
// Parameters:
//   - id: identifier of the new order
//   - number: generated human-readable order number
//   - qrCode: generated QR token, bound to this order only
//   - customerID: the creating customer
//   - details: package, addresses and scheduling as supplied by the customer
//   - pricing: snapshot computed by the pricing engine
//   - now: creation time
//
// Returns the joined validation errors of every invalid parameter.
//
// Example:
//
//	pricing, _ := engine.Calculate(5.2, order.PackageLarge, false)
//	number, qr := codes.Next()
//	o, err := order.NewOrder(kernel.NewUUID(), number, qr, customer.ID, details, pricing, time.Now())
func NewOrder(
	id kernel.UUID,
	number, qrCode string,
	customerID kernel.UUID,
	details Details,
	pricing Pricing,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:    Pending,
		createdAt: now.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setQRCode(qrCode),
		o.setCustomerID(customerID),
		o.setDetails(details),
		o.setPricing(pricing),
	); err != nil {
		return nil, err
	}

	o.events.Record(CreatedEvent{
		ID:          kernel.NewUUID(),
		OrderID:     o.id,
		OrderNumber: o.number,
		CustomerID:  o.customerID,
		TotalPrice:  o.pricing.TotalPrice(),
		IsUrgent:    o.details.IsUrgent,
		At:          o.createdAt,
	})
	return o, nil
}

// Snapshot is the full persisted state of an order. Repositories build one from a row
// and pass it to RestoreOrder.
type Snapshot struct {
	ID                 kernel.UUID
	Number             string
	QRCode             string
	CustomerID         kernel.UUID
	DriverID           *kernel.UUID
	Details            Details
	Pricing            Pricing
	Status             Status
	CreatedAt          time.Time
	AcceptedAt         *time.Time
	PickedUpAt         *time.Time
	DeliveredAt        *time.Time
	CancellationReason string
	Version            int
}

// RestoreOrder rebuilds an order from storage. It validates the same fields as NewOrder
// plus the status/driver consistency, and records no events.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		driverID:           s.DriverID,
		createdAt:          s.CreatedAt,
		acceptedAt:         s.AcceptedAt,
		pickedUpAt:         s.PickedUpAt,
		deliveredAt:        s.DeliveredAt,
		cancellationReason: s.CancellationReason,
		version:            s.Version,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setNumber(s.Number),
		o.setQRCode(s.QRCode),
		o.setCustomerID(s.CustomerID),
		o.setDetails(s.Details),
		o.setPricing(s.Pricing),
		o.setStatus(s.Status),
	); err != nil {
		return nil, err
	}
	if s.Status.HasDriver() && s.DriverID == nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("driverID", fmt.Errorf("status is %s", s.Status))
	}

	return o, nil
}

// Validate ensures the Order instance was created through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// Snapshot returns the full state for persistence.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:                 o.id,
		Number:             o.number,
		QRCode:             o.qrCode,
		CustomerID:         o.customerID,
		DriverID:           o.driverID,
		Details:            o.details,
		Pricing:            o.pricing,
		Status:             o.status,
		CreatedAt:          o.createdAt,
		AcceptedAt:         o.acceptedAt,
		PickedUpAt:         o.pickedUpAt,
		DeliveredAt:        o.deliveredAt,
		CancellationReason: o.cancellationReason,
		Version:            o.version,
	}
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Number() string {
	return o.number
}

func (o *Order) QRCode() string {
	return o.qrCode
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// DriverID returns the assigned driver, or nil before acceptance.
func (o *Order) DriverID() *kernel.UUID {
	return o.driverID
}

func (o *Order) Details() Details {
	return o.details
}

func (o *Order) Pricing() Pricing {
	return o.pricing
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) AcceptedAt() *time.Time {
	return o.acceptedAt
}

func (o *Order) PickedUpAt() *time.Time {
	return o.pickedUpAt
}

func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

func (o *Order) CancellationReason() string {
	return o.cancellationReason
}

// Version returns the optimistic-lock counter loaded with the order.
func (o *Order) Version() int {
	return o.version
}

// BumpVersion is called by the repository after a successful versioned write.
func (o *Order) BumpVersion() {
	o.version++
}

// DomainEvents returns the events recorded since the order was loaded or created.
func (o *Order) DomainEvents() []kernel.DomainEvent {
	return o.events.DomainEvents()
}

func (o *Order) ClearDomainEvents() {
	o.events.ClearDomainEvents()
}

// IsParticipant reports whether the user is the order's customer or its assigned driver.
func (o *Order) IsParticipant(id kernel.UUID) bool {
	return o.customerID.IsEqual(id) || o.IsAssignedDriver(id)
}

// IsAssignedDriver reports whether the user is the order's driver.
func (o *Order) IsAssignedDriver(id kernel.UUID) bool {
	return o.driverID != nil && o.driverID.IsEqual(id)
}

// CanBeViewedBy reports whether the actor may read the order: participants and admins.
func (o *Order) CanBeViewedBy(actor user.Actor) bool {
	return actor.IsAdmin() || o.IsParticipant(actor.ID)
}

// Accept assigns the calling driver and moves the order to ACCEPTED.
//
// Returns:
//   - Forbidden "only drivers can accept orders" when the actor is not a driver
//   - Conflict "already accepted" when a driver is already assigned
//   - Conflict "terminal state" when the order is finished
//
// Example:
//
//	if err := o.Accept(user.Actor{ID: driverUserID, Role: user.RoleDriver}, time.Now()); err != nil {
//	    return err
//	}
func (o *Order) Accept(actor user.Actor, now time.Time) error {
	if !actor.IsDriver() {
		return errs.NewForbiddenError(RuleOnlyDriversAccept)
	}
	if err := actor.ID.Validate(); err != nil {
		return err
	}
	if o.driverID != nil && !o.status.IsTerminal() {
		return errs.NewConflictErrorWithCause(RuleAlreadyAccepted, fmt.Errorf("driver is %s", o.driverID))
	}

	next, err := o.status.Accept()
	if err != nil {
		return err
	}

	driverID := actor.ID
	at := now.UTC()
	o.driverID = &driverID
	o.acceptedAt = &at
	o.changeStatus(next, actor, "", at)
	return nil
}

// PickUp moves an ACCEPTED order to PICKED_UP. Only the assigned driver may do it.
func (o *Order) PickUp(actor user.Actor, now time.Time) error {
	if !o.IsAssignedDriver(actor.ID) {
		return errs.NewForbiddenErrorWithCause(RuleWrongActor, errors.New("only the assigned driver can pick up"))
	}

	next, err := o.status.PickUp()
	if err != nil {
		return err
	}

	at := now.UTC()
	o.pickedUpAt = &at
	o.changeStatus(next, actor, "", at)
	return nil
}

// Deliver moves a PICKED_UP or IN_TRANSIT order to DELIVERED. Only the assigned driver may
// do it. A second call fails with Conflict "terminal state".
func (o *Order) Deliver(actor user.Actor, now time.Time) error {
	if !o.IsAssignedDriver(actor.ID) {
		return errs.NewForbiddenErrorWithCause(RuleWrongActor, errors.New("only the assigned driver can deliver"))
	}

	next, err := o.status.Deliver()
	if err != nil {
		return err
	}

	at := now.UTC()
	o.deliveredAt = &at
	o.changeStatus(next, actor, "", at)
	return nil
}

// Cancel moves any non-terminal order to CANCELLED. The customer, the assigned driver and
// admins may cancel. The reason is optional and stored trimmed.
func (o *Order) Cancel(actor user.Actor, reason string, now time.Time) error {
	if !actor.IsAdmin() && !o.IsParticipant(actor.ID) {
		return errs.NewForbiddenErrorWithCause(RuleWrongActor, errors.New("only order participants or admin can cancel"))
	}

	next, err := o.status.Cancel()
	if err != nil {
		return err
	}

	reason = strings.TrimSpace(reason)
	o.cancellationReason = reason
	o.changeStatus(next, actor, reason, now.UTC())
	return nil
}

func (o *Order) changeStatus(next Status, actor user.Actor, reason string, at time.Time) {
	prev := o.status
	o.status = next
	o.events.Record(StatusChangedEvent{
		ID:          kernel.NewUUID(),
		OrderID:     o.id,
		OrderNumber: o.number,
		From:        prev.String(),
		To:          next.String(),
		ActorID:     actor.ID,
		DriverID:    o.driverID,
		Reason:      reason,
		At:          at,
	})
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.number = number
	return nil
}

func (o *Order) setQRCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return errs.NewValueIsRequiredError("qrCode")
	}
	o.qrCode = code
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerID", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setDetails(d Details) error {
	if err := d.Validate(); err != nil {
		return err
	}
	o.details = d.normalized()
	return nil
}

func (o *Order) setPricing(p Pricing) error {
	if err := p.Validate(); err != nil {
		return err
	}
	o.pricing = p
	return nil
}

func (o *Order) setStatus(s Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	o.status = s
	return nil
}
