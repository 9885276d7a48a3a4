package order

import (
	"time"

	"parcel/internal/core/domain/model/kernel"
)

const (
	EventNameCreated       = "order.created"
	EventNameStatusChanged = "order.status_changed"
)

// CreatedEvent is recorded when a customer places an order.
type CreatedEvent struct {
	ID          kernel.UUID  `json:"eventId"`
	OrderID     kernel.UUID  `json:"orderId"`
	OrderNumber string       `json:"orderNumber"`
	CustomerID  kernel.UUID  `json:"customerId"`
	TotalPrice  kernel.Money `json:"totalPrice"`
	IsUrgent    bool         `json:"isUrgent"`
	At          time.Time    `json:"occurredAt"`
}

func (e CreatedEvent) EventID() kernel.UUID { return e.ID }
func (e CreatedEvent) EventName() string { return EventNameCreated }
func (e CreatedEvent) AggregateID() kernel.UUID { return e.OrderID }
func (e CreatedEvent) OccurredAt() time.Time { return e.At }

// StatusChangedEvent is recorded on every successful transition.
type StatusChangedEvent struct {
	ID          kernel.UUID  `json:"eventId"`
	OrderID     kernel.UUID  `json:"orderId"`
	OrderNumber string       `json:"orderNumber"`
	From        string       `json:"from"`
	To          string       `json:"to"`
	ActorID     kernel.UUID  `json:"actorId"`
	DriverID    *kernel.UUID `json:"driverId,omitempty"`
	Reason      string       `json:"reason,omitempty"`
	At          time.Time    `json:"occurredAt"`
}

func (e StatusChangedEvent) EventID() kernel.UUID { return e.ID }
func (e StatusChangedEvent) EventName() string { return EventNameStatusChanged }
func (e StatusChangedEvent) AggregateID() kernel.UUID { return e.OrderID }
func (e StatusChangedEvent) OccurredAt() time.Time { return e.At }
