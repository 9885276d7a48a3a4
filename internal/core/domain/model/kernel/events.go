package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate during a business
// operation. The unit of work persists recorded events to the outbox in the
// same transaction as the aggregate change.
type DomainEvent interface {
	EventID() UUID
	EventName() string
	AggregateID() UUID
	OccurredAt() time.Time
}

// EventRecorder is embedded by aggregates that record domain events.
type EventRecorder struct {
	events []DomainEvent
}

// Record appends an event to the pending list.
func (r *EventRecorder) Record(e DomainEvent) {
	r.events = append(r.events, e)
}

// DomainEvents returns the events recorded since the last clear.
func (r *EventRecorder) DomainEvents() []DomainEvent {
	return r.events
}

// ClearDomainEvents drops pending events once they are persisted.
func (r *EventRecorder) ClearDomainEvents() {
	r.events = nil
}
