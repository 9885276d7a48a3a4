package ports

import (
	"context"
	"time"

	"parcel/internal/core/domain/model/kernel"
)

// OutboxMessage is a domain event serialised by the unit of work in the same transaction
// as the aggregate change that recorded it.
type OutboxMessage struct {
	ID          kernel.UUID
	AggregateID kernel.UUID
	EventName   string
	Payload     []byte
	OccurredAt  time.Time
}

// OutboxRepository reads and acknowledges outbox messages for the relay.
type OutboxRepository interface {
	// GetUnpublished returns up to limit unpublished messages, oldest first.
	GetUnpublished(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkPublished stamps the messages as published.
	MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error
}

// EventPublisher delivers outbox messages to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, msg OutboxMessage) error
}
