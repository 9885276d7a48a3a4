// Package outboxrepo stores serialised domain events until the relay publishes them.
package outboxrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AggregateID uuid.UUID  `gorm:"type:uuid;index;not null"`
	EventName   string     `gorm:"size:64;not null"`
	Payload     []byte     `gorm:"not null"`
	OccurredAt  time.Time  `gorm:"index;not null"`
	PublishedAt *time.Time `gorm:"index"`
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Append serialises events as JSON rows in the current transaction.
func (r *GormOutboxRepository) Append(ctx context.Context, events []kernel.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	rows := make([]MessageDTO, 0, len(events))
	for _, e := range events {
		payload, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", e.EventName(), err)
		}
		rows = append(rows, MessageDTO{
			ID:          e.EventID().Bytes(),
			AggregateID: e.AggregateID().Bytes(),
			EventName:   e.EventName(),
			Payload:     payload,
			OccurredAt:  e.OccurredAt().UTC(),
		})
	}

	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *GormOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var rows []MessageDTO
	err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("occurred_at, id").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		id, idErr := kernel.UUIDFromBytes(row.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		aggregateID, idErr := kernel.UUIDFromBytes(row.AggregateID[:])
		if idErr != nil {
			return nil, idErr
		}
		out = append(out, ports.OutboxMessage{
			ID:          id,
			AggregateID: aggregateID,
			EventName:   row.EventName,
			Payload:     row.Payload,
			OccurredAt:  row.OccurredAt,
		})
	}
	return out, nil
}

func (r *GormOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}
	return r.db.WithContext(ctx).Model(&MessageDTO{}).
		Where("id IN ?", raw).
		Update("published_at", at.UTC()).Error
}
