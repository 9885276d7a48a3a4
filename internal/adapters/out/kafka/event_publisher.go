// Package kafka relays outbox messages to a Kafka topic with a sarama SyncProducer.
package kafka

import (
	"context"
	"fmt"
	"strings"
	"time"

	"parcel/internal/core/ports"

	"github.com/IBM/sarama"
)

const (
	HeaderEventID   = "event-id"
	HeaderEventName = "event-name"
)

// NewSyncProducer connects a producer that waits for all in-sync replicas.
func NewSyncProducer(brokers string) (sarama.SyncProducer, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Retry.Backoff = 100 * time.Millisecond
	cfg.Producer.Return.Successes = true
	cfg.Producer.Idempotent = true
	cfg.Net.MaxOpenRequests = 1
	cfg.Net.DialTimeout = 10 * time.Second
	cfg.Net.ReadTimeout = 10 * time.Second
	cfg.Net.WriteTimeout = 10 * time.Second

	producer, err := sarama.NewSyncProducer(strings.Split(brokers, ","), cfg)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return producer, nil
}

// EventPublisher writes every message to one topic, keyed by aggregate id so the events
// of one order stay in order within a partition.
type EventPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

func NewEventPublisher(producer sarama.SyncProducer, topic string) *EventPublisher {
	return &EventPublisher{producer: producer, topic: topic}
}

func (p *EventPublisher) Publish(ctx context.Context, msg ports.OutboxMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, _, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(msg.AggregateID.String()),
		Value: sarama.ByteEncoder(msg.Payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte(HeaderEventID), Value: []byte(msg.ID.String())},
			{Key: []byte(HeaderEventName), Value: []byte(msg.EventName)},
		},
		Timestamp: msg.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("publish %s %s: %w", msg.EventName, msg.ID, err)
	}
	return nil
}

func (p *EventPublisher) Close() error {
	return p.producer.Close()
}
