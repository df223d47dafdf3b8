package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bibbank/accountmodel/internal/domain/event"
	pkgevents "github.com/bibbank/accountmodel/pkg/events"
	pkgkafka "github.com/bibbank/accountmodel/pkg/kafka"
)

// producer is the part of pkg/kafka.Producer the publisher needs.
type producer interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
	Close() error
}

// Publisher implements port.EventPublisher using Kafka.
type Publisher struct {
	producer producer
	logger   *slog.Logger
}

// NewPublisher creates a new Kafka-based event publisher.
func NewPublisher(p producer, logger *slog.Logger) *Publisher {
	return &Publisher{
		producer: p,
		logger:   logger,
	}
}

// Publish sends domain events to topic keyed by aggregate id, so all events of one
// account land on the same partition.
func (p *Publisher) Publish(ctx context.Context, topic string, events ...event.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]pkgkafka.Message, 0, len(events))
	for _, evt := range events {
		key := evt.AggregateID().String()

		p.logger.DebugContext(ctx, "publishing event",
			"topic", topic,
			"event_type", evt.EventType(),
			"aggregate_id", key,
			"payload_size", len(evt.Payload()),
		)

		messages = append(messages, pkgkafka.Message{
			Key:     []byte(key),
			Value:   evt.Payload(),
			Headers: pkgevents.Headers(evt),
		})
	}

	if err := p.producer.Publish(ctx, topic, messages...); err != nil {
		return fmt.Errorf("failed to publish events to topic %s: %w", topic, err)
	}
	return nil
}

// Close shuts down the Kafka publisher.
func (p *Publisher) Close() error {
	return p.producer.Close()
}
