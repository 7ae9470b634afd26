// Package producers publishes provenance events and dead letters to Kafka.
package producers

import (
	"context"

	"github.com/guudz-audit-ledger/internal/domain/shared"
	"github.com/segmentio/kafka-go"
)

// EventPublisher publishes provenance events for downstream consumers
type EventPublisher interface {
	PublishEvent(ctx context.Context, msg shared.ProvenanceMessage) error
	Close() error
}

// DeadLetterPublisher handles publishing messages to a Dead Letter Queue
type DeadLetterPublisher interface {
	PublishToDLQ(ctx context.Context, key string, originalMessageValue []byte, reason string) error
	Close() error
}

// KafkaWriter wraps kafka.Writer methods for testing
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}
