package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/guudz-audit-ledger/internal/config"
	"github.com/guudz-audit-ledger/internal/domain/shared"
	"github.com/segmentio/kafka-go"
)

// ProvenanceProducer writes provenance events keyed by document id, so every
// event of a document lands on the same partition in append order.
type ProvenanceProducer struct {
	logger *slog.Logger
	writer KafkaWriter
	topic  string
}

// NewProvenanceProducer ensures the provenance topic exists and creates a synchronous writer.
func NewProvenanceProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*ProvenanceProducer, error) {
	if cfg.ProvenanceTopic == "" {
		return nil, fmt.Errorf("kafka provenance topic is not configured")
	}

	if err := ensureTopic(ctx, logger, cfg, cfg.ProvenanceTopic); err != nil {
		return nil, err
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.ProvenanceTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: cfg.MaxWait,
	}

	return &ProvenanceProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.ProvenanceTopic,
	}, nil
}

// PublishEvent writes one provenance event.
func (p *ProvenanceProducer) PublishEvent(ctx context.Context, msg shared.ProvenanceMessage) error {
	value, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal provenance event: %w", err)
	}

	kmsg := kafka.Message{
		Key:   []byte(msg.DocumentID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "action", Value: []byte(msg.Action)},
		},
	}
	if msg.CorrelationID != "" {
		kmsg.Headers = append(kmsg.Headers, kafka.Header{Key: "correlation-id", Value: []byte(msg.CorrelationID)})
	}

	if err := p.writer.WriteMessages(ctx, kmsg); err != nil {
		p.logger.Error("Failed to publish provenance event",
			"topic", p.topic,
			"document_id", msg.DocumentID,
			"action", msg.Action,
			"error", err,
		)
		return fmt.Errorf("failed to publish provenance event to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published provenance event",
		"topic", p.topic,
		"document_id", msg.DocumentID,
		"action", msg.Action,
	)
	return nil
}

func (p *ProvenanceProducer) Close() error {
	p.logger.Info("Closing provenance event producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close provenance kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
