package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/guudz-audit-ledger/internal/domain/provenance"
	"github.com/guudz-audit-ledger/internal/domain/shared"
	"github.com/guudz-audit-ledger/internal/platform/messaging/producers"
)

var errIncompleteEvent = errors.New("event is missing document_id or action")

// EventHandler handles provenance events consumed from Kafka
type EventHandler struct {
	notifier Notifier
	producer producers.DeadLetterPublisher
	logger   *slog.Logger
}

// NewEventHandler creates a new handler. producer may be nil when no DLQ is configured.
func NewEventHandler(logger *slog.Logger, notifier Notifier, producer producers.DeadLetterPublisher) *EventHandler {
	return &EventHandler{
		notifier: notifier,
		producer: producer,
		logger:   logger,
	}
}

// HandleMessage raises a notification for one provenance event. Messages that can
// never be processed go to the DLQ, or are dropped when there is none, and are committed.
func (h *EventHandler) HandleMessage(ctx context.Context, key []byte, value []byte) error {
	var msg shared.ProvenanceMessage
	if err := json.Unmarshal(value, &msg); err != nil {
		return h.deadLetter(ctx, key, value, "Failed to unmarshal provenance event from Kafka message", err)
	}
	if msg.DocumentID == "" || msg.Action == "" {
		return h.deadLetter(ctx, key, value, "Rejected incomplete provenance event", errIncompleteEvent)
	}

	logger := h.logger
	if msg.CorrelationID != "" {
		logger = h.logger.With("correlation_id", msg.CorrelationID)
	}

	logger.Info("Received provenance event",
		"event_id", msg.EventID,
		"document_id", msg.DocumentID,
		"action", msg.Action,
	)

	if err := h.notifier.Notify(ctx, FromEvent(msg)); err != nil {
		logger.Error("Failed to deliver notification",
			"event_id", msg.EventID,
			"document_id", msg.DocumentID,
			"error", err,
		)
		return fmt.Errorf("notifying event %s failed: %w", msg.EventID, err)
	}
	return nil
}

func (h *EventHandler) deadLetter(ctx context.Context, key, value []byte, reason string, cause error) error {
	h.logger.Error(reason, "error", cause, "message_key", string(key))

	if h.producer == nil {
		h.logger.Warn("Dropping unprocessable message, no DLQ configured", "message_key", string(key))
		return nil
	}

	dlqReason := fmt.Sprintf("%s: %s", reason, cause.Error())
	dlqErr := h.producer.PublishToDLQ(ctx, string(key), value, dlqReason)
	switch {
	case dlqErr == nil:
		h.logger.Info("Successfully published unprocessable message to DLQ", "message_key", string(key), "reason", dlqReason)
		return nil
	case errors.Is(dlqErr, producers.ErrDLQDisabled):
		h.logger.Warn("Dropping unprocessable message, no DLQ configured", "message_key", string(key))
		return nil
	}

	h.logger.Error("Failed to publish message to DLQ",
		"dlq_error", dlqErr,
		"original_error", cause,
		"message_key", string(key),
	)
	return fmt.Errorf("%s: %w", reason, cause)
}

// FromEvent describes a provenance event for the user.
func FromEvent(msg shared.ProvenanceMessage) Notification {
	n := Notification{
		Severity:      SeveritySuccess,
		DocumentID:    msg.DocumentID,
		CorrelationID: msg.CorrelationID,
		CreatedAt:     msg.Timestamp,
	}
	switch provenance.Action(msg.Action) {
	case provenance.ActionCreated:
		n.Title = "Document registered"
		n.Description = fmt.Sprintf("%s was registered on chain with hash %s", msg.DocumentID, msg.DocumentHash)
	case provenance.ActionSigned:
		n.Title = "Document signed"
		n.Description = fmt.Sprintf("%s was signed by %s", msg.DocumentID, msg.Actor)
	case provenance.ActionCustomsCleared:
		n.Title = "Customs cleared"
		n.Description = fmt.Sprintf("%s was cleared by %s", msg.DocumentID, msg.Actor)
	case provenance.ActionVerified:
		n.Title = "Document verified"
		n.Description = fmt.Sprintf("%s was verified by %s", msg.DocumentID, msg.Actor)
	default:
		n.Severity = SeverityInfo
		n.Title = "Document updated"
		n.Description = fmt.Sprintf("%s: %s by %s", msg.DocumentID, msg.Action, msg.Actor)
	}
	return n
}
