package notification

import (
	"context"
	"log/slog"

	"github.com/guudz-audit-ledger/internal/domain/shared"
	"github.com/guudz-audit-ledger/internal/platform/messaging/producers"
)

// LocalPublisher raises notifications in-process for every provenance event and
// forwards the event to next when one is set. It lets a single process show
// notifications without a broker.
type LocalPublisher struct {
	notifier Notifier
	next     producers.EventPublisher
	logger   *slog.Logger
}

// NewLocalPublisher wraps next, which may be nil.
func NewLocalPublisher(logger *slog.Logger, notifier Notifier, next producers.EventPublisher) *LocalPublisher {
	return &LocalPublisher{
		notifier: notifier,
		next:     next,
		logger:   logger,
	}
}

// PublishEvent notifies locally, then forwards. Only forwarding errors are returned.
func (p *LocalPublisher) PublishEvent(ctx context.Context, msg shared.ProvenanceMessage) error {
	if err := p.notifier.Notify(ctx, FromEvent(msg)); err != nil {
		p.logger.Warn("Failed to deliver local notification", "event_id", msg.EventID, "error", err)
	}
	if p.next == nil {
		return nil
	}
	return p.next.PublishEvent(ctx, msg)
}

func (p *LocalPublisher) Close() error {
	if p.next == nil {
		return nil
	}
	return p.next.Close()
}
