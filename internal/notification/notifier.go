// Package notification turns provenance events into user-facing notifications.
package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Severity of a notification
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is a fire-and-forget message for the user
type Notification struct {
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Severity      Severity  `json:"severity"`
	DocumentID    string    `json:"documentId,omitempty"`
	CorrelationID string    `json:"correlationId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Notifier delivers notifications
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier writes notifications to the structured log.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Notify(_ context.Context, n Notification) error {
	level := slog.LevelInfo
	switch n.Severity {
	case SeverityWarning:
		level = slog.LevelWarn
	case SeverityError:
		level = slog.LevelError
	}
	l.logger.Log(context.Background(), level, n.Title,
		"description", n.Description,
		"severity", n.Severity,
		"document_id", n.DocumentID,
		"correlation_id", n.CorrelationID,
	)
	return nil
}

// RecentNotifier keeps the last notifications in memory, newest first.
type RecentNotifier struct {
	mu    sync.Mutex
	limit int
	items []Notification
}

func NewRecentNotifier(limit int) *RecentNotifier {
	if limit <= 0 {
		limit = 100
	}
	return &RecentNotifier{limit: limit}
}

func (r *RecentNotifier) Notify(_ context.Context, n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append([]Notification{n}, r.items...)
	if len(r.items) > r.limit {
		r.items = r.items[:r.limit]
	}
	return nil
}

// Recent returns a copy of the retained notifications.
func (r *RecentNotifier) Recent() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

// Fanout delivers to every notifier and returns the first error.
type Fanout []Notifier

func (f Fanout) Notify(ctx context.Context, n Notification) error {
	var first error
	for _, notifier := range f {
		if err := notifier.Notify(ctx, n); err != nil && first == nil {
			first = err
		}
	}
	return first
}
