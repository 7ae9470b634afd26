// Package provenance models the append-only audit trail kept for every document.
package provenance

import (
	"context"
	"time"
)

// Action is the kind of lifecycle step recorded for a document
type Action string

const (
	ActionCreated        Action = "created"
	ActionSigned         Action = "signed"
	ActionCustomsCleared Action = "customs_cleared"
	ActionVerified       Action = "verified"
)

// Valid reports whether a is a known provenance action.
func (a Action) Valid() bool {
	switch a {
	case ActionCreated, ActionSigned, ActionCustomsCleared, ActionVerified:
		return true
	}
	return false
}

// Event is one immutable entry of a document's audit trail
type Event struct {
	ID        string    `json:"id"`
	EntityID  string    `json:"entityId"`
	Action    Action    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
	Reference string    `json:"reference,omitempty"` // identifier of the document the event belongs to
}

// Store is the append-only event log keyed by entity.
// History returns events in append order; an unknown entity yields an empty slice.
type Store interface {
	Append(ctx context.Context, entityID string, event Event) error
	History(ctx context.Context, entityID string) ([]Event, error)
}
