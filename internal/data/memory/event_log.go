// Package memory holds process-local implementations of the event log and the
// ledger persistence adapter.
package memory

import (
	"context"
	"sync"

	"github.com/guudz-audit-ledger/internal/domain/document"
	"github.com/guudz-audit-ledger/internal/domain/provenance"
)

// EventLog is an in-memory provenance.Store that also keeps the registered
// documents the events belong to. It is safe for concurrent use.
type EventLog struct {
	mu      sync.RWMutex
	events  map[string][]provenance.Event
	byDocID map[string]*document.Document
	byHash  map[string]*document.Document
}

// NewEventLog creates an empty EventLog
func NewEventLog() *EventLog {
	return &EventLog{
		events:  make(map[string][]provenance.Event),
		byDocID: make(map[string]*document.Document),
		byHash:  make(map[string]*document.Document),
	}
}

// Append adds event to the end of the entity's history.
func (l *EventLog) Append(_ context.Context, entityID string, event provenance.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.appendLocked(entityID, event)
	return nil
}

func (l *EventLog) appendLocked(entityID string, event provenance.Event) {
	event.EntityID = entityID
	l.events[entityID] = append(l.events[entityID], event)
}

// History returns a copy of the entity's events in append order.
func (l *EventLog) History(_ context.Context, entityID string) ([]provenance.Event, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]provenance.Event, len(l.events[entityID]))
	copy(out, l.events[entityID])
	return out, nil
}

// Register stores doc and appends its creation event under one lock.
func (l *EventLog) Register(_ context.Context, doc *document.Document, created provenance.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.byDocID[doc.ID]; exists {
		return document.ErrAlreadyRegistered{DocID: doc.ID}
	}
	stored := doc.Clone()
	l.byDocID[doc.ID] = stored
	l.byHash[doc.Hash] = stored
	l.appendLocked(doc.ID, created)
	return nil
}

// ByID returns a copy of the document registered under docID.
func (l *EventLog) ByID(_ context.Context, docID string) (*document.Document, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	doc, ok := l.byDocID[docID]
	if !ok {
		return nil, document.ErrDocumentNotFound{Key: docID}
	}
	return doc.Clone(), nil
}

// ByHash returns a copy of the document the hash was assigned to.
func (l *EventLog) ByHash(_ context.Context, hash string) (*document.Document, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	doc, ok := l.byHash[hash]
	if !ok {
		return nil, document.ErrDocumentNotFound{Key: hash}
	}
	return doc.Clone(), nil
}
