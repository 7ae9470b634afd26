// Package registry registers trade documents on the simulated chain and keeps
// their provenance trail.
package registry

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/guudz-audit-ledger/internal/domain/document"
	"github.com/guudz-audit-ledger/internal/domain/provenance"
	"github.com/guudz-audit-ledger/internal/domain/shared"
	"github.com/guudz-audit-ledger/internal/platform/identifier"
	"github.com/guudz-audit-ledger/internal/platform/messaging/producers"
	"github.com/guudz-audit-ledger/internal/platform/simulation"
)

// Log is the durable record behind the registry: registered documents and
// their provenance trail.
type Log interface {
	provenance.Store
	document.Repository
}

// Service is the only writer to the provenance event log. Documents are cached
// in memory and reloaded from the log on a miss.
type Service struct {
	events      Log
	ids         identifier.Source
	engine      *simulation.Engine
	publisher   producers.EventPublisher
	demoHistory bool
	logger      *slog.Logger

	mu      sync.RWMutex
	byDocID map[string]*entry
	hashes  map[string]*entry
}

// entry serializes appends for one document so stored timestamps never go backwards.
type entry struct {
	mu       sync.Mutex
	doc      *document.Document
	lastAt   time.Time
	released bool
}

// Option configures a Service
type Option func(*Service)

// WithPublisher publishes every appended event. Publish failures are logged only.
func WithPublisher(p producers.EventPublisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

// WithDemoHistory serves a fixed created, signed, customs_cleared trail for documents with no events.
func WithDemoHistory(enabled bool) Option {
	return func(s *Service) {
		s.demoHistory = enabled
	}
}

// NewService creates a registry over the given event log.
func NewService(logger *slog.Logger, events Log, ids identifier.Source, engine *simulation.Engine, opts ...Option) *Service {
	if engine == nil {
		engine = simulation.Immediate()
	}
	s := &Service{
		events:  events,
		ids:     ids,
		engine:  engine,
		logger:  logger,
		byDocID: make(map[string]*entry),
		hashes:  make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterDocument assigns a hash to the document, appends its "created" event and
// returns the hash once the simulated ledger finality has elapsed.
func (s *Service) RegisterDocument(ctx context.Context, req document.RegistrationRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	var hash string
	err := s.engine.Do(ctx, simulation.OpRegisterDocument, func() error {
		e, err := s.reserve(req)
		if err != nil {
			return err
		}
		defer e.mu.Unlock()

		event := provenance.Event{
			ID:        s.ids.Next(identifier.KindEvent),
			EntityID:  req.DocID,
			Action:    provenance.ActionCreated,
			Timestamp: e.doc.RegisteredAt,
			Actor:     req.Actor(),
			Reference: e.doc.Hash,
		}
		if err := s.events.Register(ctx, e.doc, event); err != nil {
			s.release(e)
			if !errors.Is(err, document.ErrAlreadyRegistered{}) {
				s.logger.Error("Failed to store registered document", "doc_id", req.DocID, "error", err)
			}
			return err
		}
		e.lastAt = event.Timestamp
		hash = e.doc.Hash
		s.publish(ctx, event)
		return nil
	})
	if err != nil {
		return "", err
	}

	s.logger.Info("Document registered", "doc_id", req.DocID, "doc_type", req.DocType, "hash", hash)
	return hash, nil
}

// reserve indexes a new document under its docId and hash, rejecting duplicates.
// The entry is returned locked so no event can precede its creation event.
func (s *Service) reserve(req document.RegistrationRequest) (*entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byDocID[req.DocID]; exists {
		return nil, document.ErrAlreadyRegistered{DocID: req.DocID}
	}

	hash := s.ids.Next(identifier.KindDocument)
	e := &entry{doc: document.New(req, hash, s.engine.Now())}
	e.mu.Lock()
	s.byDocID[req.DocID] = e
	s.hashes[hash] = e
	return e, nil
}

// release drops a reservation whose document never reached the log. Callers hold e.mu.
func (s *Service) release(e *entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.released = true
	delete(s.byDocID, e.doc.ID)
	delete(s.hashes, e.doc.Hash)
}

// byID returns the cached entry for docID, loading it from the log on a miss.
func (s *Service) byID(ctx context.Context, docID string) (*entry, error) {
	s.mu.RLock()
	e, ok := s.byDocID[docID]
	s.mu.RUnlock()
	if ok {
		return e, nil
	}
	return s.load(ctx, func() (*document.Document, error) { return s.events.ByID(ctx, docID) })
}

// byHash returns the cached entry for hash, loading it from the log on a miss.
func (s *Service) byHash(ctx context.Context, hash string) (*entry, error) {
	s.mu.RLock()
	e, ok := s.hashes[hash]
	s.mu.RUnlock()
	if ok {
		return e, nil
	}
	return s.load(ctx, func() (*document.Document, error) { return s.events.ByHash(ctx, hash) })
}

func (s *Service) load(ctx context.Context, find func() (*document.Document, error)) (*entry, error) {
	doc, err := find()
	if err != nil {
		return nil, err
	}
	history, err := s.events.History(ctx, doc.ID)
	if err != nil {
		return nil, err
	}

	e := &entry{doc: doc}
	if n := len(history); n > 0 {
		e.lastAt = history[n-1].Timestamp
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cached, ok := s.byDocID[doc.ID]; ok {
		return cached, nil
	}
	s.byDocID[doc.ID] = e
	s.hashes[doc.Hash] = e
	return e, nil
}

// VerifyDocument reports whether hash was issued by RegisterDocument.
func (s *Service) VerifyDocument(ctx context.Context, hash string) (bool, error) {
	var found bool
	err := s.engine.Do(ctx, simulation.OpVerifyDocument, func() error {
		if hash == "" {
			return nil
		}
		_, err := s.byHash(ctx, hash)
		switch {
		case err == nil:
			found = true
		case errors.Is(err, document.ErrDocumentNotFound{}):
		default:
			return err
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// GetHistory returns the document's provenance events oldest first. Unknown
// documents yield an empty trail.
func (s *Service) GetHistory(ctx context.Context, docID string) ([]provenance.Event, error) {
	if strings.TrimSpace(docID) == "" {
		return nil, shared.Required("docId")
	}

	var history []provenance.Event
	err := s.engine.Do(ctx, simulation.OpGetHistory, func() error {
		events, err := s.events.History(ctx, docID)
		if err != nil {
			return err
		}
		history = events
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(history) == 0 && s.demoHistory {
		return demoTrail(docID, s.engine.Now()), nil
	}
	if history == nil {
		history = []provenance.Event{}
	}
	return history, nil
}

// RecordEvent appends a lifecycle step to a registered document's trail.
func (s *Service) RecordEvent(ctx context.Context, docID string, action provenance.Action, actor string) (provenance.Event, error) {
	if strings.TrimSpace(docID) == "" {
		return provenance.Event{}, shared.Required("docId")
	}
	if !action.Valid() || action == provenance.ActionCreated {
		return provenance.Event{}, shared.ValidationError{Field: "action", Reason: "must be one of signed, customs_cleared, verified"}
	}
	if strings.TrimSpace(actor) == "" {
		return provenance.Event{}, shared.Required("actor")
	}

	e, err := s.byID(ctx, docID)
	if err != nil {
		return provenance.Event{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.released {
		return provenance.Event{}, document.ErrDocumentNotFound{Key: docID}
	}

	at := s.engine.Now()
	if at.Before(e.lastAt) {
		at = e.lastAt
	}
	event := provenance.Event{
		ID:        s.ids.Next(identifier.KindEvent),
		EntityID:  docID,
		Action:    action,
		Timestamp: at,
		Actor:     actor,
		Reference: e.doc.Hash,
	}
	if err := s.events.Append(ctx, docID, event); err != nil {
		s.logger.Error("Failed to append provenance event", "doc_id", docID, "action", action, "error", err)
		return provenance.Event{}, err
	}
	e.lastAt = at
	s.publish(ctx, event)
	return event, nil
}

// Lookup returns a copy of the document registered under hash.
func (s *Service) Lookup(ctx context.Context, hash string) (*document.Document, error) {
	e, err := s.byHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	return e.doc.Clone(), nil
}

func (s *Service) publish(ctx context.Context, event provenance.Event) {
	if s.publisher == nil {
		return
	}
	msg := shared.ProvenanceMessage{
		EventID:       event.ID,
		DocumentID:    event.EntityID,
		DocumentHash:  event.Reference,
		Action:        string(event.Action),
		Actor:         event.Actor,
		CorrelationID: shared.CorrelationID(ctx),
		Timestamp:     event.Timestamp,
	}
	if err := s.publisher.PublishEvent(ctx, msg); err != nil {
		s.logger.Warn("Provenance event not published", "doc_id", event.EntityID, "event_id", event.ID, "error", err)
	}
}

// demoTrail is the fixed sequence shown for documents without recorded events.
func demoTrail(docID string, now time.Time) []provenance.Event {
	steps := []struct {
		action provenance.Action
		actor  string
		ago    time.Duration
	}{
		{provenance.ActionCreated, "Shipper", 72 * time.Hour},
		{provenance.ActionSigned, "Carrier", 48 * time.Hour},
		{provenance.ActionCustomsCleared, "Customs Authority", 24 * time.Hour},
	}
	trail := make([]provenance.Event, 0, len(steps))
	for i, step := range steps {
		trail = append(trail, provenance.Event{
			ID:        "demo-" + strconv.Itoa(i+1),
			EntityID:  docID,
			Action:    step.action,
			Timestamp: now.Add(-step.ago),
			Actor:     step.actor,
		})
	}
	return trail
}
