package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/guudz-audit-ledger/internal/domain/document"
	"github.com/guudz-audit-ledger/internal/domain/provenance"
	"github.com/guudz-audit-ledger/internal/platform/persistence"
	"github.com/jackc/pgx/v5"
)

// EventLogRepository implements provenance.Store and document.Repository on PostgreSQL.
// Append order is the BIGSERIAL seq column.
type EventLogRepository struct {
	querier persistence.Querier
	txs     persistence.TxBeginner
	logger  *slog.Logger
}

var (
	_ provenance.Store    = (*EventLogRepository)(nil)
	_ document.Repository = (*EventLogRepository)(nil)
)

// NewEventLogRepository creates a new PostgreSQL provenance event log
func NewEventLogRepository(logger *slog.Logger, db *persistence.PostgresDB) *EventLogRepository {
	return &EventLogRepository{
		querier: db.Pool(),
		txs:     db.Pool(),
		logger:  logger,
	}
}

// WithTx binds the repository to a transaction so events can be appended atomically with other writes.
func (r *EventLogRepository) WithTx(tx pgx.Tx) *EventLogRepository {
	return &EventLogRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Append stores an event at the end of the entity's history.
func (r *EventLogRepository) Append(ctx context.Context, entityID string, event provenance.Event) error {
	query := `
		INSERT INTO provenance_events (id, entity_id, action, actor, reference, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.querier.Exec(ctx, query,
		event.ID,
		entityID,
		string(event.Action),
		event.Actor,
		event.Reference,
		event.Timestamp,
	)
	if err != nil {
		r.logger.Error("Failed to append provenance event",
			"entity_id", entityID,
			"action", string(event.Action),
			"error", err,
		)
		return fmt.Errorf("failed to append provenance event: %w", err)
	}

	return nil
}

// History returns the entity's events in append order; unknown entities yield an empty slice.
func (r *EventLogRepository) History(ctx context.Context, entityID string) ([]provenance.Event, error) {
	query := `
		SELECT id, entity_id, action, actor, reference, occurred_at
		FROM provenance_events
		WHERE entity_id = $1
		ORDER BY seq ASC
	`

	rows, err := r.querier.Query(ctx, query, entityID)
	if err != nil {
		r.logger.Error("Failed to query provenance events", "entity_id", entityID, "error", err)
		return nil, fmt.Errorf("failed to query provenance events: %w", err)
	}
	defer rows.Close()

	events := []provenance.Event{}
	for rows.Next() {
		var (
			event  provenance.Event
			action string
		)
		if err := rows.Scan(&event.ID, &event.EntityID, &action, &event.Actor, &event.Reference, &event.Timestamp); err != nil {
			r.logger.Error("Failed to scan provenance event", "entity_id", entityID, "error", err)
			return nil, fmt.Errorf("failed to scan provenance event: %w", err)
		}
		event.Action = provenance.Action(action)
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over provenance events", "entity_id", entityID, "error", err)
		return nil, fmt.Errorf("error iterating over provenance events: %w", err)
	}

	return events, nil
}

// Register inserts the document row and its creation event in one transaction.
func (r *EventLogRepository) Register(ctx context.Context, doc *document.Document, created provenance.Event) error {
	signers, err := json.Marshal(doc.Signers)
	if err != nil {
		return fmt.Errorf("failed to encode signers: %w", err)
	}
	var metadata []byte
	if len(doc.Metadata) > 0 {
		if metadata, err = json.Marshal(doc.Metadata); err != nil {
			return fmt.Errorf("failed to encode metadata: %w", err)
		}
	}

	query := `
		INSERT INTO documents (doc_id, hash, doc_type, issuer, issued_at, signers, content, metadata, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (doc_id) DO NOTHING
	`

	return persistence.ExecuteTx(ctx, r.txs, func(tx pgx.Tx) error {
		txRepo := r.WithTx(tx)

		tag, err := txRepo.querier.Exec(ctx, query,
			doc.ID,
			doc.Hash,
			string(doc.Type),
			doc.Issuer,
			doc.IssuedAt,
			signers,
			doc.Content,
			metadata,
			doc.RegisteredAt,
		)
		if err != nil {
			r.logger.Error("Failed to insert document", "doc_id", doc.ID, "error", err)
			return fmt.Errorf("failed to insert document: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return document.ErrAlreadyRegistered{DocID: doc.ID}
		}

		return txRepo.Append(ctx, doc.ID, created)
	})
}

const selectDocument = `
		SELECT doc_id, hash, doc_type, issuer, issued_at, signers, content, metadata, registered_at
		FROM documents
	`

// ByID returns the document registered under docID.
func (r *EventLogRepository) ByID(ctx context.Context, docID string) (*document.Document, error) {
	return r.findDocument(ctx, selectDocument+"WHERE doc_id = $1", docID)
}

// ByHash returns the document the hash was assigned to.
func (r *EventLogRepository) ByHash(ctx context.Context, hash string) (*document.Document, error) {
	return r.findDocument(ctx, selectDocument+"WHERE hash = $1", hash)
}

func (r *EventLogRepository) findDocument(ctx context.Context, query, key string) (*document.Document, error) {
	var (
		doc      document.Document
		docType  string
		signers  []byte
		metadata []byte
	)
	err := r.querier.QueryRow(ctx, query, key).Scan(
		&doc.ID,
		&doc.Hash,
		&docType,
		&doc.Issuer,
		&doc.IssuedAt,
		&signers,
		&doc.Content,
		&metadata,
		&doc.RegisteredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, document.ErrDocumentNotFound{Key: key}
		}
		r.logger.Error("Failed to query document", "key", key, "error", err)
		return nil, fmt.Errorf("failed to query document: %w", err)
	}

	doc.Type = document.Type(docType)
	doc.Signers = []document.Signer{}
	if err := json.Unmarshal(signers, &doc.Signers); err != nil {
		return nil, fmt.Errorf("failed to decode signers of %s: %w", doc.ID, err)
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &doc.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode metadata of %s: %w", doc.ID, err)
		}
	}
	return &doc, nil
}
