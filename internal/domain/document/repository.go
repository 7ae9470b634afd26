package document

import (
	"context"

	"github.com/guudz-audit-ledger/internal/domain/provenance"
)

// Repository defines the durable record of registered documents.
type Repository interface {
	// Register stores doc together with its creation event, atomically.
	// Returns ErrAlreadyRegistered if doc.ID is already stored.
	Register(ctx context.Context, doc *Document, created provenance.Event) error

	// ByID returns the document registered under docID
	// Returns ErrDocumentNotFound if no document carries the id
	ByID(ctx context.Context, docID string) (*Document, error)

	// ByHash returns the document the hash was assigned to
	// Returns ErrDocumentNotFound if the hash was never issued
	ByHash(ctx context.Context, hash string) (*Document, error)
}
