package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guudz-audit-ledger/internal/domain/ledger"
)

// snapshot is one stored ledger document, keyed by the storage key
type snapshot struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// LedgerStore implements ledger.Store on a MongoDB collection
type LedgerStore struct {
	collection *mongo.Collection
	logger     *slog.Logger
	now        func() time.Time
}

// NewLedgerStore creates a MongoDB ledger persistence adapter
func NewLedgerStore(logger *slog.Logger, collection *mongo.Collection) ledger.Store {
	return &LedgerStore{
		collection: collection,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Read loads the snapshot stored under key.
func (s *LedgerStore) Read(ctx context.Context, key string) (string, bool, error) {
	var doc snapshot
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", false, nil
		}
		s.logger.Error("Failed to read ledger snapshot", "key", key, "error", err)
		return "", false, fmt.Errorf("failed to read ledger snapshot: %w", err)
	}
	return doc.Value, true, nil
}

// Write upserts the snapshot stored under key.
func (s *LedgerStore) Write(ctx context.Context, key, value string) error {
	update := bson.M{"$set": bson.M{"value": value, "updated_at": s.now()}}
	_, err := s.collection.UpdateOne(ctx, bson.M{"_id": key}, update, options.Update().SetUpsert(true))
	if err != nil {
		s.logger.Error("Failed to write ledger snapshot", "key", key, "error", err)
		return fmt.Errorf("failed to write ledger snapshot: %w", err)
	}
	return nil
}
