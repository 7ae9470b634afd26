// Package badger persists the transaction ledger in an embedded badger database.
package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/guudz-audit-ledger/internal/domain/ledger"
)

// LedgerStore implements ledger.Store on badger
type LedgerStore struct {
	db     *badger.DB
	logger *slog.Logger
}

// NewLedgerStore creates a badger-backed ledger persistence adapter
func NewLedgerStore(logger *slog.Logger, db *badger.DB) ledger.Store {
	return &LedgerStore{db: db, logger: logger}
}

func (s *LedgerStore) Read(_ context.Context, key string) (string, bool, error) {
	var (
		value []byte
		found bool
	)
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		found = true
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		s.logger.Error("Failed to read ledger snapshot", "key", key, "error", err)
		return "", false, fmt.Errorf("failed to read ledger snapshot: %w", err)
	}
	return string(value), found, nil
}

func (s *LedgerStore) Write(_ context.Context, key, value string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
	if err != nil {
		s.logger.Error("Failed to write ledger snapshot", "key", key, "error", err)
		return fmt.Errorf("failed to write ledger snapshot: %w", err)
	}
	return nil
}
