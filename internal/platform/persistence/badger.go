package persistence

import (
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/guudz-audit-ledger/internal/config"
)

// Badger is the embedded key/value store keeping the ledger on local disk
type Badger struct {
	db     *badger.DB
	logger *slog.Logger
}

// NewBadger opens (or creates) the database directory at cfg.Path.
func NewBadger(logger *slog.Logger, cfg *config.BadgerConfig) (*Badger, error) {
	opts := badger.DefaultOptions(cfg.Path).WithLogger(nil)
	return openBadger(logger, opts, cfg.Path)
}

// NewInMemoryBadger opens a non-persistent instance, used by tests and tooling.
func NewInMemoryBadger(logger *slog.Logger) (*Badger, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	return openBadger(logger, opts, ":memory:")
}

func openBadger(logger *slog.Logger, opts badger.Options, path string) (*Badger, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}
	logger.Info("Opened badger database", "path", path)
	return &Badger{db: db, logger: logger}, nil
}

func (b *Badger) DB() *badger.DB {
	return b.db
}

func (b *Badger) Close() error {
	if err := b.db.Close(); err != nil {
		return fmt.Errorf("failed to close badger database: %w", err)
	}
	b.logger.Info("Closed badger database")
	return nil
}
