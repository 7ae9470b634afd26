// Package redis persists the transaction ledger as a single Redis string.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/guudz-audit-ledger/internal/domain/ledger"
	goredis "github.com/redis/go-redis/v9"
)

// Commander is the subset of the go-redis client the store needs
type Commander interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd
}

// LedgerStore implements ledger.Store on Redis
type LedgerStore struct {
	client Commander
	logger *slog.Logger
}

// NewLedgerStore creates a Redis-backed ledger persistence adapter
func NewLedgerStore(logger *slog.Logger, client Commander) ledger.Store {
	return &LedgerStore{client: client, logger: logger}
}

func (s *LedgerStore) Read(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", false, nil
		}
		s.logger.Error("Failed to read ledger snapshot", "key", key, "error", err)
		return "", false, fmt.Errorf("failed to read ledger snapshot: %w", err)
	}
	return value, true, nil
}

func (s *LedgerStore) Write(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		s.logger.Error("Failed to write ledger snapshot", "key", key, "error", err)
		return fmt.Errorf("failed to write ledger snapshot: %w", err)
	}
	return nil
}
