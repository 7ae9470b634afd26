package memory

import (
	"context"
	"sync"
)

// LedgerStore is an in-memory ledger persistence adapter. Contents do not survive a restart.
type LedgerStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewLedgerStore creates an empty LedgerStore
func NewLedgerStore() *LedgerStore {
	return &LedgerStore{values: make(map[string]string)}
}

func (s *LedgerStore) Read(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *LedgerStore) Write(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}
