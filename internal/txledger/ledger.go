// Package txledger keeps the durable, newest-first list of cross-chain transactions.
package txledger

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/guudz-audit-ledger/internal/config"
	"github.com/guudz-audit-ledger/internal/domain/crosschain"
	"github.com/guudz-audit-ledger/internal/domain/ledger"
	"github.com/guudz-audit-ledger/internal/metrics"
	"github.com/guudz-audit-ledger/internal/platform/identifier"
	"github.com/guudz-audit-ledger/internal/platform/simulation"
)

// Ledger serializes every read-modify-write of the transaction list and writes the
// full list through the persistence adapter after each change. Persistence failures
// are logged and never surface to callers. Until the stored list has been read the
// ledger never writes; changes made meanwhile are kept in memory and merged once a
// read succeeds.
type Ledger struct {
	store    ledger.Store
	key      string
	seedSize int
	seeder   *seeder
	clock    simulation.Clock
	metrics  *metrics.Metrics
	logger   *slog.Logger

	mu     sync.Mutex
	loaded bool
	txs    []crosschain.Transaction
}

// New creates a Ledger over store. Nothing is read until the first call.
func New(logger *slog.Logger, store ledger.Store, ids identifier.Source, clock simulation.Clock, m *metrics.Metrics, cfg config.LedgerConfig) *Ledger {
	if clock == nil {
		clock = simulation.RealClock{}
	}
	return &Ledger{
		store:    store,
		key:      cfg.StorageKey,
		seedSize: cfg.SeedSize,
		seeder:   newSeeder(ids),
		clock:    clock,
		metrics:  m,
		logger:   logger,
	}
}

// GetStored returns the ledger newest first, seeding and persisting a sample
// list when nothing usable is stored.
func (l *Ledger) GetStored(ctx context.Context) []crosschain.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loadLocked(ctx)
	return l.snapshotLocked()
}

// Add prepends tx, persists the full list and returns the updated ledger.
func (l *Ledger) Add(ctx context.Context, tx crosschain.Transaction) []crosschain.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	backed := l.loadLocked(ctx)

	l.txs = append([]crosschain.Transaction{tx}, l.txs...)
	sortNewestFirst(l.txs)
	l.saveLocked(ctx, backed)

	l.logger.Info("Transaction added to ledger",
		"transaction_id", tx.ID,
		"source_chain", tx.SourceChain,
		"target_chain", tx.TargetChain,
		"status", string(tx.Status),
	)
	return l.snapshotLocked()
}

// UpdateStatus moves a pending transaction to a terminal status.
func (l *Ledger) UpdateStatus(ctx context.Context, id string, status crosschain.Status, reason string) (crosschain.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	backed := l.loadLocked(ctx)

	for i := range l.txs {
		if l.txs[i].ID != id {
			continue
		}
		if err := l.txs[i].Transition(status, reason); err != nil {
			return crosschain.Transaction{}, err
		}
		l.saveLocked(ctx, backed)
		return l.txs[i], nil
	}
	return crosschain.Transaction{}, crosschain.ErrTransactionNotFound{ID: id}
}

// Pending returns up to limit pending transactions, oldest first. limit <= 0 means all.
func (l *Ledger) Pending(ctx context.Context, limit int) []crosschain.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loadLocked(ctx)

	var pending []crosschain.Transaction
	for i := len(l.txs) - 1; i >= 0; i-- {
		if l.txs[i].Status != crosschain.StatusPending {
			continue
		}
		pending = append(pending, l.txs[i])
		if limit > 0 && len(pending) == limit {
			break
		}
	}
	return pending
}

// loadLocked reports whether the in-memory list reflects the stored one. A read
// error leaves the ledger unloaded so the next call retries.
func (l *Ledger) loadLocked(ctx context.Context) bool {
	if l.loaded {
		return true
	}

	value, found, err := l.store.Read(ctx, l.key)
	if err != nil {
		l.logger.Error("Failed to read ledger, serving in-memory view", "key", l.key, "unsaved", len(l.txs), "error", err)
		return false
	}
	l.loaded = true

	var stored []crosschain.Transaction
	if !found {
		l.logger.Info("No stored ledger found, seeding", "key", l.key, "size", l.seedSize)
	} else if txs, decodeErr := ledger.Decode(value); decodeErr == nil && len(txs) > 0 {
		stored = txs
	} else {
		l.logger.Warn("Stored ledger is empty or corrupt, reseeding", "key", l.key, "error", decodeErr)
	}

	unsaved := l.txs
	dirty := len(unsaved) > 0
	if stored == nil {
		stored = l.seeder.seed(l.seedSize, l.clock.Now())
		dirty = true
	}

	l.txs = append(unsaved, stored...)
	sortNewestFirst(l.txs)
	l.saveLocked(ctx, dirty)
	return true
}

// saveLocked persists the list when the ledger is backed by the store and
// otherwise only refreshes the metrics.
func (l *Ledger) saveLocked(ctx context.Context, persist bool) {
	if !persist {
		l.recordCountsLocked()
		return
	}
	l.persistLocked(ctx)
}

func (l *Ledger) persistLocked(ctx context.Context) {
	l.recordCountsLocked()

	value, err := ledger.Encode(l.txs)
	if err != nil {
		l.logger.Error("Failed to encode ledger", "error", err)
		return
	}
	if err := l.store.Write(ctx, l.key, value); err != nil {
		l.logger.Error("Failed to persist ledger", "key", l.key, "count", len(l.txs), "error", err)
	}
}

func (l *Ledger) recordCountsLocked() {
	counts := make(map[string]int, 3)
	for _, tx := range l.txs {
		counts[string(tx.Status)]++
	}
	l.metrics.SetLedgerCounts(counts)
}

func (l *Ledger) snapshotLocked() []crosschain.Transaction {
	out := make([]crosschain.Transaction, len(l.txs))
	copy(out, l.txs)
	return out
}

// sortNewestFirst orders by timestamp descending; the stable sort keeps earlier
// positions (later insertions) first on ties.
func sortNewestFirst(txs []crosschain.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Timestamp.After(txs[j].Timestamp)
	})
}
