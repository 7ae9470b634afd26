package txledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/guudz-audit-ledger/internal/config"
	"github.com/guudz-audit-ledger/internal/data/memory"
	"github.com/guudz-audit-ledger/internal/domain/crosschain"
	"github.com/guudz-audit-ledger/internal/domain/ledger"
	"github.com/guudz-audit-ledger/internal/metrics"
	"github.com/guudz-audit-ledger/internal/platform/identifier"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testKey = "guudz_transactions"

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Read(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockStore) Write(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func (c fixedClock) After(d time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- c.now.Add(d)
	return ch
}

var testNow = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func newTestLedger(store ledger.Store, seedSize int) *Ledger {
	return New(newTestLogger(), store, identifier.NewGenerator(), fixedClock{now: testNow},
		metrics.New(prometheus.NewRegistry()),
		config.LedgerConfig{StorageKey: testKey, SeedSize: seedSize})
}

func tx(id string, at time.Time, status crosschain.Status) crosschain.Transaction {
	return crosschain.Transaction{
		ID:          id,
		SourceChain: "Guudz Chain",
		TargetChain: "Ethereum",
		AssetType:   "Document",
		Status:      status,
		Timestamp:   at,
		Hash:        "0x" + id,
	}
}

func assertNewestFirst(t *testing.T, txs []crosschain.Transaction) {
	t.Helper()
	for i := 1; i < len(txs); i++ {
		assert.False(t, txs[i].Timestamp.After(txs[i-1].Timestamp), "index %d is newer than index %d", i, i-1)
	}
}

func TestLedger_GetStored_SeedsWhenEmpty(t *testing.T) {
	ctx := context.Background()
	store := memory.NewLedgerStore()
	l := newTestLedger(store, 10)

	txs := l.GetStored(ctx)

	require.Len(t, txs, 10)
	assertNewestFirst(t, txs)
	ids := make(map[string]struct{})
	for _, tx := range txs {
		ids[tx.ID] = struct{}{}
		assert.NotEqual(t, tx.SourceChain, tx.TargetChain)
		assert.True(t, tx.Status.Valid())
		assert.True(t, identifier.Valid(identifier.KindTransaction, tx.Hash))
		assert.False(t, tx.Timestamp.After(testNow))
		assert.False(t, tx.Timestamp.Before(testNow.Add(-seedWindow)))
		assert.Contains(t, seedNetworks, tx.SourceChain)
		assert.Contains(t, seedAssetTypes, tx.AssetType)
	}
	assert.Len(t, ids, 10)

	stored, found, err := store.Read(ctx, testKey)
	require.NoError(t, err)
	require.True(t, found)
	decoded, err := ledger.Decode(stored)
	require.NoError(t, err)
	assert.Equal(t, txs, decoded)

	// Seeding happens once
	assert.Equal(t, txs, l.GetStored(ctx))
}

func TestLedger_GetStored_ReseedsCorruptOrEmpty(t *testing.T) {
	for _, stored := range []string{"{not json", "[]", `[{"id":""}]`} {
		t.Run(stored, func(t *testing.T) {
			ctx := context.Background()
			store := memory.NewLedgerStore()
			require.NoError(t, store.Write(ctx, testKey, stored))

			txs := newTestLedger(store, 4).GetStored(ctx)
			assert.Len(t, txs, 4)

			persisted, _, _ := store.Read(ctx, testKey)
			assert.NotEqual(t, stored, persisted)
		})
	}
}

func TestLedger_GetStored_LoadsPersisted(t *testing.T) {
	ctx := context.Background()
	store := memory.NewLedgerStore()
	existing := []crosschain.Transaction{
		tx("old", testNow.Add(-2*time.Hour), crosschain.StatusCompleted),
		tx("new", testNow.Add(-time.Hour), crosschain.StatusPending),
	}
	encoded, err := ledger.Encode(existing)
	require.NoError(t, err)
	require.NoError(t, store.Write(ctx, testKey, encoded))

	txs := newTestLedger(store, 10).GetStored(ctx)

	require.Len(t, txs, 2)
	assert.Equal(t, "new", txs[0].ID)
	assert.Equal(t, "old", txs[1].ID)
}

func TestLedger_Add(t *testing.T) {
	ctx := context.Background()
	store := memory.NewLedgerStore()
	l := newTestLedger(store, 3)
	seeded := l.GetStored(ctx)

	added := tx("fresh", testNow, crosschain.StatusCompleted)
	txs := l.Add(ctx, added)

	require.Len(t, txs, len(seeded)+1)
	assert.Equal(t, added, txs[0])
	assertNewestFirst(t, txs)

	// A fresh ledger over the same store sees the identical list
	reloaded := newTestLedger(store, 3).GetStored(ctx)
	assert.Equal(t, txs, reloaded)
}

func TestLedger_Add_TiesPreferLaterInsertion(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(memory.NewLedgerStore(), 1)
	l.GetStored(ctx)

	same := testNow.Add(time.Minute)
	l.Add(ctx, tx("first", same, crosschain.StatusPending))
	txs := l.Add(ctx, tx("second", same, crosschain.StatusPending))

	assert.Equal(t, "second", txs[0].ID)
	assert.Equal(t, "first", txs[1].ID)
}

func TestLedger_WriteFailuresAreSwallowed(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	store.On("Read", mock.Anything, testKey).Return("", false, nil)
	store.On("Write", mock.Anything, testKey, mock.AnythingOfType("string")).Return(errors.New("disk full"))

	l := newTestLedger(store, 5)

	assert.Len(t, l.GetStored(ctx), 5)
	txs := l.Add(ctx, tx("fresh", testNow, crosschain.StatusPending))
	assert.Len(t, txs, 6)
	assert.Equal(t, "fresh", txs[0].ID)

	store.AssertNumberOfCalls(t, "Read", 1)
	store.AssertNumberOfCalls(t, "Write", 2)
}

func TestLedger_ReadFailureNeverOverwritesStoredLedger(t *testing.T) {
	ctx := context.Background()
	durable := memory.NewLedgerStore()
	kept := tx("keep-me", testNow.Add(-time.Hour), crosschain.StatusCompleted)
	encoded, err := ledger.Encode([]crosschain.Transaction{kept})
	require.NoError(t, err)
	require.NoError(t, durable.Write(ctx, testKey, encoded))

	store := new(MockStore)
	store.On("Read", mock.Anything, testKey).Return("", false, errors.New("connection refused")).Twice()
	l := newTestLedger(store, 10)

	t.Run("NothingWrittenWhileUnreadable", func(t *testing.T) {
		assert.Empty(t, l.GetStored(ctx))

		txs := l.Add(ctx, tx("during-outage", testNow, crosschain.StatusPending))
		require.Len(t, txs, 1)
		assert.Equal(t, "during-outage", txs[0].ID)

		store.AssertNumberOfCalls(t, "Read", 2)
		store.AssertNotCalled(t, "Write", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MergesOnceReadable", func(t *testing.T) {
		store.On("Read", mock.Anything, testKey).Return(encoded, true, nil).Once()
		store.On("Write", mock.Anything, testKey, mock.AnythingOfType("string")).Return(nil).Once()

		txs := l.GetStored(ctx)

		require.Len(t, txs, 2)
		assert.Equal(t, "during-outage", txs[0].ID)
		assert.Equal(t, "keep-me", txs[1].ID)
		store.AssertNumberOfCalls(t, "Write", 1)

		written := store.Calls[len(store.Calls)-1].Arguments.String(2)
		decoded, err := ledger.Decode(written)
		require.NoError(t, err)
		assert.Equal(t, txs, decoded)

		// Loaded once; later calls do not read again
		l.GetStored(ctx)
		store.AssertNumberOfCalls(t, "Read", 3)
	})
}

func TestLedger_ConcurrentAddsAreNotLost(t *testing.T) {
	ctx := context.Background()
	store := memory.NewLedgerStore()
	l := newTestLedger(store, 2)
	const adders = 50

	var wg sync.WaitGroup
	for i := 0; i < adders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l.Add(ctx, tx(fmt.Sprintf("tx-%d", i), testNow.Add(time.Duration(i)*time.Second), crosschain.StatusPending))
		}(i)
	}
	wg.Wait()

	txs := l.GetStored(ctx)
	assert.Len(t, txs, adders+2)
	assertNewestFirst(t, txs)

	persisted, _, _ := store.Read(ctx, testKey)
	decoded, err := ledger.Decode(persisted)
	require.NoError(t, err)
	assert.Len(t, decoded, adders+2)
}

func TestLedger_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	store := memory.NewLedgerStore()
	l := newTestLedger(store, 1)
	l.GetStored(ctx)
	l.Add(ctx, tx("p1", testNow, crosschain.StatusPending))
	l.Add(ctx, tx("c1", testNow, crosschain.StatusCompleted))

	t.Run("PendingToFailed", func(t *testing.T) {
		updated, err := l.UpdateStatus(ctx, "p1", crosschain.StatusFailed, "bridge timeout")
		require.NoError(t, err)
		assert.Equal(t, crosschain.StatusFailed, updated.Status)
		assert.Equal(t, "bridge timeout", updated.FailureReason)

		persisted, _, _ := store.Read(ctx, testKey)
		assert.Contains(t, persisted, "bridge timeout")
	})

	t.Run("TerminalIsFinal", func(t *testing.T) {
		_, err := l.UpdateStatus(ctx, "c1", crosschain.StatusFailed, "")
		assert.True(t, errors.Is(err, crosschain.ErrInvalidTransition{}))
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := l.UpdateStatus(ctx, "missing", crosschain.StatusCompleted, "")
		assert.True(t, errors.Is(err, crosschain.ErrTransactionNotFound{ID: "missing"}))
	})
}

func TestLedger_Pending(t *testing.T) {
	ctx := context.Background()
	store := memory.NewLedgerStore()
	existing := []crosschain.Transaction{
		tx("p3", testNow.Add(-1*time.Hour), crosschain.StatusPending),
		tx("c1", testNow.Add(-2*time.Hour), crosschain.StatusCompleted),
		tx("p2", testNow.Add(-3*time.Hour), crosschain.StatusPending),
		tx("p1", testNow.Add(-4*time.Hour), crosschain.StatusPending),
	}
	encoded, _ := ledger.Encode(existing)
	require.NoError(t, store.Write(ctx, testKey, encoded))
	l := newTestLedger(store, 10)

	pending := l.Pending(ctx, 2)
	require.Len(t, pending, 2)
	assert.Equal(t, "p1", pending[0].ID)
	assert.Equal(t, "p2", pending[1].ID)

	assert.Len(t, l.Pending(ctx, 0), 3)
}
