// Package ledger defines how the cross-chain transaction ledger is persisted.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/guudz-audit-ledger/internal/domain/crosschain"
)

// ErrCorruptSnapshot indicates stored ledger text that cannot be decoded
var ErrCorruptSnapshot = errors.New("corrupt ledger snapshot")

// Store is the persistence adapter behind the transaction ledger.
// Read reports found=false when nothing is stored under key.
type Store interface {
	Read(ctx context.Context, key string) (value string, found bool, err error)
	Write(ctx context.Context, key, value string) error
}

// Encode serializes the full ledger.
func Encode(txs []crosschain.Transaction) (string, error) {
	if txs == nil {
		txs = []crosschain.Transaction{}
	}
	b, err := json.Marshal(txs)
	if err != nil {
		return "", fmt.Errorf("failed to encode ledger: %w", err)
	}
	return string(b), nil
}

// Decode parses a stored ledger, rejecting records that violate the transaction shape.
func Decode(value string) ([]crosschain.Transaction, error) {
	var txs []crosschain.Transaction
	if err := json.Unmarshal([]byte(value), &txs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	for i, tx := range txs {
		if tx.ID == "" || !tx.Status.Valid() || tx.Timestamp.IsZero() {
			return nil, fmt.Errorf("%w: record %d is malformed", ErrCorruptSnapshot, i)
		}
	}
	return txs, nil
}
