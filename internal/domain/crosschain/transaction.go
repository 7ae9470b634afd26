package crosschain

import (
	"strings"
	"time"

	"github.com/guudz-audit-ledger/internal/domain/shared"
)

// Status is the settlement state of a cross-chain transaction
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Terminal reports whether no further transition is allowed.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusPending || s.Terminal()
}

// Transaction is a ledger record of an asset moving between two networks
type Transaction struct {
	ID            string    `json:"id"`
	SourceChain   string    `json:"sourceChain"`
	TargetChain   string    `json:"targetChain"`
	AssetType     string    `json:"assetType"`
	AssetID       string    `json:"assetId,omitempty"`
	Amount        float64   `json:"amount"`
	Status        Status    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	Hash          string    `json:"hash"`
	FailureReason string    `json:"failureReason,omitempty"`
}

// Transition moves a pending transaction to a terminal status.
func (t *Transaction) Transition(to Status, reason string) error {
	if t.Status != StatusPending || !to.Terminal() {
		return ErrInvalidTransition{ID: t.ID, From: t.Status, To: to}
	}
	t.Status = to
	if to == StatusFailed {
		t.FailureReason = reason
	}
	return nil
}

// TransferRequest asks for an asset to be moved between two catalog networks
type TransferRequest struct {
	SourceNetworkID string  `json:"sourceNetworkId"`
	TargetNetworkID string  `json:"targetNetworkId"`
	AssetType       string  `json:"assetType"`
	AssetID         string  `json:"assetId"`
	Amount          float64 `json:"amount,omitempty"`
}

// Validate checks the request shape. Endpoint existence is checked against the catalog.
func (r TransferRequest) Validate() error {
	if strings.TrimSpace(r.SourceNetworkID) == "" {
		return shared.Required("sourceNetworkId")
	}
	if strings.TrimSpace(r.TargetNetworkID) == "" {
		return shared.Required("targetNetworkId")
	}
	if r.SourceNetworkID == r.TargetNetworkID {
		return ErrInvalidTransfer{Reason: "source and target network must differ"}
	}
	if strings.TrimSpace(r.AssetType) == "" {
		return shared.Required("assetType")
	}
	if strings.TrimSpace(r.AssetID) == "" {
		return shared.Required("assetId")
	}
	if r.Amount < 0 {
		return shared.ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	return nil
}
