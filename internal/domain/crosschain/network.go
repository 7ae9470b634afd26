// Package crosschain models blockchain networks and the asset transfers between them.
package crosschain

// NetworkType classifies a network's access model
type NetworkType string

const (
	NetworkPublic  NetworkType = "public"
	NetworkPrivate NetworkType = "private"
	NetworkHybrid  NetworkType = "hybrid"
)

// Network is a catalog entry for a reachable blockchain network
type Network struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Type        NetworkType `json:"type"`
	Endpoint    string      `json:"endpoint"`
	Currency    string      `json:"currency"`
	IsConnected bool        `json:"isConnected"`
}

// FeeEstimate is the quoted cost of a cross-chain transfer
type FeeEstimate struct {
	Fee           float64 `json:"fee"`
	Currency      string  `json:"currency"`
	EstimatedTime string  `json:"estimatedTime"`
}

// InvokeResult is the outcome of a contract invocation on a connected network.
// Failures such as a missing connection are reported in Error rather than as a Go error.
type InvokeResult struct {
	Success bool   `json:"success"`
	TxID    string `json:"txId,omitempty"`
	Payload string `json:"payload,omitempty"`
	Error   string `json:"error,omitempty"`
}
