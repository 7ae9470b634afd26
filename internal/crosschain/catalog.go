package crosschain

import (
	"math"
	"strings"

	"github.com/guudz-audit-ledger/internal/domain/crosschain"
)

var catalog = []crosschain.Network{
	{ID: HomeNetwork, Name: "Guudz Chain", Type: crosschain.NetworkHybrid, Endpoint: "https://rpc.guudzchain.io", Currency: "GUUDZ"},
	{ID: "ethereum", Name: "Ethereum", Type: crosschain.NetworkPublic, Endpoint: "https://mainnet.infura.io/v3", Currency: "ETH"},
	{ID: "hyperledger-fabric", Name: "Hyperledger Fabric", Type: crosschain.NetworkPrivate, Endpoint: "grpcs://fabric.guudz.io:7051", Currency: "USD"},
	{ID: "polygon", Name: "Polygon", Type: crosschain.NetworkPublic, Endpoint: "https://polygon-rpc.com", Currency: "MATIC"},
}

// anchors is the per-network verification fixture.
var anchors = map[string]bool{
	HomeNetwork:          true,
	"ethereum":           true,
	"hyperledger-fabric": false,
	"polygon":            false,
}

var baseFees = map[string]float64{
	HomeNetwork:          0.5,
	"ethereum":           0.005,
	"hyperledger-fabric": 0.25,
	"polygon":            0.1,
}

var assetMultipliers = map[string]float64{
	"document":    1,
	"certificate": 1,
	"invoice":     1.2,
	"token":       1.5,
	"nft":         2,
}

var settlementTimes = map[crosschain.NetworkType]string{
	crosschain.NetworkPublic:  "5-10 minutes",
	crosschain.NetworkPrivate: "1-2 minutes",
	crosschain.NetworkHybrid:  "2-5 minutes",
}

// estimateFee charges the source network's base fee, scaled by asset type and
// doubled when leaving a private network for a public one.
func estimateFee(source, target crosschain.Network, assetType string) crosschain.FeeEstimate {
	multiplier, ok := assetMultipliers[strings.ToLower(assetType)]
	if !ok {
		multiplier = 1.5
	}
	fee := baseFees[source.ID] * multiplier
	if source.Type != crosschain.NetworkPublic && target.Type == crosschain.NetworkPublic {
		fee *= 2
	}
	return crosschain.FeeEstimate{
		Fee:           math.Round(fee*1e6) / 1e6,
		Currency:      source.Currency,
		EstimatedTime: settlementTimes[target.Type],
	}
}
