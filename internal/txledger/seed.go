package txledger

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/guudz-audit-ledger/internal/domain/crosschain"
	"github.com/guudz-audit-ledger/internal/platform/identifier"
)

// seedWindow bounds how far back seeded transactions are dated.
const seedWindow = 7 * 24 * time.Hour

var (
	seedNetworks   = []string{"Guudz Chain", "Ethereum", "Hyperledger Fabric", "Polygon", "Corda", "Quorum"}
	seedAssetTypes = []string{"Document", "Token", "NFT", "Certificate", "Invoice", "Bill of Lading"}
	seedStatuses   = []crosschain.Status{crosschain.StatusPending, crosschain.StatusCompleted, crosschain.StatusFailed}
)

type seeder struct {
	ids identifier.Source
	rng *rand.Rand
}

func newSeeder(ids identifier.Source) *seeder {
	if ids == nil {
		ids = identifier.NewGenerator()
	}
	return &seeder{ids: ids, rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// seed builds n sample transactions dated within the week before now, newest first.
func (s *seeder) seed(n int, now time.Time) []crosschain.Transaction {
	txs := make([]crosschain.Transaction, 0, n)
	for i := 0; i < n; i++ {
		src := s.rng.IntN(len(seedNetworks))
		dst := (src + 1 + s.rng.IntN(len(seedNetworks)-1)) % len(seedNetworks)
		status := seedStatuses[s.rng.IntN(len(seedStatuses))]

		tx := crosschain.Transaction{
			ID:          uuid.NewString(),
			SourceChain: seedNetworks[src],
			TargetChain: seedNetworks[dst],
			AssetType:   seedAssetTypes[s.rng.IntN(len(seedAssetTypes))],
			Amount:      math.Round((0.1+s.rng.Float64()*99.9)*100) / 100,
			Status:      status,
			Timestamp:   now.Add(-time.Duration(s.rng.Int64N(int64(seedWindow)))).UTC().Truncate(time.Millisecond),
			Hash:        s.ids.Next(identifier.KindTransaction),
		}
		if status == crosschain.StatusFailed {
			tx.FailureReason = "bridge validation timeout"
		}
		txs = append(txs, tx)
	}
	sortNewestFirst(txs)
	return txs
}
