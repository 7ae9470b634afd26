// Package crosschain simulates connections to a fixed catalog of blockchain
// networks and asset transfers between them.
package crosschain

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/guudz-audit-ledger/internal/domain/crosschain"
	"github.com/guudz-audit-ledger/internal/domain/document"
	"github.com/guudz-audit-ledger/internal/domain/shared"
	"github.com/guudz-audit-ledger/internal/platform/identifier"
	"github.com/guudz-audit-ledger/internal/platform/simulation"
	"golang.org/x/sync/errgroup"
)

// HomeNetwork is the network documents are registered on.
const HomeNetwork = "guudzchain"

const notConnected = "Not connected to network"

// TransactionLedger is the persisted transfer history owned by the simulator
type TransactionLedger interface {
	GetStored(ctx context.Context) []crosschain.Transaction
	Add(ctx context.Context, tx crosschain.Transaction) []crosschain.Transaction
}

// DocumentLookup resolves registered document hashes
type DocumentLookup interface {
	Lookup(ctx context.Context, hash string) (*document.Document, error)
}

// Session is a live connection to one network, passed explicitly to calls that need it.
type Session struct {
	ID          string             `json:"sessionId"`
	Network     crosschain.Network `json:"network"`
	ConnectedAt time.Time          `json:"connectedAt"`
}

// Simulator owns the network catalog, open sessions and transaction ledger appends.
type Simulator struct {
	ledger    TransactionLedger
	documents DocumentLookup
	ids       identifier.Source
	engine    *simulation.Engine
	logger    *slog.Logger

	mu       sync.RWMutex
	networks []crosschain.Network
	sessions map[string]Session
}

// NewSimulator creates a simulator over a fresh copy of the catalog. documents may
// be nil, in which case home network verification falls back to the anchor fixture.
func NewSimulator(logger *slog.Logger, ledger TransactionLedger, documents DocumentLookup, ids identifier.Source, engine *simulation.Engine) *Simulator {
	if engine == nil {
		engine = simulation.Immediate()
	}
	networks := make([]crosschain.Network, len(catalog))
	copy(networks, catalog)
	return &Simulator{
		ledger:    ledger,
		documents: documents,
		ids:       ids,
		engine:    engine,
		logger:    logger,
		networks:  networks,
		sessions:  make(map[string]Session),
	}
}

// Networks returns the catalog in display order.
func (s *Simulator) Networks(_ context.Context) []crosschain.Network {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]crosschain.Network, len(s.networks))
	copy(out, s.networks)
	return out
}

// ConnectToNetwork opens a session and marks the network connected.
func (s *Simulator) ConnectToNetwork(ctx context.Context, networkID string) (*Session, error) {
	if _, err := s.network(networkID); err != nil {
		return nil, err
	}

	var session Session
	err := s.engine.Do(ctx, simulation.OpConnectNetwork, func() error {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i := range s.networks {
			if s.networks[i].ID == networkID {
				s.networks[i].IsConnected = true
				session = Session{ID: uuid.NewString(), Network: s.networks[i], ConnectedAt: s.engine.Now()}
			}
		}
		s.sessions[session.ID] = session
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Connected to network", "network_id", networkID, "session_id", session.ID)
	return &session, nil
}

// Disconnect closes a session. The network stays connected while other sessions remain.
func (s *Simulator) Disconnect(_ context.Context, session *Session) error {
	if session == nil {
		return ErrSessionNotFound{ID: ""}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	open, ok := s.sessions[session.ID]
	if !ok {
		return ErrSessionNotFound{ID: session.ID}
	}
	delete(s.sessions, session.ID)
	for _, other := range s.sessions {
		if other.Network.ID == open.Network.ID {
			return nil
		}
	}
	for i := range s.networks {
		if s.networks[i].ID == open.Network.ID {
			s.networks[i].IsConnected = false
		}
	}
	return nil
}

// InvokeContract calls a chaincode function over an open session. Failures are
// reported in the result.
func (s *Simulator) InvokeContract(ctx context.Context, session *Session, function string, args []string) crosschain.InvokeResult {
	open, ok := s.session(session)
	if !ok {
		return crosschain.InvokeResult{Success: false, Error: notConnected}
	}
	if strings.TrimSpace(function) == "" {
		return crosschain.InvokeResult{Success: false, Error: shared.Required("function").Error()}
	}

	var result crosschain.InvokeResult
	err := s.engine.Do(ctx, simulation.OpInvokeContract, func() error {
		result = crosschain.InvokeResult{
			Success: true,
			TxID:    s.ids.Next(identifier.KindTransaction),
			Payload: fmt.Sprintf("%s(%s) committed on %s", function, strings.Join(args, ", "), open.Network.Name),
		}
		return nil
	})
	if err != nil {
		return crosschain.InvokeResult{Success: false, Error: err.Error()}
	}
	return result
}

// TransferAsset moves an asset between two catalog networks and appends the
// transaction to the ledger. An injected fault yields a failed transaction.
func (s *Simulator) TransferAsset(ctx context.Context, req crosschain.TransferRequest) (crosschain.Transaction, error) {
	if err := req.Validate(); err != nil {
		return crosschain.Transaction{}, err
	}
	source, err := s.network(req.SourceNetworkID)
	if err != nil {
		return crosschain.Transaction{}, err
	}
	target, err := s.network(req.TargetNetworkID)
	if err != nil {
		return crosschain.Transaction{}, err
	}

	start := s.engine.Now()
	tx := crosschain.Transaction{
		ID:          uuid.NewString(),
		SourceChain: source.Name,
		TargetChain: target.Name,
		AssetType:   req.AssetType,
		AssetID:     req.AssetID,
		Amount:      req.Amount,
		Status:      crosschain.StatusPending,
		Timestamp:   start,
		Hash:        s.ids.Next(identifier.KindTransaction),
	}
	settled, reason := crosschain.StatusCompleted, ""
	outcome := simulation.OutcomeSuccess
	if faultErr := s.engine.Fault(simulation.OpTransferAsset); faultErr != nil {
		settled, reason = crosschain.StatusFailed, faultErr.Error()
		outcome = simulation.OutcomeFault
	}
	if err := tx.Transition(settled, reason); err != nil {
		return crosschain.Transaction{}, err
	}

	s.ledger.Add(ctx, tx)

	if err := s.engine.Wait(ctx, simulation.OpTransferAsset); err != nil {
		s.engine.Observe(simulation.OpTransferAsset, simulation.OutcomeCancelled, s.engine.Now().Sub(start))
		return crosschain.Transaction{}, err
	}
	s.engine.Observe(simulation.OpTransferAsset, outcome, s.engine.Now().Sub(start))

	s.logger.Info("Cross-chain transfer recorded",
		"transaction_id", tx.ID,
		"source", tx.SourceChain,
		"target", tx.TargetChain,
		"asset_type", tx.AssetType,
		"status", tx.Status,
	)
	return tx, nil
}

// Transactions returns the transfer ledger newest first.
func (s *Simulator) Transactions(ctx context.Context) []crosschain.Transaction {
	return s.ledger.GetStored(ctx)
}

// VerifyDocumentAcrossChains asks every catalog network in parallel whether it
// anchors the document. Each network answers after its own verification delay,
// so the call takes about one delay. The result has one entry per network.
func (s *Simulator) VerifyDocumentAcrossChains(ctx context.Context, hash string) (map[string]bool, error) {
	if strings.TrimSpace(hash) == "" {
		return nil, shared.Required("documentHash")
	}

	const op = simulation.OpVerifyAcrossChains
	start := s.engine.Now()
	outcome := simulation.OutcomeSuccess
	defer func() {
		s.engine.Observe(op, outcome, s.engine.Now().Sub(start))
	}()

	if faultErr := s.engine.Fault(op); faultErr != nil {
		outcome = simulation.OutcomeFault
		if err := s.engine.Wait(ctx, op); err != nil {
			outcome = simulation.OutcomeCancelled
			return nil, err
		}
		return nil, faultErr
	}

	networks := s.Networks(ctx)
	result := make(map[string]bool, len(networks))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, n := range networks {
		g.Go(func() error {
			if err := s.engine.Wait(gctx, op); err != nil {
				return err
			}
			ok, err := s.anchored(gctx, n.ID, hash)
			if err != nil {
				return err
			}
			mu.Lock()
			result[n.ID] = ok
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		outcome = simulation.OutcomeError
		if ctx.Err() != nil {
			outcome = simulation.OutcomeCancelled
		}
		return nil, err
	}
	return result, nil
}

func (s *Simulator) anchored(ctx context.Context, networkID, hash string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if networkID == HomeNetwork && s.documents != nil {
		_, err := s.documents.Lookup(ctx, hash)
		return err == nil, nil
	}
	return anchors[networkID], nil
}

// GetCrossChainFeeEstimate quotes a transfer. The quote depends only on its inputs.
func (s *Simulator) GetCrossChainFeeEstimate(_ context.Context, sourceID, targetID, assetType string) (crosschain.FeeEstimate, error) {
	source, err := s.network(sourceID)
	if err != nil {
		return crosschain.FeeEstimate{}, err
	}
	target, err := s.network(targetID)
	if err != nil {
		return crosschain.FeeEstimate{}, err
	}
	if sourceID == targetID {
		return crosschain.FeeEstimate{}, crosschain.ErrInvalidTransfer{Reason: "source and target network must differ"}
	}
	return estimateFee(source, target, assetType), nil
}

func (s *Simulator) network(id string) (crosschain.Network, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.networks {
		if n.ID == id {
			return n, nil
		}
	}
	return crosschain.Network{}, crosschain.ErrNetworkNotFound{NetworkID: id}
}

// session resolves a caller's session against the open ones.
func (s *Simulator) session(session *Session) (Session, bool) {
	if session == nil {
		return Session{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	open, ok := s.sessions[session.ID]
	return open, ok
}
