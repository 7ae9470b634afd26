// Package scoring answers compliance, credit and trade insurance queries from
// static profiles. It never touches document provenance.
package scoring

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/guudz-audit-ledger/internal/domain/compliance"
	"github.com/guudz-audit-ledger/internal/domain/shared"
	"github.com/guudz-audit-ledger/internal/platform/simulation"
)

const (
	StandardISO28000 = "ISO 28000"
	StandardSAFE     = "WCO SAFE Framework"

	isoAuthority = "ISO Certification Body"
)

type profile struct {
	name         string
	score        int
	transactions int
	averageValue float64
}

var profiles = map[string]profile{
	"entity-001": {name: "Global Shipping Co", score: 85, transactions: 156, averageValue: 125000},
	"entity-002": {name: "Pacific Freight Ltd", score: 68, transactions: 89, averageValue: 75000},
	"entity-003": {name: "Atlas Logistics", score: 42, transactions: 23, averageValue: 30000},
}

var isoRequirements = []string{
	"Security management policy established",
	"Security risk assessment completed",
	"Security objectives and targets defined",
	"Supply chain security plan implemented",
	"Management review performed",
}

var facilities = []compliance.CreditFacility{
	{ID: "facility-001", Provider: "Trade Finance Bank", Type: "Letter of Credit", Limit: 500000, Currency: "USD", InterestRate: 4.5, TermDays: 90},
	{ID: "facility-002", Provider: "Global Supply Chain Finance", Type: "Invoice Factoring", Limit: 250000, Currency: "USD", InterestRate: 6.2, TermDays: 60},
	{ID: "facility-003", Provider: "Maritime Credit Union", Type: "Working Capital Loan", Limit: 150000, Currency: "EUR", InterestRate: 5.8, TermDays: 180},
}

// Service computes compliance verdicts, credit profiles and insurance policies.
type Service struct {
	engine *simulation.Engine
	logger *slog.Logger

	mu       sync.RWMutex
	policies map[string]compliance.Policy
}

func NewService(logger *slog.Logger, engine *simulation.Engine) *Service {
	if engine == nil {
		engine = simulation.Immediate()
	}
	return &Service{
		engine:   engine,
		logger:   logger,
		policies: make(map[string]compliance.Policy),
	}
}

// VerifySecurityManagement checks a shipment against ISO 28000.
func (s *Service) VerifySecurityManagement(ctx context.Context, shipmentID string) (compliance.Result, error) {
	if strings.TrimSpace(shipmentID) == "" {
		return compliance.Result{}, shared.Required("shipmentId")
	}

	checks := make([]compliance.Check, len(isoRequirements))
	for i, req := range isoRequirements {
		checks[i] = compliance.Check{Requirement: req, Passed: true}
	}

	var res compliance.Result
	err := s.engine.Do(ctx, simulation.OpSecurityManagement, func() error {
		res = compliance.Evaluate(StandardISO28000, shipmentID, isoAuthority, checks, s.engine.Now())
		return nil
	})
	return res, err
}

// VerifySAFEFramework checks the attested WCO SAFE pillars.
func (s *Service) VerifySAFEFramework(ctx context.Context, cfg compliance.SAFEConfig) (compliance.Result, error) {
	var res compliance.Result
	err := s.engine.Do(ctx, simulation.OpSAFEFramework, func() error {
		res = compliance.Evaluate(StandardSAFE, cfg.Authority(), cfg.Authority(), cfg.Checks(), s.engine.Now())
		return nil
	})
	return res, err
}

// GetCreditScore returns the entity's profile. Unknown entities get a neutral
// medium-risk profile with no trading history.
func (s *Service) GetCreditScore(ctx context.Context, entityID string) (compliance.CreditScore, error) {
	if strings.TrimSpace(entityID) == "" {
		return compliance.CreditScore{}, shared.Required("entityId")
	}

	var score compliance.CreditScore
	err := s.engine.Do(ctx, simulation.OpCreditScore, func() error {
		p, ok := profiles[entityID]
		if !ok {
			p = profile{name: "Unknown Entity", score: 50}
		}
		score = compliance.NewCreditScore(entityID, p.name, p.score, p.transactions, p.averageValue, s.engine.Now())
		return nil
	})
	return score, err
}

// GetCreditFacilities returns the credit lines open to an entity.
func (s *Service) GetCreditFacilities(ctx context.Context, entityID string) ([]compliance.CreditFacility, error) {
	if strings.TrimSpace(entityID) == "" {
		return nil, shared.Required("entityId")
	}

	var out []compliance.CreditFacility
	err := s.engine.Do(ctx, simulation.OpCreditFacilities, func() error {
		out = make([]compliance.CreditFacility, len(facilities))
		copy(out, facilities)
		return nil
	})
	return out, err
}

// CreateInsurancePolicy issues an active policy starting now.
func (s *Service) CreateInsurancePolicy(ctx context.Context, req compliance.PolicyRequest) (compliance.Policy, error) {
	if err := req.Validate(); err != nil {
		return compliance.Policy{}, err
	}

	var policy compliance.Policy
	err := s.engine.Do(ctx, simulation.OpCreatePolicy, func() error {
		policy = compliance.NewPolicy("POL-"+uuid.NewString(), req, s.engine.Now())
		s.mu.Lock()
		s.policies[policy.ID] = policy
		s.mu.Unlock()
		return nil
	})
	if err != nil {
		return compliance.Policy{}, err
	}

	s.logger.Info("Insurance policy created",
		"policy_id", policy.ID,
		"coverage_type", policy.CoverageType,
		"coverage", policy.Coverage,
		"premium", policy.Premium,
	)
	return policy, nil
}

// SubmitInsuranceClaim files a claim against an existing policy that is active now.
func (s *Service) SubmitInsuranceClaim(ctx context.Context, req compliance.ClaimRequest) (compliance.ClaimResult, error) {
	if err := req.Validate(); err != nil {
		return compliance.ClaimResult{}, err
	}

	s.mu.RLock()
	policy, ok := s.policies[req.PolicyID]
	s.mu.RUnlock()
	if !ok {
		return compliance.ClaimResult{}, compliance.ErrPolicyNotFound{PolicyID: req.PolicyID}
	}
	if !policy.ActiveAt(s.engine.Now()) {
		return compliance.ClaimResult{}, compliance.ErrPolicyInactive{PolicyID: req.PolicyID}
	}

	var result compliance.ClaimResult
	err := s.engine.Do(ctx, simulation.OpSubmitClaim, func() error {
		result = compliance.ClaimResult{
			Success:     true,
			ClaimID:     "CLM-" + uuid.NewString(),
			PolicyID:    req.PolicyID,
			SubmittedAt: s.engine.Now(),
		}
		return nil
	})
	if err != nil {
		return compliance.ClaimResult{}, err
	}

	s.logger.Info("Insurance claim submitted",
		"claim_id", result.ClaimID,
		"policy_id", req.PolicyID,
		"amount", req.ClaimAmount,
		"evidence_documents", len(req.EvidenceDocuments),
	)
	return result, nil
}

// Policy returns a previously issued policy.
func (s *Service) Policy(_ context.Context, id string) (compliance.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	policy, ok := s.policies[id]
	if !ok {
		return compliance.Policy{}, compliance.ErrPolicyNotFound{PolicyID: id}
	}
	return policy, nil
}
