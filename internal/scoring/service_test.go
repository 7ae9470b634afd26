package scoring

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/guudz-audit-ledger/internal/domain/compliance"
	"github.com/guudz-audit-ledger/internal/domain/shared"
	"github.com/guudz-audit-ledger/internal/platform/simulation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) After(d time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- c.Now().Add(d)
	return ch
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var testNow = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func newTestService() (*Service, *manualClock) {
	clock := &manualClock{now: testNow}
	return NewService(newTestLogger(), simulation.NewEngine(nil, nil, clock, nil)), clock
}

func TestService_VerifySecurityManagement(t *testing.T) {
	svc, _ := newTestService()

	res, err := svc.VerifySecurityManagement(context.Background(), "SHP-001")
	require.NoError(t, err)
	assert.Equal(t, compliance.StatusCompliant, res.Status)
	assert.Equal(t, StandardISO28000, res.Standard)
	assert.Equal(t, "ISO Certification Body", res.Authority)
	assert.Equal(t, "SHP-001", res.Subject)
	assert.Len(t, res.Details, len(isoRequirements))
	assert.Equal(t, testNow, res.Timestamp)

	_, err = svc.VerifySecurityManagement(context.Background(), "")
	assert.True(t, errors.Is(err, shared.ValidationError{Field: "shipmentId"}))
}

func TestService_VerifySAFEFramework(t *testing.T) {
	no := false
	testCases := []struct {
		name              string
		cfg               compliance.SAFEConfig
		expectedStatus    compliance.Status
		expectedAuthority string
	}{
		{"DefaultsCompliant", compliance.SAFEConfig{}, compliance.StatusCompliant, compliance.DefaultCustomsAuthority},
		{"NamedAuthority", compliance.SAFEConfig{CustomsAuthority: "Dutch Customs"}, compliance.StatusCompliant, "Dutch Customs"},
		{"MissingPillar", compliance.SAFEConfig{AEOCertified: &no}, compliance.StatusNonCompliant, compliance.DefaultCustomsAuthority},
	}

	svc, _ := newTestService()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := svc.VerifySAFEFramework(context.Background(), tc.cfg)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedStatus, res.Status)
			assert.Equal(t, tc.expectedAuthority, res.Authority)
			assert.Len(t, res.Details, 4)
		})
	}
}

func TestService_GetCreditScore(t *testing.T) {
	testCases := []struct {
		entityID     string
		expectedName string
		expectedRisk compliance.RiskLevel
	}{
		{"entity-001", "Global Shipping Co", compliance.RiskLow},
		{"entity-002", "Pacific Freight Ltd", compliance.RiskMedium},
		{"entity-003", "Atlas Logistics", compliance.RiskHigh},
		{"entity-does-not-exist", "Unknown Entity", compliance.RiskMedium},
	}

	svc, _ := newTestService()
	for _, tc := range testCases {
		t.Run(tc.entityID, func(t *testing.T) {
			score, err := svc.GetCreditScore(context.Background(), tc.entityID)
			require.NoError(t, err)
			assert.Equal(t, tc.entityID, score.EntityID)
			assert.Equal(t, tc.expectedName, score.EntityName)
			assert.Equal(t, tc.expectedRisk, score.RiskLevel)
			assert.Equal(t, compliance.RiskLevelFor(score.Score), score.RiskLevel)
		})
	}

	t.Run("UnknownDefaults", func(t *testing.T) {
		score, err := svc.GetCreditScore(context.Background(), "entity-does-not-exist")
		require.NoError(t, err)
		assert.Equal(t, 50, score.Score)
		assert.Equal(t, 0, score.TransactionCount)
		assert.Equal(t, 0.0, score.AverageValue)
	})
}

func TestService_GetCreditFacilities(t *testing.T) {
	svc, _ := newTestService()

	got, err := svc.GetCreditFacilities(context.Background(), "entity-001")
	require.NoError(t, err)
	require.NotEmpty(t, got)

	got[0].Limit = 1
	again, err := svc.GetCreditFacilities(context.Background(), "anyone")
	require.NoError(t, err)
	assert.Equal(t, 500000.0, again[0].Limit)
}

func TestService_InsuranceLifecycle(t *testing.T) {
	svc, clock := newTestService()
	ctx := context.Background()

	policy, err := svc.CreateInsurancePolicy(ctx, compliance.PolicyRequest{
		CoverageType: "cargo",
		Coverage:     100000,
		Deductible:   1000,
		TermDays:     30,
	})
	require.NoError(t, err)
	assert.Equal(t, 500.0, policy.Premium)
	assert.Equal(t, compliance.PolicyActive, policy.Status)
	assert.Equal(t, testNow, policy.StartDate)
	assert.Equal(t, testNow.AddDate(0, 0, 30), policy.EndDate)

	stored, err := svc.Policy(ctx, policy.ID)
	require.NoError(t, err)
	assert.Equal(t, policy, stored)

	claim, err := svc.SubmitInsuranceClaim(ctx, compliance.ClaimRequest{PolicyID: policy.ID, ClaimAmount: 2500, Description: "water damage"})
	require.NoError(t, err)
	assert.True(t, claim.Success)
	assert.NotEmpty(t, claim.ClaimID)
	assert.Equal(t, policy.ID, claim.PolicyID)

	testCases := []struct {
		name        string
		req         compliance.ClaimRequest
		advance     time.Duration
		expectedErr error
	}{
		{"UnknownPolicy", compliance.ClaimRequest{PolicyID: "POL-missing", ClaimAmount: 10}, 0, compliance.ErrPolicyNotFound{PolicyID: "POL-missing"}},
		{"ZeroAmount", compliance.ClaimRequest{PolicyID: policy.ID}, 0, shared.ValidationError{Field: "claimAmount"}},
		{"Expired", compliance.ClaimRequest{PolicyID: policy.ID, ClaimAmount: 10}, 31 * 24 * time.Hour, compliance.ErrPolicyInactive{PolicyID: policy.ID}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clock.Advance(tc.advance)
			_, err := svc.SubmitInsuranceClaim(ctx, tc.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.expectedErr))
		})
	}
}

func TestService_CreateInsurancePolicy_Invalid(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateInsurancePolicy(context.Background(), compliance.PolicyRequest{CoverageType: "cargo", Coverage: 0, TermDays: 10})
	assert.True(t, errors.Is(err, shared.ValidationError{Field: "coverage"}))

	_, err = svc.CreateInsurancePolicy(context.Background(), compliance.PolicyRequest{CoverageType: "cargo", Coverage: 10, TermDays: 0})
	assert.True(t, errors.Is(err, shared.ValidationError{Field: "termDays"}))
}

func TestService_FaultInjection(t *testing.T) {
	engine := simulation.NewEngine(nil, simulation.AlwaysFail(simulation.OpCreditScore), nil, nil)
	svc := NewService(newTestLogger(), engine)

	_, err := svc.GetCreditScore(context.Background(), "entity-001")
	assert.ErrorIs(t, err, simulation.ErrTransientFailure)

	_, err = svc.VerifySecurityManagement(context.Background(), "SHP-1")
	assert.NoError(t, err)
}
