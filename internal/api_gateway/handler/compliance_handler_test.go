package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/guudz-audit-ledger/internal/domain/compliance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestComplianceHandler_VerifySecurityManagement(t *testing.T) {
	logger := newTestLogger()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockComplianceService)
		h := NewComplianceHandler(logger, mockService)
		result := compliance.Result{Standard: "ISO 28000", Subject: "SHP-1", Status: compliance.StatusCompliant}
		mockService.On("VerifySecurityManagement", mock.Anything, "SHP-1").Return(result, nil)

		router := setupTestRouter()
		router.POST("/compliance/iso28000", h.VerifySecurityManagement)

		w, resp := perform(t, router, http.MethodPost, "/compliance/iso28000", SecurityManagementRequest{ShipmentID: "SHP-1"})

		assert.Equal(t, http.StatusOK, w.Code)
		var got compliance.Result
		decodeData(t, resp, &got)
		assert.Equal(t, compliance.StatusCompliant, got.Status)
		assert.Equal(t, "SHP-1", got.Subject)
	})

	t.Run("MissingShipment", func(t *testing.T) {
		mockService := new(MockComplianceService)
		h := NewComplianceHandler(logger, mockService)

		router := setupTestRouter()
		router.POST("/compliance/iso28000", h.VerifySecurityManagement)

		w, _ := perform(t, router, http.MethodPost, "/compliance/iso28000", map[string]string{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "VerifySecurityManagement", mock.Anything, mock.Anything)
	})
}

func TestComplianceHandler_VerifySAFEFramework(t *testing.T) {
	logger := newTestLogger()

	t.Run("EmptyBodyUsesDefaults", func(t *testing.T) {
		mockService := new(MockComplianceService)
		h := NewComplianceHandler(logger, mockService)
		mockService.On("VerifySAFEFramework", mock.Anything, compliance.SAFEConfig{}).
			Return(compliance.Result{Standard: "WCO SAFE Framework", Status: compliance.StatusCompliant}, nil)

		router := setupTestRouter()
		router.POST("/compliance/safe", h.VerifySAFEFramework)

		w, _ := perform(t, router, http.MethodPost, "/compliance/safe", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("ExplicitPillars", func(t *testing.T) {
		mockService := new(MockComplianceService)
		h := NewComplianceHandler(logger, mockService)
		mockService.On("VerifySAFEFramework", mock.Anything, mock.MatchedBy(func(cfg compliance.SAFEConfig) bool {
			return cfg.AEOCertified != nil && !*cfg.AEOCertified && cfg.CustomsAuthority == "HMRC"
		})).Return(compliance.Result{Status: compliance.StatusNonCompliant}, nil)

		router := setupTestRouter()
		router.POST("/compliance/safe", h.VerifySAFEFramework)

		w, resp := perform(t, router, http.MethodPost, "/compliance/safe", `{"customsAuthority":"HMRC","aeoCertified":false}`)

		assert.Equal(t, http.StatusOK, w.Code)
		var got compliance.Result
		decodeData(t, resp, &got)
		assert.Equal(t, compliance.StatusNonCompliant, got.Status)
	})
}

func TestComplianceHandler_Credit(t *testing.T) {
	logger := newTestLogger()
	mockService := new(MockComplianceService)
	h := NewComplianceHandler(logger, mockService)

	score := compliance.NewCreditScore("entity-001", "Global Shipping Co", 85, 156, 125000, time.Now().UTC())
	mockService.On("GetCreditScore", mock.Anything, "entity-001").Return(score, nil)
	mockService.On("GetCreditFacilities", mock.Anything, "entity-001").Return([]compliance.CreditFacility{{ID: "facility-001"}}, nil)

	router := setupTestRouter()
	router.GET("/entities/:entityId/credit-score", h.CreditScore)
	router.GET("/entities/:entityId/credit-facilities", h.CreditFacilities)

	t.Run("Score", func(t *testing.T) {
		w, resp := perform(t, router, http.MethodGet, "/entities/entity-001/credit-score", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var got compliance.CreditScore
		decodeData(t, resp, &got)
		assert.Equal(t, 85, got.Score)
		assert.Equal(t, compliance.RiskLevelFor(85), got.RiskLevel)
	})

	t.Run("Facilities", func(t *testing.T) {
		w, resp := perform(t, router, http.MethodGet, "/entities/entity-001/credit-facilities", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, 1, resp.Meta.TotalItems)
	})
}

func TestComplianceHandler_Insurance(t *testing.T) {
	logger := newTestLogger()

	t.Run("CreatePolicy", func(t *testing.T) {
		mockService := new(MockComplianceService)
		h := NewComplianceHandler(logger, mockService)
		req := compliance.PolicyRequest{CoverageType: "cargo", Coverage: 100000, Deductible: 1000, TermDays: 30}
		policy := compliance.NewPolicy("POL-1", req, time.Now().UTC())
		mockService.On("CreateInsurancePolicy", mock.Anything, req).Return(policy, nil)

		router := setupTestRouter()
		router.POST("/insurance/policies", h.CreatePolicy)

		w, resp := perform(t, router, http.MethodPost, "/insurance/policies", req)

		assert.Equal(t, http.StatusCreated, w.Code)
		var got compliance.Policy
		decodeData(t, resp, &got)
		assert.Equal(t, "POL-1", got.ID)
		assert.Equal(t, compliance.PolicyActive, got.Status)
	})

	t.Run("GetPolicyNotFound", func(t *testing.T) {
		mockService := new(MockComplianceService)
		h := NewComplianceHandler(logger, mockService)
		mockService.On("Policy", mock.Anything, "POL-X").Return(compliance.Policy{}, compliance.ErrPolicyNotFound{PolicyID: "POL-X"})

		router := setupTestRouter()
		router.GET("/insurance/policies/:policyId", h.GetPolicy)

		w, resp := perform(t, router, http.MethodGet, "/insurance/policies/POL-X", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		require.NotNil(t, resp.Error)
		assert.Contains(t, resp.Error.Message, "POL-X")
	})

	claimTests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "Accepted", wantStatus: http.StatusCreated},
		{name: "UnknownPolicy", err: compliance.ErrPolicyNotFound{PolicyID: "POL-1"}, wantStatus: http.StatusNotFound},
		{name: "InactivePolicy", err: compliance.ErrPolicyInactive{PolicyID: "POL-1"}, wantStatus: http.StatusUnprocessableEntity},
	}
	for _, tc := range claimTests {
		t.Run("SubmitClaim/"+tc.name, func(t *testing.T) {
			mockService := new(MockComplianceService)
			h := NewComplianceHandler(logger, mockService)
			req := compliance.ClaimRequest{PolicyID: "POL-1", ClaimAmount: 5000, Description: "water damage"}
			result := compliance.ClaimResult{}
			if tc.err == nil {
				result = compliance.ClaimResult{Success: true, ClaimID: "CLM-1", PolicyID: "POL-1"}
			}
			mockService.On("SubmitInsuranceClaim", mock.Anything, req).Return(result, tc.err)

			router := setupTestRouter()
			router.POST("/insurance/claims", h.SubmitClaim)

			w, _ := perform(t, router, http.MethodPost, "/insurance/claims", req)

			assert.Equal(t, tc.wantStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}
