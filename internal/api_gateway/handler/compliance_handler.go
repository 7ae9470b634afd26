package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/guudz-audit-ledger/internal/api_gateway/service"
	"github.com/guudz-audit-ledger/internal/domain/compliance"
)

// ComplianceHandler handles compliance checks, credit scoring and trade insurance
type ComplianceHandler struct {
	compliance service.ComplianceService
	logger     *slog.Logger
}

// NewComplianceHandler creates a new compliance handler
func NewComplianceHandler(logger *slog.Logger, compliance service.ComplianceService) *ComplianceHandler {
	return &ComplianceHandler{
		compliance: compliance,
		logger:     logger,
	}
}

// VerifySecurityManagement runs the ISO 28000 checks for a shipment
func (h *ComplianceHandler) VerifySecurityManagement(c *gin.Context) {
	var req SecurityManagementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.compliance.VerifySecurityManagement(c.Request.Context(), req.ShipmentID)
	if err != nil {
		respondError(c, h.logger, "Failed to verify security management", err)
		return
	}
	RespondOK(c, result)
}

// VerifySAFEFramework evaluates the WCO SAFE pillars. An empty body checks the defaults.
func (h *ComplianceHandler) VerifySAFEFramework(c *gin.Context) {
	var cfg compliance.SAFEConfig
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&cfg); err != nil {
			h.logger.Error("Invalid request body", "error", err)
			RespondBadRequest(c, "Invalid request body: "+err.Error())
			return
		}
	}

	result, err := h.compliance.VerifySAFEFramework(c.Request.Context(), cfg)
	if err != nil {
		respondError(c, h.logger, "Failed to verify SAFE framework", err)
		return
	}
	RespondOK(c, result)
}

// CreditScore returns an entity's trade credit score
func (h *ComplianceHandler) CreditScore(c *gin.Context) {
	score, err := h.compliance.GetCreditScore(c.Request.Context(), c.Param("entityId"))
	if err != nil {
		respondError(c, h.logger, "Failed to get credit score", err)
		return
	}
	RespondOK(c, score)
}

// CreditFacilities lists the facilities offered to an entity
func (h *ComplianceHandler) CreditFacilities(c *gin.Context) {
	facilities, err := h.compliance.GetCreditFacilities(c.Request.Context(), c.Param("entityId"))
	if err != nil {
		respondError(c, h.logger, "Failed to get credit facilities", err)
		return
	}
	RespondList(c, facilities, len(facilities))
}

// CreatePolicy issues a trade insurance policy
func (h *ComplianceHandler) CreatePolicy(c *gin.Context) {
	var req compliance.PolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	policy, err := h.compliance.CreateInsurancePolicy(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "Failed to create insurance policy", err)
		return
	}
	RespondCreated(c, policy)
}

// GetPolicy returns an issued policy, 404 if unknown
func (h *ComplianceHandler) GetPolicy(c *gin.Context) {
	policy, err := h.compliance.Policy(c.Request.Context(), c.Param("policyId"))
	if err != nil {
		respondError(c, h.logger, "Failed to get insurance policy", err)
		return
	}
	RespondOK(c, policy)
}

// SubmitClaim files a claim against an active policy
func (h *ComplianceHandler) SubmitClaim(c *gin.Context) {
	var req compliance.ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.compliance.SubmitInsuranceClaim(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "Failed to submit insurance claim", err)
		return
	}
	RespondCreated(c, result)
}
