package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/guudz-audit-ledger/internal/api_gateway/service"
	"github.com/guudz-audit-ledger/internal/crosschain"
	domaincc "github.com/guudz-audit-ledger/internal/domain/crosschain"
)

// NetworkHandler handles network sessions, contract calls and cross-chain transfers
type NetworkHandler struct {
	chains service.CrossChainService
	logger *slog.Logger
}

// NewNetworkHandler creates a new network handler
func NewNetworkHandler(logger *slog.Logger, chains service.CrossChainService) *NetworkHandler {
	return &NetworkHandler{
		chains: chains,
		logger: logger,
	}
}

// List returns the network catalog with connection state
func (h *NetworkHandler) List(c *gin.Context) {
	networks := h.chains.Networks(c.Request.Context())
	RespondList(c, networks, len(networks))
}

// Connect opens a session to a network
func (h *NetworkHandler) Connect(c *gin.Context) {
	session, err := h.chains.ConnectToNetwork(c.Request.Context(), c.Param("networkId"))
	if err != nil {
		respondError(c, h.logger, "Failed to connect to network", err)
		return
	}
	RespondCreated(c, session)
}

// Disconnect closes a session
func (h *NetworkHandler) Disconnect(c *gin.Context) {
	session := &crosschain.Session{ID: c.Param("sessionId")}
	if err := h.chains.Disconnect(c.Request.Context(), session); err != nil {
		respondError(c, h.logger, "Failed to disconnect session", err)
		return
	}
	RespondNoContent(c)
}

// Invoke calls a chaincode function over a session. Contract failures are part
// of the result and still answer 200.
func (h *NetworkHandler) Invoke(c *gin.Context) {
	var req InvokeContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	session := &crosschain.Session{ID: c.Param("sessionId")}
	result := h.chains.InvokeContract(c.Request.Context(), session, req.Function, req.Args)
	if !result.Success {
		h.logger.Warn("Contract invocation failed", "session_id", session.ID, "function", req.Function, "error", result.Error)
	}
	RespondOK(c, result)
}

// Transfer moves an asset between two networks
func (h *NetworkHandler) Transfer(c *gin.Context) {
	var req domaincc.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	tx, err := h.chains.TransferAsset(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "Failed to transfer asset", err)
		return
	}
	RespondCreated(c, tx)
}

// Transactions returns the transfer ledger, newest first
func (h *NetworkHandler) Transactions(c *gin.Context) {
	txs := h.chains.Transactions(c.Request.Context())
	RespondList(c, txs, len(txs))
}

// FeeEstimate quotes a transfer without performing it
func (h *NetworkHandler) FeeEstimate(c *gin.Context) {
	var q FeeEstimateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.logger.Error("Invalid query parameters", "error", err)
		RespondBadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	estimate, err := h.chains.GetCrossChainFeeEstimate(c.Request.Context(), q.Source, q.Target, q.AssetType)
	if err != nil {
		respondError(c, h.logger, "Failed to estimate fee", err)
		return
	}
	RespondOK(c, estimate)
}

// VerifyAcrossChains reports per network whether a hash is anchored
func (h *NetworkHandler) VerifyAcrossChains(c *gin.Context) {
	hash := c.Param("hash")
	result, err := h.chains.VerifyDocumentAcrossChains(c.Request.Context(), hash)
	if err != nil {
		respondError(c, h.logger, "Failed to verify across chains", err)
		return
	}
	RespondOK(c, CrossChainVerificationResponse{Hash: hash, Networks: result})
}
