package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/guudz-audit-ledger/internal/api_gateway/service"
	"github.com/guudz-audit-ledger/internal/domain/document"
	"github.com/guudz-audit-ledger/internal/domain/provenance"
)

// DocumentHandler handles HTTP requests for registry operations
type DocumentHandler struct {
	documents service.DocumentService
	batch     service.BatchRegistrar
	logger    *slog.Logger
}

// NewDocumentHandler creates a new document handler. batch may be nil, which
// disables the batch endpoint.
func NewDocumentHandler(logger *slog.Logger, documents service.DocumentService, batch service.BatchRegistrar) *DocumentHandler {
	return &DocumentHandler{
		documents: documents,
		batch:     batch,
		logger:    logger,
	}
}

// Register anchors a single document and returns its hash
func (h *DocumentHandler) Register(c *gin.Context) {
	var req document.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	hash, err := h.documents.RegisterDocument(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "Failed to register document", err)
		return
	}

	RespondCreated(c, RegisterDocumentResponse{DocID: req.DocID, Hash: hash})
}

// RegisterBatch anchors several documents and reports one result per document
func (h *DocumentHandler) RegisterBatch(c *gin.Context) {
	var req BatchRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if h.batch == nil {
		RespondServiceUnavailable(c, "Batch registration is not enabled")
		return
	}

	results := h.batch.RegisterBatch(c.Request.Context(), req.Documents)
	RespondList(c, results, len(results))
}

// Lookup returns the document registered under a hash
func (h *DocumentHandler) Lookup(c *gin.Context) {
	hash := c.Param("hash")
	doc, err := h.documents.Lookup(c.Request.Context(), hash)
	if err != nil {
		respondError(c, h.logger, "Failed to look up document", err)
		return
	}
	RespondOK(c, doc)
}

// Verify reports whether a hash belongs to a registered document. Unknown hashes
// are not an error.
func (h *DocumentHandler) Verify(c *gin.Context) {
	hash := c.Param("hash")
	verified, err := h.documents.VerifyDocument(c.Request.Context(), hash)
	if err != nil {
		respondError(c, h.logger, "Failed to verify document", err)
		return
	}
	RespondOK(c, VerificationResponse{Hash: hash, Verified: verified})
}

// History returns a document's audit trail, oldest first
func (h *DocumentHandler) History(c *gin.Context) {
	docID := c.Param("docId")
	events, err := h.documents.GetHistory(c.Request.Context(), docID)
	if err != nil {
		respondError(c, h.logger, "Failed to get document history", err)
		return
	}
	RespondList(c, events, len(events))
}

// RecordEvent appends a lifecycle event such as signed or customs_cleared
func (h *DocumentHandler) RecordEvent(c *gin.Context) {
	var req RecordEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	event, err := h.documents.RecordEvent(c.Request.Context(), c.Param("docId"), provenance.Action(req.Action), req.Actor)
	if err != nil {
		respondError(c, h.logger, "Failed to record event", err)
		return
	}
	RespondCreated(c, event)
}
