package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/guudz-audit-ledger/internal/api_gateway/service"
)

// UploadHandler handles simulated uploads and the notification feed
type UploadHandler struct {
	uploads       service.UploadService
	notifications service.NotificationFeed
	logger        *slog.Logger
}

// NewUploadHandler creates a new upload handler. notifications may be nil.
func NewUploadHandler(logger *slog.Logger, uploads service.UploadService, notifications service.NotificationFeed) *UploadHandler {
	return &UploadHandler{
		uploads:       uploads,
		notifications: notifications,
		logger:        logger,
	}
}

// Start begins an upload; clients poll Status for progress
func (h *UploadHandler) Start(c *gin.Context) {
	var req StartUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	u, err := h.uploads.Start(c.Request.Context(), req.FileName, req.Size)
	if err != nil {
		respondError(c, h.logger, "Failed to start upload", err)
		return
	}
	RespondAccepted(c, u)
}

// Status returns the latest snapshot of an upload
func (h *UploadHandler) Status(c *gin.Context) {
	u, err := h.uploads.Status(c.Request.Context(), c.Param("uploadId"))
	if err != nil {
		respondError(c, h.logger, "Failed to get upload status", err)
		return
	}
	RespondOK(c, u)
}

// List returns every upload, most recent first
func (h *UploadHandler) List(c *gin.Context) {
	uploads := h.uploads.List(c.Request.Context())
	RespondList(c, uploads, len(uploads))
}

// Notifications returns the recent notification feed
func (h *UploadHandler) Notifications(c *gin.Context) {
	if h.notifications == nil {
		RespondList(c, []struct{}{}, 0)
		return
	}
	recent := h.notifications.Recent()
	RespondList(c, recent, len(recent))
}
