package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/guudz-audit-ledger/internal/crosschain"
	"github.com/guudz-audit-ledger/internal/domain/compliance"
	domaincc "github.com/guudz-audit-ledger/internal/domain/crosschain"
	"github.com/guudz-audit-ledger/internal/domain/document"
	"github.com/guudz-audit-ledger/internal/domain/shared"
	"github.com/guudz-audit-ledger/internal/platform/simulation"
	"github.com/guudz-audit-ledger/internal/upload"
)

// respondError maps service errors onto the response envelope
func respondError(c *gin.Context, logger *slog.Logger, msg string, err error) {
	var (
		validationErr   shared.ValidationError
		invalidTransfer domaincc.ErrInvalidTransfer
	)
	switch {
	case errors.As(err, &validationErr):
		RespondBadRequest(c, validationErr.Error())
	case errors.As(err, &invalidTransfer):
		RespondBadRequest(c, invalidTransfer.Error())
	case errors.Is(err, document.ErrDocumentNotFound{}),
		errors.Is(err, domaincc.ErrNetworkNotFound{}),
		errors.Is(err, compliance.ErrPolicyNotFound{}),
		errors.Is(err, crosschain.ErrSessionNotFound{}),
		errors.Is(err, upload.ErrUploadNotFound{}):
		RespondNotFound(c, err.Error())
	case errors.Is(err, document.ErrAlreadyRegistered{}):
		RespondConflict(c, err.Error())
	case errors.Is(err, compliance.ErrPolicyInactive{}):
		RespondUnprocessable(c, err.Error())
	case errors.Is(err, simulation.ErrTransientFailure):
		logger.Warn(msg, "error", err)
		RespondServiceUnavailable(c, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		logger.Warn(msg, "error", err)
		RespondTimeout(c)
	default:
		logger.Error(msg, "error", err)
		RespondInternalError(c)
	}
}
