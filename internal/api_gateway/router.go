package api_gateway

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guudz-audit-ledger/internal/api_gateway/handler"
	"github.com/guudz-audit-ledger/internal/api_gateway/middleware"
	"github.com/guudz-audit-ledger/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck reports whether a backing store is reachable
type HealthCheck func(ctx context.Context) error

type handlers struct {
	documents  *handler.DocumentHandler
	compliance *handler.ComplianceHandler
	networks   *handler.NetworkHandler
	uploads    *handler.UploadHandler
}

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	h handlers,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
	checks map[string]HealthCheck,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CorrelationID())
	r.Use(middleware.Logger(logger, m))

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		// Registry
		documents := v1.Group("/documents")
		{
			documents.POST("", h.documents.Register)
			documents.POST("/batch", h.documents.RegisterBatch)
			documents.GET("/:docId/history", h.documents.History)
			documents.POST("/:docId/events", h.documents.RecordEvent)
		}

		hashes := v1.Group("/hashes")
		{
			hashes.GET("/:hash", h.documents.Lookup)
			hashes.GET("/:hash/verification", h.documents.Verify)
			hashes.GET("/:hash/chains", h.networks.VerifyAcrossChains)
		}

		// Scoring and compliance
		compliance := v1.Group("/compliance")
		{
			compliance.POST("/iso28000", h.compliance.VerifySecurityManagement)
			compliance.POST("/safe", h.compliance.VerifySAFEFramework)
		}

		credit := v1.Group("/entities/:entityId")
		{
			credit.GET("/credit-score", h.compliance.CreditScore)
			credit.GET("/credit-facilities", h.compliance.CreditFacilities)
		}

		insurance := v1.Group("/insurance")
		{
			insurance.POST("/policies", h.compliance.CreatePolicy)
			insurance.GET("/policies/:policyId", h.compliance.GetPolicy)
			insurance.POST("/claims", h.compliance.SubmitClaim)
		}

		// Cross-chain
		networks := v1.Group("/networks")
		{
			networks.GET("", h.networks.List)
			networks.POST("/:networkId/sessions", h.networks.Connect)
		}

		sessions := v1.Group("/sessions/:sessionId")
		{
			sessions.DELETE("", h.networks.Disconnect)
			sessions.POST("/invoke", h.networks.Invoke)
		}

		transfers := v1.Group("/transfers")
		{
			transfers.POST("", h.networks.Transfer)
			transfers.GET("", h.networks.Transactions)
			transfers.GET("/fee-estimate", h.networks.FeeEstimate)
		}

		// Uploads and notifications
		uploads := v1.Group("/uploads")
		{
			uploads.POST("", h.uploads.Start)
			uploads.GET("", h.uploads.List)
			uploads.GET("/:uploadId", h.uploads.Status)
		}

		v1.GET("/notifications", h.uploads.Notifications)
	}

	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		names := make([]string, 0, len(checks))
		for name := range checks {
			names = append(names, name)
		}
		sort.Strings(names)

		status := http.StatusOK
		components := make(gin.H, len(checks))
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				logger.Warn("Health check failed", "component", name, "error", err)
				components[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			components[name] = "ok"
		}

		state := "ok"
		if status != http.StatusOK {
			state = "degraded"
		}
		c.JSON(status, gin.H{"status": state, "components": components, "timestamp": time.Now().UTC()})
	})
}
