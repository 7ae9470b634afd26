package api_gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guudz-audit-ledger/internal/api_gateway/handler"
	"github.com/guudz-audit-ledger/internal/api_gateway/service"
	"github.com/guudz-audit-ledger/internal/config"
	"github.com/guudz-audit-ledger/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// Services groups everything the HTTP layer calls into
type Services struct {
	Documents     service.DocumentService
	Batch         service.BatchRegistrar // optional
	Compliance    service.ComplianceService
	CrossChain    service.CrossChainService
	Uploads       service.UploadService
	Notifications service.NotificationFeed // optional
}

// Observability carries the metrics sink, the registry served on /metrics and
// the checks behind /health. Every field may be left empty.
type Observability struct {
	Metrics      *metrics.Metrics
	Gatherer     prometheus.Gatherer
	HealthChecks map[string]HealthCheck
}

// Server handles HTTP requests and manages the application's lifecycle
type Server struct {
	logger     *slog.Logger // For structured logging
	httpServer *http.Server // Underlying HTTP server
	httpRouter *gin.Engine  // Gin router instance
}

// NewServer creates and configures a new HTTP server over the given services
func NewServer(log *slog.Logger, cfg *config.Config, services Services, obs Observability) *Server {
	if cfg.Application.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	httpRouter := gin.New()

	h := handlers{
		documents:  handler.NewDocumentHandler(log, services.Documents, services.Batch),
		compliance: handler.NewComplianceHandler(log, services.Compliance),
		networks:   handler.NewNetworkHandler(log, services.CrossChain),
		uploads:    handler.NewUploadHandler(log, services.Uploads, services.Notifications),
	}

	setupRouter(log, httpRouter, h, obs.Metrics, obs.Gatherer, obs.HealthChecks)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      httpRouter,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &Server{
		logger:     log,
		httpServer: httpServer,
		httpRouter: httpRouter,
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.httpRouter
}

// Start begins listening for HTTP requests
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the HTTP server. ctx bounds the drain.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to stop HTTP server: %w", err)
	}
	return nil
}
