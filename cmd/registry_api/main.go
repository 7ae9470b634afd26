package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/guudz-audit-ledger/internal/api_gateway"
	"github.com/guudz-audit-ledger/internal/config"
	"github.com/guudz-audit-ledger/internal/crosschain"
	badgerstore "github.com/guudz-audit-ledger/internal/data/badger"
	"github.com/guudz-audit-ledger/internal/data/memory"
	mongostore "github.com/guudz-audit-ledger/internal/data/mongo"
	"github.com/guudz-audit-ledger/internal/data/postgres"
	redisstore "github.com/guudz-audit-ledger/internal/data/redis"
	"github.com/guudz-audit-ledger/internal/domain/ledger"
	"github.com/guudz-audit-ledger/internal/logger"
	"github.com/guudz-audit-ledger/internal/metrics"
	"github.com/guudz-audit-ledger/internal/notification"
	"github.com/guudz-audit-ledger/internal/platform/identifier"
	"github.com/guudz-audit-ledger/internal/platform/messaging/producers"
	"github.com/guudz-audit-ledger/internal/platform/persistence"
	"github.com/guudz-audit-ledger/internal/platform/simulation"
	"github.com/guudz-audit-ledger/internal/registry"
	"github.com/guudz-audit-ledger/internal/scoring"
	"github.com/guudz-audit-ledger/internal/settlement"
	"github.com/guudz-audit-ledger/internal/txledger"
	"github.com/guudz-audit-ledger/internal/upload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const recentNotificationLimit = 50

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("registry_api")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	log.Info("Starting Registry API",
		"app_name", cfg.Application.Name,
		"env", cfg.Application.Env,
		"ledger_backend", cfg.Ledger.Backend,
		"event_log_backend", cfg.EventLog.Backend,
	)

	// Metrics registry served on /metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// closers run in reverse order during shutdown
	var closers []func(ctx context.Context) error
	healthChecks := make(map[string]api_gateway.HealthCheck)

	// Registered documents and their provenance event log
	var events registry.Log
	switch cfg.EventLog.Backend {
	case config.BackendPostgres:
		postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
		if err != nil {
			log.Error("Failed to initialize PostgreSQL", "error", err)
			os.Exit(1)
		}
		closers = append(closers, func(context.Context) error { postgresDB.Close(); return nil })
		healthChecks["postgres"] = postgresDB.Health
		events = postgres.NewEventLogRepository(logger.ForComponent(log, "event_log"), postgresDB)
	default:
		events = memory.NewEventLog()
	}

	// Ledger persistence adapter
	var store ledger.Store
	switch cfg.Ledger.Backend {
	case config.BackendBadger:
		db, err := persistence.NewBadger(log, &cfg.Badger)
		if err != nil {
			log.Error("Failed to open badger", "error", err)
			os.Exit(1)
		}
		closers = append(closers, func(context.Context) error { return db.Close() })
		store = badgerstore.NewLedgerStore(logger.ForComponent(log, "ledger_store"), db.DB())
	case config.BackendRedis:
		client, err := persistence.NewRedis(appCtx, log, &cfg.Redis)
		if err != nil {
			log.Error("Failed to initialize Redis", "error", err)
			os.Exit(1)
		}
		closers = append(closers, func(context.Context) error { return client.Close() })
		healthChecks["redis"] = client.Health
		store = redisstore.NewLedgerStore(logger.ForComponent(log, "ledger_store"), client)
	case config.BackendMongo:
		mongoDB, err := persistence.NewMongoDB(appCtx, log, &cfg.MongoDB)
		if err != nil {
			log.Error("Failed to initialize MongoDB", "error", err)
			os.Exit(1)
		}
		closers = append(closers, mongoDB.Close)
		healthChecks["mongodb"] = mongoDB.Health
		store = mongostore.NewLedgerStore(logger.ForComponent(log, "ledger_store"), mongoDB.Collection(cfg.MongoDB.Collection))
	default:
		store = memory.NewLedgerStore()
	}

	// Provenance publishing: local notifications, forwarded to Kafka when enabled
	recent := notification.NewRecentNotifier(recentNotificationLimit)
	var kafkaPublisher producers.EventPublisher
	if cfg.Kafka.Enabled {
		p, err := producers.NewProvenanceProducer(appCtx, log, &cfg.Kafka)
		if err != nil {
			log.Error("Failed to initialize provenance Kafka producer", "error", err)
			os.Exit(1)
		}
		kafkaPublisher = p
	}
	notifier := notification.Fanout{recent, notification.NewLogNotifier(logger.ForComponent(log, "notifier"))}
	publisher := notification.NewLocalPublisher(log, notifier, kafkaPublisher)
	closers = append(closers, func(context.Context) error { return publisher.Close() })

	// Simulation engines
	engine := simulation.NewEngine(
		simulation.ScaledLatency{Base: simulation.LatencyFromConfig(cfg.Simulation.Latencies), Factor: cfg.Simulation.LatencyScale},
		simulation.RandomFaults{Rate: cfg.Simulation.FailureRate},
		nil,
		m,
	)
	uploadEngine := simulation.NewEngine(
		simulation.FixedLatency{simulation.OpUploadStep: cfg.Upload.StepInterval},
		simulation.RandomFaults{Rate: cfg.Upload.FailureRate, Ops: map[simulation.Operation]bool{simulation.OpUploadStep: true}},
		nil,
		m,
	)

	// Initialize services
	ids := identifier.NewGenerator()
	registryService := registry.NewService(logger.ForComponent(log, "registry"), events, ids, engine,
		registry.WithPublisher(publisher),
		registry.WithDemoHistory(cfg.Simulation.DemoHistory),
	)
	batchRegistrar, err := registry.NewWorkerPoolRegistrar(registryService, cfg.WorkerPool, logger.ForComponent(log, "registry_pool"))
	if err != nil {
		log.Error("Failed to create registration worker pool", "error", err)
		os.Exit(1)
	}
	scoringService := scoring.NewService(logger.ForComponent(log, "scoring"), engine)
	txLedger := txledger.New(logger.ForComponent(log, "ledger"), store, ids, engine.Clock(), m, cfg.Ledger)
	simulator := crosschain.NewSimulator(logger.ForComponent(log, "crosschain"), txLedger, registryService, ids, engine)
	tracker := upload.NewTracker(logger.ForComponent(log, "upload"), uploadEngine, m)
	poller := settlement.NewPoller(&cfg.Settlement, txLedger, engine, logger.ForComponent(log, "settlement"))

	// Initialize REST server
	server := api_gateway.NewServer(log, cfg, api_gateway.Services{
		Documents:     registryService,
		Batch:         batchRegistrar,
		Compliance:    scoringService,
		CrossChain:    simulator,
		Uploads:       tracker,
		Notifications: recent,
	}, api_gateway.Observability{
		Metrics:      m,
		Gatherer:     reg,
		HealthChecks: healthChecks,
	})
	log.Info("REST server initialized")

	// Create error channel for server errors
	errChan := make(chan error, 1)

	var wg sync.WaitGroup

	// Start server in goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Start settlement poller in a goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()
		poller.Start(appCtx)
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	// Cancel the application context
	cancelAppCtx()

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	var shutdownErr error
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
		shutdownErr = err
	}

	log.Info("Shutting down registration worker pool", "running_workers", batchRegistrar.Running())
	batchRegistrar.Shutdown()
	tracker.Close()
	wg.Wait()

	shutdownErr = closeAll(shutdownCtx, log, closers, shutdownErr)

	// Final status
	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	}
	if shutdownErr != nil {
		log.Error("Server shutdown completed with errors")
	} else {
		log.Info("Server shutdown completed successfully")
	}
}

func closeAll(ctx context.Context, log *slog.Logger, closers []func(ctx context.Context) error, firstErr error) error {
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](ctx); err != nil {
			log.Error("Error releasing resource", "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
