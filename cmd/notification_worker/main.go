package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/guudz-audit-ledger/internal/config"
	"github.com/guudz-audit-ledger/internal/logger"
	"github.com/guudz-audit-ledger/internal/notification"
	"github.com/guudz-audit-ledger/internal/platform/messaging/consumers"
	"github.com/guudz-audit-ledger/internal/platform/messaging/producers"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("notification_worker")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	log.Info("Starting Notification Worker",
		"app_name", cfg.Application.Name,
		"env", cfg.Application.Env,
	)

	// Initialize Kafka consumer
	kafkaConsumer := consumers.NewKafkaConsumer(appCtx, log, &cfg.Kafka)

	// Initialize Kafka DLQ producer
	dlqProducer, err := producers.NewDLQProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize DLQ Kafka producer", "error", err)
		os.Exit(1)
	}
	// dlqProducer is nil when no DLQ topic is configured; its methods are nil-safe.

	// Initialize provenance event handler
	eventHandler := notification.NewEventHandler(
		logger.ForComponent(log, "notifications"),
		notification.NewLogNotifier(logger.ForComponent(log, "notifier")),
		dlqProducer,
	)

	log.Info("Starting Kafka consumer",
		"topic", cfg.Kafka.ProvenanceTopic,
		"group", cfg.Kafka.ConsumerGroup,
	)
	if err := kafkaConsumer.Subscribe(appCtx, eventHandler.HandleMessage); err != nil {
		log.Error("Failed to subscribe to provenance events", "error", err)
		os.Exit(1)
	}

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or the consumer stopping on its own
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case <-kafkaConsumer.Done():
		log.Warn("Kafka consumer stopped unexpectedly")
	}

	// Cancel the application context
	cancelAppCtx()

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	log.Info("Waiting for consumer to stop...")
	select {
	case <-kafkaConsumer.Done():
		log.Info("Consumer stopped successfully")
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout reached, forcing exit")
	}

	var shutdownErr error
	if err := dlqProducer.Close(); err != nil {
		log.Error("Error closing DLQ Kafka producer", "error", err)
		shutdownErr = err
	}

	if err := kafkaConsumer.Close(); err != nil {
		log.Error("Error closing Kafka consumer", "error", err)
		shutdownErr = err
	}

	if shutdownErr != nil {
		log.Error("Notification Worker shutdown completed with errors")
	} else {
		log.Info("Notification Worker shutdown completed successfully")
	}
}
