package persistence

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/guudz-audit-ledger/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoDB holds the client and database used for the ledger snapshot collection
type MongoDB struct {
	logger   *slog.Logger
	client   *mongo.Client
	database *mongo.Database
	cfg      config.MongoDBConfig
}

// NewMongoDB connects with the configured pool limits and pings the primary.
func NewMongoDB(ctx context.Context, logger *slog.Logger, cfg *config.MongoDBConfig) (*MongoDB, error) {
	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetAppName("guudz-audit-ledger")

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	m := &MongoDB{
		logger:   logger,
		client:   client,
		database: client.Database(cfg.Database),
		cfg:      *cfg,
	}
	if err := m.Health(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	logger.Info("Connected to MongoDB", "database", cfg.Database)
	return m, nil
}

// Health pings the primary within the configured timeout.
func (m *MongoDB) Health(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, m.cfg.Timeout)
	defer cancel()
	if err := m.client.Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return nil
}

func (m *MongoDB) Database() *mongo.Database {
	return m.database
}

// Collection returns the named collection, or the configured ledger collection when name is empty.
func (m *MongoDB) Collection(name string) *mongo.Collection {
	if name == "" {
		name = m.cfg.Collection
	}
	return m.database.Collection(name)
}

func (m *MongoDB) Close(ctx context.Context) error {
	if err := m.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}
	m.logger.Info("Closed MongoDB connection")
	return nil
}
