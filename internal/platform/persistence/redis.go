package persistence

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/guudz-audit-ledger/internal/config"
	"github.com/redis/go-redis/v9"
)

// Redis wraps the go-redis client used by the ledger persistence adapter
type Redis struct {
	*redis.Client
	logger *slog.Logger
}

// NewRedis parses the URL, applies pool overrides and pings the server.
func NewRedis(ctx context.Context, logger *slog.Logger, cfg *config.RedisConfig) (*Redis, error) {
	opts, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	r := &Redis{Client: client, logger: logger}
	if err := r.Health(ctx); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("Connected to Redis", "addr", opts.Addr, "db", opts.DB)
	return r, nil
}

func redisOptions(cfg *config.RedisConfig) (*redis.Options, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if cfg.Timeout > 0 {
		opts.DialTimeout = cfg.Timeout
		opts.ReadTimeout = cfg.Timeout
		opts.WriteTimeout = cfg.Timeout
	}
	return opts, nil
}

// Health pings the server.
func (r *Redis) Health(ctx context.Context) error {
	if err := r.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}

func (r *Redis) Close() error {
	if err := r.Client.Close(); err != nil {
		return fmt.Errorf("failed to close Redis client: %w", err)
	}
	r.logger.Info("Closed Redis connection")
	return nil
}
