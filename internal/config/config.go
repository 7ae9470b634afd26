// Package config provides configuration structures and validation for the application.
// It handles environment-based configuration for the registry API, the notification
// worker, the simulation engine and every storage backend the ledger can be persisted to.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Ledger persistence backends.
const (
	BackendMemory   = "memory"
	BackendBadger   = "badger"
	BackendRedis    = "redis"
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
)

// Config holds the complete application configuration with settings for all components.
// Each field represents a major subsystem's configuration and is validated during
// application startup.
type Config struct {
	Application ApplicationConfig
	Logging     LoggingConfig
	Server      ServerConfig
	Simulation  SimulationConfig
	Ledger      LedgerConfig
	EventLog    EventLogConfig
	Kafka       KafkaConfig
	Postgres    PostgresConfig
	MongoDB     MongoDBConfig
	Redis       RedisConfig
	Badger      BadgerConfig
	Settlement  SettlementConfig
	Upload      UploadConfig
	WorkerPool  WorkerPoolConfig
}

// ApplicationConfig contains general application configuration
type ApplicationConfig struct {
	Env  string
	Name string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string
}

// ServerConfig contains HTTP server configuration settings
type ServerConfig struct {
	Port            int           // Port to listen on
	ShutdownTimeout time.Duration // Grace period for server shutdown
	ReadTimeout     time.Duration // Maximum duration for reading entire request
	WriteTimeout    time.Duration // Maximum duration for writing response
	IdleTimeout     time.Duration // Maximum duration to wait for next request
}

// SimulationConfig contains the artificial latency of every simulated operation
// and the probability of an injected transient failure.
type SimulationConfig struct {
	Latencies    map[string]time.Duration // Keyed by operation name
	LatencyScale float64                  // Multiplier applied to every latency, 1 keeps them as configured
	FailureRate  float64                  // 0 disables fault injection
	DemoHistory  bool                     // Serve the demonstrative provenance sequence for unknown documents
}

// LedgerConfig contains the transaction ledger configuration
type LedgerConfig struct {
	Backend    string
	StorageKey string
	SeedSize   int
}

// EventLogConfig selects the provenance event log store
type EventLogConfig struct {
	Backend string
}

// KafkaConfig contains Kafka configuration
type KafkaConfig struct {
	Enabled           bool
	Brokers           string
	ProvenanceTopic   string
	NumPartitions     int // Number of partitions for topics
	ReplicationFactor int // Replication factor for topics
	ConsumerGroup     string
	MinBytes          int
	MaxBytes          int
	MaxWait           time.Duration
	StartOffset       int64
	DLQTopic          string // Topic for Dead Letter Queue
}

// PostgresConfig contains PostgreSQL configuration
type PostgresConfig struct {
	URL             string        // Database connection string
	MaxConns        int32         // Maximum number of open connections
	MinConns        int32         // Maximum number of idle connections
	ConnMaxLifetime time.Duration // Maximum lifetime of a connection
	ConnMaxIdleTime time.Duration // Maximum idle time of a connection
	MigrationsPath  string        // Path to migration files
}

// MongoDBConfig contains MongoDB configuration
type MongoDBConfig struct {
	URI             string
	Database        string
	Collection      string
	Timeout         time.Duration
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	Timeout      time.Duration
}

// BadgerConfig contains the embedded key/value store configuration
type BadgerConfig struct {
	Path string
}

// SettlementConfig controls how often pending cross-chain transactions are settled
type SettlementConfig struct {
	PollingInterval time.Duration
	BatchSize       int
	MaxRetry        int // Settlement attempts before a pending transaction is marked failed
}

// UploadConfig controls the simulated document upload progress
type UploadConfig struct {
	StepInterval time.Duration
	FailureRate  float64
}

// WorkerPoolConfig contains worker pool configuration
type WorkerPoolConfig struct {
	Size int // Maximum number of workers in the pool
}

// validate performs comprehensive validation of all configuration values,
// ensuring they meet minimum requirements and logical constraints
func (c *Config) validate() error {
	var validationErrors []string

	// Validate Server config
	if c.Server.Port <= 0 {
		validationErrors = append(validationErrors, "SERVER_PORT must be greater than 0")
	}
	if c.Server.ShutdownTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_SHUTDOWN_TIMEOUT must be greater than 0")
	}
	if c.Server.ReadTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_READ_TIMEOUT must be greater than 0")
	}
	if c.Server.WriteTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_WRITE_TIMEOUT must be greater than 0")
	}
	if c.Server.IdleTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_IDLE_TIMEOUT must be greater than 0")
	}

	// Validate Simulation config
	for op, d := range c.Simulation.Latencies {
		if d < 0 {
			validationErrors = append(validationErrors, fmt.Sprintf("latency for %s must not be negative", op))
		}
	}
	if c.Simulation.LatencyScale < 0 {
		validationErrors = append(validationErrors, "SIMULATION_LATENCY_SCALE must not be negative")
	}
	if c.Simulation.FailureRate < 0 || c.Simulation.FailureRate > 1 {
		validationErrors = append(validationErrors, "SIMULATION_FAILURE_RATE must be between 0 and 1")
	}

	// Validate Ledger config
	switch c.Ledger.Backend {
	case BackendMemory, BackendBadger, BackendRedis, BackendMongo:
	default:
		validationErrors = append(validationErrors, "LEDGER_BACKEND must be one of memory, badger, redis, mongo")
	}
	if c.Ledger.StorageKey == "" {
		validationErrors = append(validationErrors, "LEDGER_STORAGE_KEY is required")
	}
	if c.Ledger.SeedSize <= 0 {
		validationErrors = append(validationErrors, "LEDGER_SEED_SIZE must be greater than 0")
	}

	// Validate EventLog config
	switch c.EventLog.Backend {
	case BackendMemory:
	case BackendPostgres:
		validationErrors = append(validationErrors, c.Postgres.validate()...)
	default:
		validationErrors = append(validationErrors, "EVENT_LOG_BACKEND must be one of memory, postgres")
	}

	// Validate Kafka config
	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			validationErrors = append(validationErrors, "KAFKA_BROKERS is required")
		}
		if c.Kafka.ProvenanceTopic == "" {
			validationErrors = append(validationErrors, "KAFKA_PROVENANCE_TOPIC is required")
		}
		if c.Kafka.ConsumerGroup == "" {
			validationErrors = append(validationErrors, "KAFKA_CONSUMER_GROUP is required")
		}
		if c.Kafka.MinBytes <= 0 {
			validationErrors = append(validationErrors, "KAFKA_CONSUMER_MIN_BYTES must be greater than 0")
		}
		if c.Kafka.MaxBytes <= 0 {
			validationErrors = append(validationErrors, "KAFKA_CONSUMER_MAX_BYTES must be greater than 0")
		}
		if c.Kafka.MaxWait <= 0 {
			validationErrors = append(validationErrors, "KAFKA_CONSUMER_MAX_WAIT must be greater than 0")
		}
		if c.Kafka.DLQTopic == "" {
			validationErrors = append(validationErrors, "KAFKA_DLQ_TOPIC is required")
		}
	}

	// Validate backend specific config
	switch c.Ledger.Backend {
	case BackendMongo:
		if c.MongoDB.URI == "" {
			validationErrors = append(validationErrors, "MONGO_URI is required")
		}
		if c.MongoDB.Database == "" {
			validationErrors = append(validationErrors, "MONGO_DATABASE is required")
		}
		if c.MongoDB.Collection == "" {
			validationErrors = append(validationErrors, "MONGO_COLLECTION is required")
		}
		if c.MongoDB.Timeout <= 0 {
			validationErrors = append(validationErrors, "MONGO_TIMEOUT must be greater than 0")
		}
		if c.MongoDB.MaxPoolSize <= 0 {
			validationErrors = append(validationErrors, "MONGO_MAX_POOL_SIZE must be greater than 0")
		}
		if c.MongoDB.MinPoolSize <= 0 {
			validationErrors = append(validationErrors, "MONGO_MIN_POOL_SIZE must be greater than 0")
		}
		if c.MongoDB.MaxConnIdleTime <= 0 {
			validationErrors = append(validationErrors, "MONGO_MAX_CONN_IDLE_TIME must be greater than 0")
		}
	case BackendRedis:
		if c.Redis.URL == "" {
			validationErrors = append(validationErrors, "REDIS_URL is required")
		}
		if c.Redis.Timeout <= 0 {
			validationErrors = append(validationErrors, "REDIS_TIMEOUT must be greater than 0")
		}
	case BackendBadger:
		if c.Badger.Path == "" {
			validationErrors = append(validationErrors, "BADGER_PATH is required")
		}
	}

	// Validate Settlement config
	if c.Settlement.PollingInterval <= 0 {
		validationErrors = append(validationErrors, "SETTLEMENT_POLLING_INTERVAL must be greater than 0")
	}
	if c.Settlement.BatchSize <= 0 {
		validationErrors = append(validationErrors, "SETTLEMENT_BATCH_SIZE must be greater than 0")
	}
	if c.Settlement.MaxRetry <= 0 {
		validationErrors = append(validationErrors, "SETTLEMENT_MAX_RETRY must be greater than 0")
	}

	// Validate Upload config
	if c.Upload.StepInterval <= 0 {
		validationErrors = append(validationErrors, "UPLOAD_STEP_INTERVAL must be greater than 0")
	}
	if c.Upload.FailureRate < 0 || c.Upload.FailureRate > 1 {
		validationErrors = append(validationErrors, "UPLOAD_FAILURE_RATE must be between 0 and 1")
	}

	// Validate WorkerPool config
	if c.WorkerPool.Size <= 0 {
		validationErrors = append(validationErrors, "WORKER_POOL_SIZE must be greater than 0")
	}

	if len(validationErrors) > 0 {
		return errors.New(strings.Join(validationErrors, ", "))
	}

	return nil
}

func (p PostgresConfig) validate() []string {
	var validationErrors []string
	if p.URL == "" {
		validationErrors = append(validationErrors, "POSTGRES_URL is required")
	}
	if p.MaxConns <= 0 {
		validationErrors = append(validationErrors, "POSTGRES_MAX_CONNS must be greater than 0")
	}
	if p.MinConns <= 0 {
		validationErrors = append(validationErrors, "POSTGRES_MIN_CONNS must be greater than 0")
	}
	if p.ConnMaxLifetime <= 0 {
		validationErrors = append(validationErrors, "POSTGRES_MAX_CONN_LIFETIME must be greater than 0")
	}
	if p.ConnMaxIdleTime <= 0 {
		validationErrors = append(validationErrors, "POSTGRES_MAX_CONN_IDLE_TIME must be greater than 0")
	}
	return validationErrors
}
