package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirWithEnvFile(t *testing.T, name, content string) {
	t.Helper()
	tempDir := t.TempDir()

	configsDir := filepath.Join(tempDir, "configs")
	require.NoError(t, os.Mkdir(configsDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configsDir, name+".env"), []byte(content), 0644))

	originalWD, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = os.Chdir(originalWD)
	})
	require.NoError(t, os.Chdir(tempDir))
}

func TestLoadConfig_HappyPath(t *testing.T) {
	testAppName := "TestApp"
	testPort := 9090
	testLogLevel := "debug"

	envContent := fmt.Sprintf(
		"APP_NAME=%s\nSERVER_PORT=%d\nLOG_LEVEL=%s\nLEDGER_BACKEND=memory\nSIMULATION_LATENCY_REGISTER_DOCUMENT=250ms\n",
		testAppName, testPort, testLogLevel,
	)
	chdirWithEnvFile(t, "test_happy", envContent)

	cfg, err := LoadConfig("test_happy")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, testAppName, cfg.Application.Name)
	assert.Equal(t, testPort, cfg.Server.Port)
	assert.Equal(t, testLogLevel, cfg.Logging.Level)
	assert.Equal(t, BackendMemory, cfg.Ledger.Backend)
	assert.Equal(t, 250*time.Millisecond, cfg.Simulation.Latencies["register_document"])

	assert.Equal(t, "development", cfg.Application.Env)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "provenance_events", cfg.Kafka.ProvenanceTopic)
	assert.Equal(t, "guudz_transactions", cfg.Ledger.StorageKey)
	assert.Equal(t, 10, cfg.Ledger.SeedSize)
	assert.Equal(t, BackendMemory, cfg.EventLog.Backend)
	assert.Equal(t, 3*time.Second, cfg.Simulation.Latencies["transfer_asset"])
	assert.Equal(t, time.Duration(0), cfg.Simulation.Latencies["fee_estimate"])
	assert.Equal(t, 1.0, cfg.Simulation.LatencyScale)
	assert.Equal(t, 10, cfg.WorkerPool.Size)

	cfgWithName, err := LoadConfigWithName("configs/test_happy")
	require.NoError(t, err)
	assert.Equal(t, testAppName, cfgWithName.Application.Name)

	cfgWithNameAndType, err := LoadConfigWithNameAndType("configs/test_happy", "env")
	require.NoError(t, err)
	assert.Equal(t, testAppName, cfgWithNameAndType.Application.Name)
}

func TestLoadConfig_Invalid(t *testing.T) {
	chdirWithEnvFile(t, "test_invalid", "LEDGER_BACKEND=sqlite\nSIMULATION_FAILURE_RATE=1.5\n")

	cfg, err := LoadConfig("test_invalid")
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "LEDGER_BACKEND must be one of")
	assert.Contains(t, err.Error(), "SIMULATION_FAILURE_RATE must be between 0 and 1")
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{
				Port:            8080,
				ShutdownTimeout: time.Second,
				ReadTimeout:     time.Second,
				WriteTimeout:    time.Second,
				IdleTimeout:     time.Second,
			},
			Simulation: SimulationConfig{Latencies: map[string]time.Duration{"register_document": time.Second}},
			Ledger:     LedgerConfig{Backend: BackendMemory, StorageKey: "k", SeedSize: 10},
			EventLog:   EventLogConfig{Backend: BackendMemory},
			Settlement: SettlementConfig{PollingInterval: time.Second, BatchSize: 1, MaxRetry: 1},
			Upload:     UploadConfig{StepInterval: time.Millisecond},
			WorkerPool: WorkerPoolConfig{Size: 1},
		}
	}

	testCases := []struct {
		name        string
		mutate      func(c *Config)
		expectedErr string
	}{
		{"Valid", func(c *Config) {}, ""},
		{"NegativeLatency", func(c *Config) { c.Simulation.Latencies["register_document"] = -time.Second }, "latency for register_document must not be negative"},
		{"NegativeLatencyScale", func(c *Config) { c.Simulation.LatencyScale = -1 }, "SIMULATION_LATENCY_SCALE must not be negative"},
		{"MissingStorageKey", func(c *Config) { c.Ledger.StorageKey = "" }, "LEDGER_STORAGE_KEY is required"},
		{"PostgresEventLogNeedsURL", func(c *Config) { c.EventLog.Backend = BackendPostgres }, "POSTGRES_URL is required"},
		{"RedisNeedsURL", func(c *Config) { c.Ledger.Backend = BackendRedis }, "REDIS_URL is required"},
		{"BadgerNeedsPath", func(c *Config) { c.Ledger.Backend = BackendBadger }, "BADGER_PATH is required"},
		{"MongoNeedsURI", func(c *Config) { c.Ledger.Backend = BackendMongo }, "MONGO_URI is required"},
		{"KafkaEnabledNeedsTopic", func(c *Config) { c.Kafka.Enabled = true }, "KAFKA_PROVENANCE_TOPIC is required"},
		{"KafkaDisabledIgnored", func(c *Config) { c.Kafka.Enabled = false }, ""},
		{"ZeroWorkers", func(c *Config) { c.WorkerPool.Size = 0 }, "WORKER_POOL_SIZE must be greater than 0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			err := cfg.validate()
			if tc.expectedErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.expectedErr)
		})
	}
}
