package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Solana: SolanaConfig{
			RPCAddr:       "http://localhost:8899",
			Timeout:       20 * time.Second,
			MaxRetryTimes: 3,
			RetryInterval: 1 * time.Second,
			Commitment:    "confirmed",
		},
		Mev: MevConfig{
			URL:           "http://localhost:8080",
			Timeout:       15 * time.Second,
			MaxRetryTimes: 3,
			RetryInterval: 1 * time.Second,
		},
		Poller: PollerConfig{
			EpochPollingInterval: 10 * time.Second,
			EpochSettlingDelay:   durationPtr(30 * time.Second),
		},
		Settlement: SettlementConfig{
			PayerKeypair: "/tmp/payer.json",
			Concurrency:  10,
		},
		Db: &DbConfig{
			Username: "test",
			Password: "test",
			Address:  "mongodb://localhost:27017",
			DbName:   "test",
		},
		Metrics: MetricsConfig{
			Host: "0.0.0.0",
			Port: 2112,
		},
	}
}

func TestConfig_OptionalSections(t *testing.T) {
	cfg := validConfig()

	err := cfg.Validate()
	require.NoError(t, err)
	assert.NotNil(t, cfg.Db)
	assert.Equal(t, "info", cfg.LogLevel)

	cfg.Db = nil
	cfg.Queue = nil
	err = cfg.Validate()
	require.NoError(t, err)
	assert.Nil(t, cfg.Db)
	assert.Nil(t, cfg.Queue)
}

func TestConfig_Defaults(t *testing.T) {
	cfg := validConfig()
	cfg.Settlement.Concurrency = 0
	cfg.Settlement.ProgramID = ""
	cfg.Solana.Commitment = ""

	require.NoError(t, cfg.Validate())
	assert.Equal(t, defaultConcurrency, cfg.Settlement.Concurrency)
	assert.Equal(t, defaultBondConcurrency, cfg.Settlement.BondConcurrency)
	assert.Equal(t, DefaultProgramID, cfg.Settlement.ProgramID)
	assert.Equal(t, defaultCommitment, cfg.Solana.Commitment)
	assert.Equal(t, defaultConfirmationTimeout, cfg.Settlement.ConfirmationTimeout)
	assert.Equal(t, DefaultProgramID, cfg.Settlement.ProgramPublicKey().String())
}

func TestConfig_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(cfg *Config)
		contains string
	}{
		{
			name:     "empty rpc address",
			modify:   func(cfg *Config) { cfg.Solana.RPCAddr = "" },
			contains: "rpc-addr cannot be empty",
		},
		{
			name:     "unknown commitment",
			modify:   func(cfg *Config) { cfg.Solana.Commitment = "recent" },
			contains: "unsupported commitment",
		},
		{
			name:     "invalid program id",
			modify:   func(cfg *Config) { cfg.Settlement.ProgramID = "not-a-key" },
			contains: "invalid program-id",
		},
		{
			name:     "concurrency too high",
			modify:   func(cfg *Config) { cfg.Settlement.Concurrency = 5000 },
			contains: "concurrency must be between",
		},
		{
			name:     "db without password",
			modify:   func(cfg *Config) { cfg.Db.Password = "" },
			contains: "missing db password",
		},
		{
			name:     "db with wrong scheme",
			modify:   func(cfg *Config) { cfg.Db.Address = "postgres://localhost:5432" },
			contains: "unsupported db address scheme",
		},
		{
			name:     "queue without url",
			modify:   func(cfg *Config) { cfg.Queue = &QueueConfig{User: "u", Password: "p"} },
			contains: "missing queue url",
		},
		{
			name:     "metrics port out of range",
			modify:   func(cfg *Config) { cfg.Metrics.Port = 70000 },
			contains: "metrics server port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestNew(t *testing.T) {
	const content = `
solana:
  rpc-addr: http://localhost:8899
  timeout: 20s
  max-retry-times: 3
  retry-interval: 1s
mev:
  url: http://localhost:8080
  timeout: 10s
  max-retry-times: 2
  retry-interval: 1s
poller:
  epoch-polling-interval: 15s
settlement:
  payer-keypair: /tmp/payer.json
  concurrency: 20
  new-rate-activation-epoch: 750
metrics:
  host: 0.0.0.0
  port: 2112
log-level: debug
`
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := New(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8899", cfg.Solana.RPCAddr)
	assert.Equal(t, 20*time.Second, cfg.Solana.Timeout)
	assert.Equal(t, "confirmed", cfg.Solana.Commitment)
	assert.Equal(t, 15*time.Second, cfg.Poller.EpochPollingInterval)
	assert.Equal(t, defaultEpochSettlingDelay, cfg.Poller.SettlingDelay())
	assert.Equal(t, 20, cfg.Settlement.Concurrency)
	require.NotNil(t, cfg.Settlement.NewRateActivationEpoch)
	assert.Equal(t, uint64(750), *cfg.Settlement.NewRateActivationEpoch)
	assert.Nil(t, cfg.Db)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestNew_ZeroSettlingDelay(t *testing.T) {
	const content = `
solana:
  rpc-addr: http://localhost:8899
  timeout: 20s
  max-retry-times: 3
  retry-interval: 1s
mev:
  url: http://localhost:8080
  timeout: 10s
  max-retry-times: 2
  retry-interval: 1s
poller:
  epoch-settling-delay: 0s
settlement:
  payer-keypair: /tmp/payer.json
metrics:
  host: 0.0.0.0
  port: 2112
`
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := New(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Poller.EpochSettlingDelay)
	assert.Equal(t, time.Duration(0), cfg.Poller.SettlingDelay())
}
