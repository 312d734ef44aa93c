package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Solana     SolanaConfig     `mapstructure:"solana"`
	Mev        MevConfig        `mapstructure:"mev"`
	Poller     PollerConfig     `mapstructure:"poller"`
	Settlement SettlementConfig `mapstructure:"settlement"`
	// Db is optional, without it settlements are not recorded and a restart may resubmit an epoch.
	Db       *DbConfig     `mapstructure:"db"`
	Queue    *QueueConfig  `mapstructure:"queue"`
	Metrics  MetricsConfig `mapstructure:"metrics"`
	LogLevel string        `mapstructure:"log-level"`
}

func (cfg *Config) Validate() error {
	if err := cfg.Solana.Validate(); err != nil {
		return fmt.Errorf("solana: %w", err)
	}
	if err := cfg.Mev.Validate(); err != nil {
		return fmt.Errorf("mev: %w", err)
	}
	if err := cfg.Poller.Validate(); err != nil {
		return fmt.Errorf("poller: %w", err)
	}
	if err := cfg.Settlement.Validate(); err != nil {
		return fmt.Errorf("settlement: %w", err)
	}
	if cfg.Db != nil {
		if err := cfg.Db.Validate(); err != nil {
			return fmt.Errorf("db: %w", err)
		}
	}
	if cfg.Queue != nil {
		if err := cfg.Queue.Validate(); err != nil {
			return fmt.Errorf("queue: %w", err)
		}
	}
	if err := cfg.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return nil
}

// New returns a fully parsed Config object from a given file path.
// Values can be overridden with environment variables, e.g. SOLANA_RPC_ADDR overrides solana.rpc-addr.
func New(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(cfgFile)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
