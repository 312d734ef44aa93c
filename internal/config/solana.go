package config

import (
	"fmt"
	"net/url"
	"time"
)

const (
	defaultSolanaRPCAddr       = "https://api.mainnet-beta.solana.com"
	defaultSolanaTimeout       = 30 * time.Second
	defaultSolanaMaxRetryTimes = 5
	defaultSolanaRetryInterval = 500 * time.Millisecond
	defaultCommitment          = "confirmed"
)

// SolanaConfig defines configuration for the Solana JSON-RPC client
type SolanaConfig struct {
	RPCAddr       string        `mapstructure:"rpc-addr"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
	Commitment    string        `mapstructure:"commitment"`
}

func DefaultSolanaConfig() *SolanaConfig {
	return &SolanaConfig{
		RPCAddr:       defaultSolanaRPCAddr,
		Timeout:       defaultSolanaTimeout,
		MaxRetryTimes: defaultSolanaMaxRetryTimes,
		RetryInterval: defaultSolanaRetryInterval,
		Commitment:    defaultCommitment,
	}
}

func (cfg *SolanaConfig) Validate() error {
	if cfg.RPCAddr == "" {
		return fmt.Errorf("rpc-addr cannot be empty")
	}
	if _, err := url.ParseRequestURI(cfg.RPCAddr); err != nil {
		return fmt.Errorf("invalid rpc-addr: %w", err)
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("timeout should be positive")
	}
	if cfg.MaxRetryTimes <= 0 {
		return fmt.Errorf("max-retry-times should be positive")
	}
	if cfg.RetryInterval <= 0 {
		return fmt.Errorf("retry-interval should be positive")
	}

	switch cfg.Commitment {
	case "":
		cfg.Commitment = defaultCommitment
	case "processed", "confirmed", "finalized":
	default:
		return fmt.Errorf("unsupported commitment %q", cfg.Commitment)
	}

	return nil
}
