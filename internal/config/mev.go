package config

import (
	"fmt"
	"time"
)

const (
	defaultMevURL           = "https://kobe.mainnet.jito.network"
	defaultMevTimeout       = 15 * time.Second
	defaultMevMaxRetryTimes = 3
	defaultMevRetryInterval = 5 * time.Second
)

// MevConfig defines configuration for the MEV rewards API (Jito kobe)
type MevConfig struct {
	URL           string        `mapstructure:"url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
}

func DefaultMevConfig() *MevConfig {
	return &MevConfig{
		URL:           defaultMevURL,
		Timeout:       defaultMevTimeout,
		MaxRetryTimes: defaultMevMaxRetryTimes,
		RetryInterval: defaultMevRetryInterval,
	}
}

func (cfg *MevConfig) Validate() error {
	if cfg.URL == "" {
		cfg.URL = defaultMevURL
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

	return nil
}
