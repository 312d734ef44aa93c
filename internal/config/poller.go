package config

import (
	"errors"
	"time"
)

const (
	defaultEpochPollingInterval = 30 * time.Second
	defaultEpochSettlingDelay   = 60 * time.Second
)

type PollerConfig struct {
	EpochPollingInterval time.Duration `mapstructure:"epoch-polling-interval"`
	// EpochSettlingDelay is waited after an epoch boundary before per-epoch data is queried.
	// Unset means the default, an explicit 0 disables the wait.
	EpochSettlingDelay *time.Duration `mapstructure:"epoch-settling-delay"`
}

func (cfg *PollerConfig) Validate() error {
	if cfg.EpochPollingInterval < 0 {
		return errors.New("epoch-polling-interval must be positive")
	}
	if cfg.EpochPollingInterval == 0 {
		cfg.EpochPollingInterval = defaultEpochPollingInterval
	}

	if cfg.EpochSettlingDelay == nil {
		delay := defaultEpochSettlingDelay
		cfg.EpochSettlingDelay = &delay
	}
	if *cfg.EpochSettlingDelay < 0 {
		return errors.New("epoch-settling-delay cannot be negative")
	}

	return nil
}

// SettlingDelay returns the configured settling delay, the default when Validate has not run.
func (cfg *PollerConfig) SettlingDelay() time.Duration {
	if cfg.EpochSettlingDelay == nil {
		return defaultEpochSettlingDelay
	}
	return *cfg.EpochSettlingDelay
}
