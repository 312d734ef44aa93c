package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/pyefi/excess-rewards-keeper/internal/types"
)

const (
	DefaultProgramID                = "PYEQZ2qYHPQapnw8Ms8MSPMNzoq59NHHfNwAtuV26wx"
	defaultConcurrency              = 50
	defaultBondConcurrency          = 1
	defaultConfirmationTimeout      = 90 * time.Second
	defaultConfirmationPollInterval = 2 * time.Second
	maxConcurrency                  = 1000
)

type SettlementConfig struct {
	ProgramID    string `mapstructure:"program-id"`
	PayerKeypair string `mapstructure:"payer-keypair"`
	// Concurrency bounds in-flight block requests while collecting block rewards.
	Concurrency int `mapstructure:"concurrency"`
	// BondConcurrency is the number of bonds reconciled in parallel within one epoch.
	BondConcurrency int `mapstructure:"bond-concurrency"`
	// NewRateActivationEpoch switches stake warmup/cooldown to the reduced rate from this epoch on.
	NewRateActivationEpoch   *uint64       `mapstructure:"new-rate-activation-epoch"`
	ConfirmationTimeout      time.Duration `mapstructure:"confirmation-timeout"`
	ConfirmationPollInterval time.Duration `mapstructure:"confirmation-poll-interval"`
	// DryRun computes and reports excess rewards without submitting any transaction.
	DryRun bool `mapstructure:"dry-run"`
}

func (cfg *SettlementConfig) Validate() error {
	if cfg.ProgramID == "" {
		cfg.ProgramID = DefaultProgramID
	}
	if _, err := types.PublicKeyFromBase58(cfg.ProgramID); err != nil {
		return fmt.Errorf("invalid program-id: %w", err)
	}

	if cfg.Concurrency < 0 || cfg.Concurrency > maxConcurrency {
		return fmt.Errorf("concurrency must be between 1 and %d", maxConcurrency)
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = defaultConcurrency
	}

	if cfg.BondConcurrency < 0 {
		return errors.New("bond-concurrency cannot be negative")
	}
	if cfg.BondConcurrency == 0 {
		cfg.BondConcurrency = defaultBondConcurrency
	}

	if cfg.ConfirmationTimeout < 0 || cfg.ConfirmationPollInterval < 0 {
		return errors.New("confirmation timeouts cannot be negative")
	}
	if cfg.ConfirmationTimeout == 0 {
		cfg.ConfirmationTimeout = defaultConfirmationTimeout
	}
	if cfg.ConfirmationPollInterval == 0 {
		cfg.ConfirmationPollInterval = defaultConfirmationPollInterval
	}

	return nil
}

// ProgramPublicKey must be called on a validated config.
func (cfg *SettlementConfig) ProgramPublicKey() types.PublicKey {
	return types.MustPublicKeyFromBase58(cfg.ProgramID)
}
