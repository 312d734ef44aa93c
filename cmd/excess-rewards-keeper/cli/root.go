package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/pyefi/excess-rewards-keeper/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	defaultConfigFileName = "config.yml"
)

var (
	cfgPath    string
	consoleLog bool
	rootCmd    = &cobra.Command{
		Use:           "excess-rewards-keeper",
		Short:         "Reconciles and settles excess rewards owed to solo validator bonds",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func Setup(ctx context.Context) error {
	homePath, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	defaultConfigPath := getDefaultConfigFile(homePath, defaultConfigFileName)

	rootCmd.AddCommand(TransferExcessRewardsCmd())
	rootCmd.AddCommand(ValidatorBondManagerCmd())
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath, fmt.Sprintf("config file (default %s)", defaultConfigPath))
	rootCmd.PersistentFlags().BoolVar(&consoleLog, "console", false, "Human readable log output instead of JSON")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func getDefaultConfigFile(homePath, filename string) string {
	return filepath.Join(homePath, filename)
}

func GetConfigPath() string {
	return cfgPath
}

// loadConfig reads the config file and returns a context carrying a logger at the configured level.
func loadConfig(ctx context.Context) (context.Context, *config.Config, error) {
	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		return ctx, nil, fmt.Errorf("error while loading config file %s: %w", cfgPath, err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return ctx, nil, fmt.Errorf("invalid log-level %q: %w", cfg.LogLevel, err)
	}
	zerolog.SetGlobalLevel(level)
	if consoleLog {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	return log.Logger.WithContext(ctx), cfg, nil
}

// applySettlementFlags overrides the settlement section with the flags shared by every command.
func applySettlementFlags(cmd *cobra.Command, cfg *config.Config) error {
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	if dryRun {
		cfg.Settlement.DryRun = true
	}

	if cmd.Flags().Changed("concurrency") {
		concurrency, err := cmd.Flags().GetInt("concurrency")
		if err != nil {
			return err
		}
		if concurrency <= 0 {
			return fmt.Errorf("concurrency must be positive, got %d", concurrency)
		}
		cfg.Settlement.Concurrency = concurrency
	}

	return cfg.Settlement.Validate()
}

func addSettlementFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("dry-run", false, "Compute and report excess rewards without sending any transaction")
	cmd.Flags().Int("concurrency", 0, "Maximum in-flight block requests while collecting block rewards")
}
