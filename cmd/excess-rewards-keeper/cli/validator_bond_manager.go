package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/pyefi/excess-rewards-keeper/internal/observability/tracing"
	"github.com/pyefi/excess-rewards-keeper/internal/services"
	"github.com/pyefi/excess-rewards-keeper/internal/types"
	"github.com/pyefi/excess-rewards-keeper/pkg"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// ValidatorBondManagerCmd settles every active bond of a vote account after each epoch boundary.
// Usage: ./excess-rewards-keeper validator-bond-manager --vote-pubkey <pubkey> --config config.yml [--dry-run]
func ValidatorBondManagerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validator-bond-manager",
		Short: "Continuously settle the excess rewards of all bonds of a validator",
		Args:  cobra.NoArgs,
		RunE:  validatorBondManager,
	}

	cmd.Flags().String("vote-pubkey", "", "Validator vote account public key")
	addSettlementFlags(cmd)
	_ = cmd.MarkFlagRequired("vote-pubkey")

	return cmd
}

func validatorBondManager(cmd *cobra.Command, _ []string) error {
	ctx, cfg, err := loadConfig(cmd.Context())
	if err != nil {
		return err
	}
	ctx = tracing.InjectTraceID(ctx)

	if err := applySettlementFlags(cmd, cfg); err != nil {
		return err
	}

	voteFlag, err := cmd.Flags().GetString("vote-pubkey")
	if err != nil {
		return err
	}
	if err := pkg.ValidateSolanaAddress(voteFlag); err != nil {
		return fmt.Errorf("invalid --vote-pubkey: %w", err)
	}
	voteAccount := types.MustPublicKeyFromBase58(voteFlag)

	// settlement is pre-authorized in continuous mode
	service, cleanup, err := newService(ctx, cfg, services.AutoConfirmer{})
	defer cleanup()
	if err != nil {
		return err
	}

	err = service.StartBondManager(ctx, voteAccount)
	if errors.Is(err, context.Canceled) {
		log.Ctx(ctx).Info().Msg("validator bond manager stopped")
		return nil
	}
	return err
}
