package cli

import (
	"fmt"

	"github.com/pyefi/excess-rewards-keeper/internal/observability/tracing"
	"github.com/pyefi/excess-rewards-keeper/internal/services"
	"github.com/pyefi/excess-rewards-keeper/internal/types"
	"github.com/pyefi/excess-rewards-keeper/pkg"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// TransferExcessRewardsCmd settles one bond for the last completed epoch.
// Usage: ./excess-rewards-keeper transfer-excess-rewards --bond <pubkey> --config config.yml [--dry-run] [--yes]
func TransferExcessRewardsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer-excess-rewards",
		Short: "Transfer the excess rewards of the last completed epoch into a bond",
		Args:  cobra.NoArgs,
		RunE:  transferExcessRewards,
	}

	cmd.Flags().String("bond", "", "Bond account public key")
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	addSettlementFlags(cmd)
	_ = cmd.MarkFlagRequired("bond")

	return cmd
}

func transferExcessRewards(cmd *cobra.Command, _ []string) error {
	ctx, cfg, err := loadConfig(cmd.Context())
	if err != nil {
		return err
	}
	ctx = tracing.InjectTraceID(ctx)

	if err := applySettlementFlags(cmd, cfg); err != nil {
		return err
	}

	bondFlag, err := cmd.Flags().GetString("bond")
	if err != nil {
		return err
	}
	if err := pkg.ValidateSolanaAddress(bondFlag); err != nil {
		return fmt.Errorf("invalid --bond: %w", err)
	}
	bondKey := types.MustPublicKeyFromBase58(bondFlag)

	yes, err := cmd.Flags().GetBool("yes")
	if err != nil {
		return err
	}
	var confirmer services.Confirmer = services.NewPromptConfirmer()
	if yes {
		confirmer = services.AutoConfirmer{}
	}

	service, cleanup, err := newService(ctx, cfg, confirmer)
	defer cleanup()
	if err != nil {
		return err
	}

	result, err := service.TransferExcessRewards(ctx, bondKey)
	if err != nil {
		return fmt.Errorf("failed to transfer excess rewards of bond %s: %w", bondKey, err)
	}

	event := log.Ctx(ctx).Info().
		Stringer("bond", bondKey).
		Uint64("epoch", result.Report.Epoch).
		Stringer("outcome", result.Outcome).
		Int64("total", result.Report.Total).
		Str("total_sol", types.LamportsToSol(result.Report.Total))
	if result.Signature != "" {
		event = event.Str("signature", result.Signature)
	}
	event.Msg("transfer excess rewards finished")

	return nil
}
