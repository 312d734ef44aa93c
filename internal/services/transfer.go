package services

import (
	"context"
	"fmt"

	"github.com/pyefi/excess-rewards-keeper/internal/observability/metrics"
	"github.com/pyefi/excess-rewards-keeper/internal/types"
	"github.com/rs/zerolog/log"
)

// TransferExcessRewards settles one bond for the last completed epoch.
func (s *Service) TransferExcessRewards(ctx context.Context, bondKey types.PublicKey) (*types.SettlementResult, error) {
	bond, err := s.solana.GetBond(ctx, bondKey)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bond %s: %w", bondKey, err)
	}
	log.Ctx(ctx).Info().
		Stringer("bond", bondKey).
		Stringer("vote_account", bond.VoteAccount).
		Uint16("inflation_bps", bond.Commissions.InflationBps).
		Uint16("mev_tips_bps", bond.Commissions.MevTipsBps).
		Uint16("block_rewards_bps", bond.Commissions.BlockRewardsBps).
		Msg("loaded bond")

	epochCtx, err := s.currentEpochContext(ctx)
	if err != nil {
		return nil, err
	}

	snapshots, err := s.FetchValidatorSnapshots(ctx, bond.VoteAccount, epochCtx.TargetEpoch)
	if err != nil {
		return nil, err
	}
	return s.SettleBond(ctx, bond, epochCtx, snapshots)
}

func (s *Service) currentEpochContext(ctx context.Context) (*types.EpochContext, error) {
	info, err := s.solana.GetEpochInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch epoch info: %w", err)
	}
	return s.epochContext(ctx, info)
}

func (s *Service) epochContext(ctx context.Context, info *types.EpochInfo) (*types.EpochContext, error) {
	if info.Epoch == 0 {
		return nil, fmt.Errorf("%w: no completed epoch yet", types.ErrDataUnavailable)
	}
	schedule, err := s.solana.GetEpochSchedule(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch epoch schedule: %w", err)
	}
	metrics.RecordCurrentEpoch(info.Epoch)

	epochCtx := types.NewEpochContext(*info, *schedule)
	log.Ctx(ctx).Info().
		Uint64("current_epoch", info.Epoch).
		Uint64("target_epoch", epochCtx.TargetEpoch).
		Msg("epoch context resolved")
	return epochCtx, nil
}
