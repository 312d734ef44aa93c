package services

import (
	"context"

	"github.com/pyefi/excess-rewards-keeper/internal/types"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func logReport(log zerolog.Logger, report *types.ExcessRewardReport) {
	log.Info().
		Stringer("vote_account", report.VoteAccount).
		Uint16("inflation_bps", report.Commissions.InflationBps).
		Uint16("mev_tips_bps", report.Commissions.MevTipsBps).
		Uint16("block_rewards_bps", report.Commissions.BlockRewardsBps).
		Uint64("bond_active_stake", report.BondActiveStake).
		Int64("excess_inflation_rewards", report.Inflation).
		Int64("excess_mev_rewards", report.Mev).
		Int64("excess_block_rewards", report.Block).
		Int64("total_excess_rewards", report.Total).
		Str("total_excess_rewards_sol", types.LamportsToSol(report.Total)).
		Msg("excess rewards computed")
}

func logValidatorMevData(ctx context.Context, snapshots *ValidatorSnapshots) {
	event := log.Ctx(ctx).Info().
		Stringer("vote_account", snapshots.VoteAccount).
		Uint64("epoch", snapshots.Epoch).
		Uint64("block_rewards", snapshots.Block.TotalRewards)
	if snapshots.Mev == nil {
		event.Uint64("validator_active_stake", snapshots.ActiveStake).Msg("no mev data for validator")
		return
	}
	event.
		Uint64("mev_rewards", snapshots.Mev.Tips).
		Uint16("mev_commission_bps", snapshots.Mev.CommissionBps).
		Uint64("validator_active_stake", snapshots.Mev.ActiveStake).
		Bool("running_jito", snapshots.Mev.RunningJito).
		Msg("validator mev data")
}
