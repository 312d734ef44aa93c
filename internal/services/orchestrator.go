package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pyefi/excess-rewards-keeper/internal/observability/metrics"
	"github.com/pyefi/excess-rewards-keeper/internal/rewards"
	"github.com/pyefi/excess-rewards-keeper/internal/types"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ValidatorSnapshots are the validator level inputs of an epoch, shared by every bond of the vote account.
type ValidatorSnapshots struct {
	VoteAccount types.PublicKey
	Epoch       uint64
	// Mev is nil when the provider has no record for the epoch.
	Mev   *types.MevSnapshot
	Block *types.BlockRewardSnapshot
	// ActiveStake is the ledger's activated stake of the vote account, read only when Mev carries
	// no stake and there are block rewards to share.
	ActiveStake uint64
}

// FetchValidatorSnapshots loads the MEV snapshot and collects the block rewards of the vote account concurrently.
func (s *Service) FetchValidatorSnapshots(
	ctx context.Context, voteAccount types.PublicKey, epoch uint64,
) (*ValidatorSnapshots, error) {
	snapshots := &ValidatorSnapshots{VoteAccount: voteAccount, Epoch: epoch}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		mev, err := s.mev.GetSnapshot(gctx, voteAccount, epoch)
		if err != nil {
			return fmt.Errorf("failed to fetch mev snapshot: %w", err)
		}
		snapshots.Mev = mev
		return nil
	})
	g.Go(func() error {
		block, err := s.collector.Collect(gctx, voteAccount, epoch)
		if err != nil {
			return fmt.Errorf("failed to collect block rewards: %w", err)
		}
		snapshots.Block = block
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if snapshots.Block.TotalRewards > 0 && (snapshots.Mev == nil || snapshots.Mev.ActiveStake == 0) {
		stake, err := s.solana.GetVoteAccountStake(ctx, voteAccount)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch active stake of vote account %s: %w", voteAccount, err)
		}
		snapshots.ActiveStake = stake
	}

	metrics.AddBlockSlotFetchFailures(snapshots.Block.FailedSlots)
	logValidatorMevData(ctx, snapshots)
	return snapshots, nil
}

// Reconcile computes the excess reward report of bond for the epoch targeted by epochCtx.
// Any calculator failure fails the whole report.
func (s *Service) Reconcile(
	ctx context.Context, bond *types.Bond, epochCtx *types.EpochContext, snapshots *ValidatorSnapshots,
) (*types.ExcessRewardReport, error) {
	target := epochCtx.TargetEpoch
	if snapshots.Epoch != target || snapshots.VoteAccount != bond.VoteAccount {
		return nil, fmt.Errorf("%w: snapshots of %s epoch %d used for bond %s epoch %d", types.ErrInvariantViolation,
			snapshots.VoteAccount, snapshots.Epoch, bond.Pubkey, target)
	}

	activeStake, err := s.aggregator.Aggregate(ctx, bond, target, epochCtx.Current.Epoch)
	if err != nil {
		return nil, fmt.Errorf("failed to compute active stake of bond %s: %w", bond.Pubkey, err)
	}

	in := &rewards.Input{
		Bond:            bond,
		TargetEpoch:     target,
		BondActiveStake: activeStake,
		Mev:             snapshots.Mev,
		Block:           snapshots.Block,

		ValidatorActiveStake: snapshots.ActiveStake,
	}

	amounts := make([]int64, len(s.calculators))
	g, gctx := errgroup.WithContext(ctx)
	for i, calculator := range s.calculators {
		g.Go(func() error {
			amount, err := calculator.ExcessReward(gctx, in)
			if err != nil {
				return fmt.Errorf("%s excess reward of bond %s: %w", calculator.Stream(), bond.Pubkey, err)
			}
			amounts[i] = amount
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byStream := make(map[rewards.Stream]int64, len(amounts))
	for i, calculator := range s.calculators {
		byStream[calculator.Stream()] = amounts[i]
	}
	total, err := rewards.Total(byStream)
	if err != nil {
		return nil, err
	}

	return &types.ExcessRewardReport{
		Bond:            bond.Pubkey,
		VoteAccount:     bond.VoteAccount,
		Epoch:           target,
		Commissions:     bond.Commissions,
		BondActiveStake: activeStake,
		Inflation:       byStream[rewards.StreamInflation],
		Mev:             byStream[rewards.StreamMev],
		Block:           byStream[rewards.StreamBlock],
		Total:           total,
		CreatedAt:       time.Now().UTC(),
	}, nil
}

// SettleBond reconciles bond and, when rewards are owed, dispatches exactly one settlement.
func (s *Service) SettleBond(
	ctx context.Context, bond *types.Bond, epochCtx *types.EpochContext, snapshots *ValidatorSnapshots,
) (*types.SettlementResult, error) {
	log := log.Ctx(ctx).With().Stringer("bond", bond.Pubkey).Uint64("epoch", epochCtx.TargetEpoch).Logger()

	report, err := s.Reconcile(ctx, bond, epochCtx, snapshots)
	if err != nil {
		return nil, err
	}
	logReport(log, report)
	s.notifyObservers(ctx, report)

	result, err := s.settle(ctx, bond, report)
	if err != nil {
		return nil, err
	}
	metrics.IncSettlementOutcome(result.Outcome.String())

	event := log.Info().Str("outcome", result.Outcome.String())
	if result.Signature != "" {
		event = event.Str("signature", result.Signature)
	}
	event.Msg("bond reconciled")

	return result, nil
}

func (s *Service) settle(
	ctx context.Context, bond *types.Bond, report *types.ExcessRewardReport,
) (*types.SettlementResult, error) {
	result := &types.SettlementResult{Report: report}

	if report.Total <= 0 {
		result.Outcome = types.OutcomeNoSettlementDue
		return result, nil
	}
	if s.cfg.Settlement.DryRun {
		result.Outcome = types.OutcomeDryRun
		return result, nil
	}

	if s.ledger != nil {
		settled, err := s.ledger.HasSettlement(ctx, report.Bond, report.Epoch)
		if err != nil {
			return nil, fmt.Errorf("failed to check settlement ledger: %w", err)
		}
		if settled {
			result.Outcome = types.OutcomeAlreadySettled
			return result, nil
		}
	}

	confirmed, err := s.confirmer.Confirm(ctx, report)
	if err != nil && !errors.Is(err, types.ErrUserDeclined) {
		return nil, fmt.Errorf("failed to confirm settlement: %w", err)
	}
	if !confirmed || err != nil {
		result.Outcome = types.OutcomeDeclined
		return result, nil
	}

	signature, err := s.settler.Settle(ctx, bond, uint64(report.Total))
	if err != nil {
		return nil, fmt.Errorf("failed to transfer excess rewards to bond %s: %w", bond.Pubkey, err)
	}
	result.Outcome = types.OutcomeSettled
	result.Signature = signature

	if s.ledger != nil {
		if err := s.ledger.RecordSettlement(ctx, result); err != nil {
			// the transfer is final, only the record is missing
			log.Ctx(ctx).Error().Err(err).
				Stringer("bond", bond.Pubkey).
				Uint64("epoch", report.Epoch).
				Str("signature", signature).
				Msg("failed to record settlement")
		}
	}

	return result, nil
}

// notifyObservers hands the report to every observer. Observer failures are logged only.
func (s *Service) notifyObservers(ctx context.Context, report *types.ExcessRewardReport) {
	for _, observer := range s.observers {
		if err := observer.ObserveReport(ctx, report); err != nil {
			log.Ctx(ctx).Warn().Err(err).
				Stringer("bond", report.Bond).
				Uint64("epoch", report.Epoch).
				Msg("report observer failed")
		}
	}
}
