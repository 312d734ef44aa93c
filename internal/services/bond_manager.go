package services

import (
	"context"
	"fmt"
	"time"

	"github.com/pyefi/excess-rewards-keeper/internal/observability/metrics"
	"github.com/pyefi/excess-rewards-keeper/internal/observability/tracing"
	"github.com/pyefi/excess-rewards-keeper/internal/types"
	"github.com/pyefi/excess-rewards-keeper/internal/utils/poller"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

// StartBondManager reconciles every active bond of voteAccount once per epoch, right after the
// epoch boundary. It returns when ctx is cancelled or an epoch fails.
func (s *Service) StartBondManager(ctx context.Context, voteAccount types.PublicKey) error {
	return s.runBondManager(ctx, voteAccount, poller.NewEpochMonitor(s.solana, s.cfg.Poller.EpochPollingInterval))
}

func (s *Service) runBondManager(ctx context.Context, voteAccount types.PublicKey, monitor *poller.EpochMonitor) error {
	info, err := s.solana.GetEpochInfo(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch epoch info: %w", err)
	}
	epoch := info.Epoch
	log.Ctx(ctx).Info().
		Stringer("vote_account", voteAccount).
		Uint64("epoch", epoch).
		Msg("starting validator bond manager")

	for {
		// bonds are listed before the boundary so a bond maturing during the wait is still settled
		bonds, err := s.solana.GetBondsByVoteAccount(ctx, s.cfg.Settlement.ProgramPublicKey(), voteAccount)
		if err != nil {
			return fmt.Errorf("failed to fetch bonds of %s: %w", voteAccount, err)
		}

		next, err := monitor.WaitForNextEpoch(ctx, epoch)
		if err != nil {
			return err
		}
		if err := monitor.Settle(ctx, s.cfg.Poller.SettlingDelay()); err != nil {
			return err
		}

		reconcile := metrics.RecordPollerDuration("reconcile_epoch", func(ctx context.Context) error {
			return s.ReconcileEpoch(ctx, voteAccount, bonds, next)
		})
		if err := reconcile(tracing.InjectEpoch(tracing.InjectTraceID(ctx), next.Epoch-1)); err != nil {
			return fmt.Errorf("failed to reconcile epoch %d: %w", next.Epoch-1, err)
		}
		epoch = next.Epoch
	}
}

// ReconcileEpoch settles the bonds still active at the end of the epoch preceding current.
func (s *Service) ReconcileEpoch(
	ctx context.Context, voteAccount types.PublicKey, bonds []*types.Bond, current *types.EpochInfo,
) error {
	epochCtx, err := s.epochContext(ctx, current)
	if err != nil {
		return err
	}
	epochCtx.TargetEndTime = s.targetEndTime(ctx, epochCtx)

	active := activeBonds(bonds, *epochCtx.TargetEndTime)
	if len(active) == 0 {
		log.Ctx(ctx).Info().
			Stringer("vote_account", voteAccount).
			Int("bonds", len(bonds)).
			Msg("no active bonds to reconcile")
		return nil
	}

	snapshots, err := s.FetchValidatorSnapshots(ctx, voteAccount, epochCtx.TargetEpoch)
	if err != nil {
		return err
	}

	p := pool.New().
		WithErrors().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(s.cfg.Settlement.BondConcurrency)
	for _, bond := range active {
		p.Go(func(ctx context.Context) error {
			_, err := s.SettleBond(ctx, bond, epochCtx, snapshots)
			return err
		})
	}
	return p.Wait()
}

// targetEndTime is the block time of the target epoch's last slot, or now when that slot has no block.
func (s *Service) targetEndTime(ctx context.Context, epochCtx *types.EpochContext) *time.Time {
	blockTime, err := s.solana.GetBlockTime(ctx, epochCtx.TargetLastSlot)
	if err != nil || blockTime == nil {
		now := time.Now()
		log.Ctx(ctx).Debug().Err(err).
			Uint64("slot", epochCtx.TargetLastSlot).
			Msg("no block time for last slot of target epoch, using current time")
		return &now
	}
	return blockTime
}

func activeBonds(bonds []*types.Bond, at time.Time) []*types.Bond {
	var active []*types.Bond
	for _, bond := range bonds {
		if bond.IsActiveAt(at) {
			active = append(active, bond)
		}
	}
	return active
}
