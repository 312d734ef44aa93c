package rewards

import (
	"context"
	"fmt"
	"math/bits"

	"github.com/pyefi/excess-rewards-keeper/internal/types"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

const DefaultBlockFetchConcurrency = 50

type BlockSource interface {
	GetVoteIdentity(ctx context.Context, voteAccount types.PublicKey) (types.PublicKey, error)
	GetLeaderSlots(ctx context.Context, identity types.PublicKey, epoch uint64) ([]uint64, error)
	GetBlockReward(ctx context.Context, identity types.PublicKey, slot uint64) (*uint64, error)
}

type slotStatus int

const (
	slotProduced slotStatus = iota
	slotSkipped
	slotFailed
)

type slotResult struct {
	slot     uint64
	reward   uint64
	status   slotStatus
	fetchErr error
}

// BlockRewardCollector totals the block rewards of a validator over its leader slots of an epoch.
type BlockRewardCollector struct {
	source      BlockSource
	concurrency int
}

func NewBlockRewardCollector(source BlockSource, concurrency int) *BlockRewardCollector {
	if concurrency <= 0 {
		concurrency = DefaultBlockFetchConcurrency
	}
	return &BlockRewardCollector{source: source, concurrency: concurrency}
}

// Collect fetches every leader slot with at most concurrency requests in flight. Skipped and
// failed slots count as zero; the collection fails only when every slot failed.
func (c *BlockRewardCollector) Collect(
	ctx context.Context, voteAccount types.PublicKey, epoch uint64,
) (*types.BlockRewardSnapshot, error) {
	identity, err := c.source.GetVoteIdentity(ctx, voteAccount)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve identity of vote account %s: %w", voteAccount, err)
	}

	slots, err := c.source.GetLeaderSlots(ctx, identity, epoch)
	if err != nil {
		return nil, fmt.Errorf("failed to get leader slots of %s in epoch %d: %w", identity, epoch, err)
	}

	snapshot := &types.BlockRewardSnapshot{
		Identity:    identity,
		Epoch:       epoch,
		LeaderSlots: len(slots),
	}
	if len(slots) == 0 {
		return snapshot, nil
	}

	p := pool.NewWithResults[slotResult]().
		WithContext(ctx).
		WithMaxGoroutines(c.concurrency)
	for _, slot := range slots {
		p.Go(func(ctx context.Context) (slotResult, error) {
			return c.fetchSlot(ctx, identity, slot)
		})
	}

	results, err := p.Wait()
	if err != nil {
		return nil, fmt.Errorf("block reward collection for epoch %d aborted: %w", epoch, err)
	}

	var lastErr error
	for _, r := range results {
		switch r.status {
		case slotProduced:
			total, carry := bits.Add64(snapshot.TotalRewards, r.reward, 0)
			if carry != 0 {
				return nil, fmt.Errorf("%w: block rewards of epoch %d overflow u64", types.ErrInvariantViolation, epoch)
			}
			snapshot.TotalRewards = total
		case slotSkipped:
			snapshot.SkippedSlots++
		case slotFailed:
			snapshot.FailedSlots++
			lastErr = r.fetchErr
		}
	}

	if snapshot.FailedSlots == snapshot.LeaderSlots {
		return nil, fmt.Errorf("%w: all %d leader slots of epoch %d failed: %w",
			types.ErrTransportFailure, snapshot.LeaderSlots, epoch, lastErr)
	}

	log.Ctx(ctx).Info().
		Stringer("identity", identity).
		Uint64("epoch", epoch).
		Int("leader_slots", snapshot.LeaderSlots).
		Int("skipped_slots", snapshot.SkippedSlots).
		Int("failed_slots", snapshot.FailedSlots).
		Uint64("total_rewards", snapshot.TotalRewards).
		Msg("collected block rewards")

	return snapshot, nil
}

func (c *BlockRewardCollector) fetchSlot(ctx context.Context, identity types.PublicKey, slot uint64) (slotResult, error) {
	reward, err := c.source.GetBlockReward(ctx, identity, slot)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return slotResult{}, ctxErr
	}
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Uint64("slot", slot).Msg("failed to fetch block reward")
		return slotResult{slot: slot, status: slotFailed, fetchErr: err}, nil
	}
	if reward == nil {
		return slotResult{slot: slot, status: slotSkipped}, nil
	}
	return slotResult{slot: slot, reward: *reward, status: slotProduced}, nil
}
