package stake

import (
	"context"
	"fmt"
	"math"

	"github.com/pyefi/excess-rewards-keeper/internal/types"
	"github.com/rs/zerolog/log"
)

// LedgerReader is the subset of the Solana client the aggregator reads from.
type LedgerReader interface {
	GetStakePosition(ctx context.Context, key types.PublicKey) (*types.StakePosition, error)
	GetStakeHistory(ctx context.Context) (types.StakeHistory, error)
	GetInflationRewards(ctx context.Context, keys []types.PublicKey, epoch uint64) ([]*types.InflationReward, error)
}

// Aggregator derives the active stake of a bond during the last completed epoch.
type Aggregator struct {
	ledger   LedgerReader
	resolver *Resolver
}

func NewAggregator(ledger LedgerReader, resolver *Resolver) *Aggregator {
	return &Aggregator{ledger: ledger, resolver: resolver}
}

// Aggregate returns the effective stake of the bond's primary and transient stake accounts at targetEpoch,
// net of the inflation rewards already compounded into them for that epoch.
func (a *Aggregator) Aggregate(ctx context.Context, bond *types.Bond, targetEpoch, currentEpoch uint64) (uint64, error) {
	if currentEpoch == 0 || targetEpoch != currentEpoch-1 {
		return 0, fmt.Errorf("%w: target epoch %d, current epoch %d", types.ErrUnsupportedEpochDelta, targetEpoch, currentEpoch)
	}
	log := log.Ctx(ctx)

	history, err := a.ledger.GetStakeHistory(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch stake history: %w", err)
	}

	total, err := a.positionActiveStake(ctx, bond.StakeAccount, history, targetEpoch)
	if err != nil {
		return 0, fmt.Errorf("stake account %s: %w", bond.StakeAccount, err)
	}

	if bond.HasTransientStakeAccount() {
		transient, err := a.positionActiveStake(ctx, bond.TransientStakeAccount, history, targetEpoch)
		if err != nil {
			return 0, fmt.Errorf("transient stake account %s: %w", bond.TransientStakeAccount, err)
		}
		if transient > math.MaxUint64-total {
			return 0, types.ErrActiveStakeOverflow
		}
		total += transient
	}

	log.Info().
		Stringer("bond", bond.Pubkey).
		Uint64("epoch", targetEpoch).
		Uint64("bond_active_stake", total).
		Msg("computed bond active stake")

	return total, nil
}

func (a *Aggregator) positionActiveStake(
	ctx context.Context, key types.PublicKey, history types.StakeHistory, targetEpoch uint64,
) (uint64, error) {
	position, err := a.ledger.GetStakePosition(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch stake account: %w", err)
	}

	status, err := a.resolver.Resolve(position, history, targetEpoch)
	if err != nil {
		return 0, err
	}

	rewards, err := a.ledger.GetInflationRewards(ctx, []types.PublicKey{key}, targetEpoch)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch inflation reward: %w", err)
	}
	var compounded uint64
	if len(rewards) > 0 && rewards[0] != nil {
		compounded = rewards[0].Amount
	}

	log.Ctx(ctx).Debug().
		Stringer("stake_account", key).
		Stringer("state", status.State).
		Uint64("effective", status.Effective).
		Uint64("activating", status.Activating).
		Uint64("deactivating", status.Deactivating).
		Uint64("inactive", status.Inactive).
		Uint64("inflation_reward", compounded).
		Msg("resolved stake activation")

	if compounded > status.Effective {
		return 0, fmt.Errorf("%w: effective %d is below compounded inflation reward %d",
			types.ErrNegativeActiveStake, status.Effective, compounded)
	}

	return status.Effective - compounded, nil
}
