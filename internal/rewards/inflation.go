package rewards

import (
	"context"
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/pyefi/excess-rewards-keeper/internal/types"
	"github.com/rs/zerolog/log"
)

type InflationRewardSource interface {
	GetInflationRewards(ctx context.Context, keys []types.PublicKey, epoch uint64) ([]*types.InflationReward, error)
}

// InflationCalculator returns to the bond its share of the commission the validator retained
// from the inflation rewards of the bond's stake positions.
type InflationCalculator struct {
	source InflationRewardSource
}

func NewInflationCalculator(source InflationRewardSource) *InflationCalculator {
	return &InflationCalculator{source: source}
}

func (c *InflationCalculator) Stream() Stream {
	return StreamInflation
}

func (c *InflationCalculator) ExcessReward(ctx context.Context, in *Input) (int64, error) {
	keys := []types.PublicKey{in.Bond.StakeAccount}
	if in.Bond.HasTransientStakeAccount() {
		keys = append(keys, in.Bond.TransientStakeAccount)
	}

	rewards, err := c.source.GetInflationRewards(ctx, keys, in.TargetEpoch)
	if err != nil {
		return 0, fmt.Errorf("failed to get inflation rewards for epoch %d: %w", in.TargetEpoch, err)
	}
	if len(rewards) != len(keys) {
		return 0, fmt.Errorf("%w: got %d inflation rewards for %d stake accounts",
			types.ErrInvariantViolation, len(rewards), len(keys))
	}

	total := sdkmath.ZeroInt()
	for i, reward := range rewards {
		owed, err := inflationOwed(reward, in.Bond.Commissions.InflationBps)
		if err != nil {
			return 0, fmt.Errorf("inflation reward of %s: %w", keys[i], err)
		}
		if reward == nil {
			log.Ctx(ctx).Debug().
				Stringer("stake_account", keys[i]).
				Uint64("epoch", in.TargetEpoch).
				Msg("no inflation reward record")
		}
		total = total.AddRaw(owed)
	}
	if !total.IsInt64() {
		return 0, fmt.Errorf("%w: inflation owed %s overflows int64", types.ErrInvariantViolation, total)
	}
	return total.Int64(), nil
}

// inflationOwed derives the commission kept by the validator from the net reward credited to the
// staker and returns the bps share of it.
func inflationOwed(reward *types.InflationReward, bps uint16) (int64, error) {
	if reward == nil || reward.Amount == 0 || reward.Commission == nil {
		return 0, nil
	}
	commission := int64(*reward.Commission)
	if commission >= 100 {
		return 0, nil
	}

	amount := sdkmath.NewIntFromUint64(reward.Amount)
	gross := amount.MulRaw(100).QuoRaw(100 - commission)
	retained := gross.Sub(amount)
	owed := retained.MulRaw(int64(bps)).QuoRaw(types.MaxBps)
	if !owed.IsInt64() {
		return 0, fmt.Errorf("%w: inflation owed %s overflows int64", types.ErrInvariantViolation, owed)
	}
	return owed.Int64(), nil
}
