package rewards

import (
	"context"
	"fmt"

	"github.com/pyefi/excess-rewards-keeper/internal/types"
)

// BlockCalculator returns the bond's stake-weighted share of the validator's block production rewards.
// The validator stake denominator is the one reported with the MEV snapshot, or the ledger's when the
// provider has none.
type BlockCalculator struct{}

func NewBlockCalculator() *BlockCalculator {
	return &BlockCalculator{}
}

func (c *BlockCalculator) Stream() Stream {
	return StreamBlock
}

func (c *BlockCalculator) ExcessReward(_ context.Context, in *Input) (int64, error) {
	if in.Block == nil || in.Block.TotalRewards == 0 {
		return 0, nil
	}

	validatorStake := in.ValidatorActiveStake
	if in.Mev != nil && in.Mev.ActiveStake > 0 {
		validatorStake = in.Mev.ActiveStake
	}
	if validatorStake == 0 {
		return 0, fmt.Errorf("%w: validator active stake unknown for epoch %d with %d lamports of block rewards",
			types.ErrDataUnavailable, in.TargetEpoch, in.Block.TotalRewards)
	}

	return proportionalShare(in.Block.TotalRewards, in.BondActiveStake, validatorStake, in.Bond.Commissions.BlockRewardsBps)
}
