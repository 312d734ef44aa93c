package rewards

import (
	"context"

	"github.com/rs/zerolog/log"
)

// MevCalculator returns the bond's stake-weighted share of the validator's MEV tips.
type MevCalculator struct{}

func NewMevCalculator() *MevCalculator {
	return &MevCalculator{}
}

func (c *MevCalculator) Stream() Stream {
	return StreamMev
}

func (c *MevCalculator) ExcessReward(ctx context.Context, in *Input) (int64, error) {
	if in.Mev == nil {
		log.Ctx(ctx).Debug().Uint64("epoch", in.TargetEpoch).Msg("no mev snapshot, nothing owed")
		return 0, nil
	}
	return proportionalShare(in.Mev.Tips, in.BondActiveStake, in.Mev.ActiveStake, in.Bond.Commissions.MevTipsBps)
}
