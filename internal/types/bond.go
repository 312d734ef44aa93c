package types

import (
	"fmt"
	"time"
)

// MaxBps is 100% expressed in basis points.
const MaxBps = 10_000

// RewardCommissions are the per-stream rates configured on a bond, in basis points.
type RewardCommissions struct {
	InflationBps    uint16 `json:"inflation_bps" bson:"inflation_bps"`
	MevTipsBps      uint16 `json:"mev_tips_bps" bson:"mev_tips_bps"`
	BlockRewardsBps uint16 `json:"block_rewards_bps" bson:"block_rewards_bps"`
}

func (c RewardCommissions) Validate() error {
	if c.InflationBps > MaxBps {
		return fmt.Errorf("inflation commission %d bps exceeds %d", c.InflationBps, MaxBps)
	}
	if c.MevTipsBps > MaxBps {
		return fmt.Errorf("mev tips commission %d bps exceeds %d", c.MevTipsBps, MaxBps)
	}
	if c.BlockRewardsBps > MaxBps {
		return fmt.Errorf("block rewards commission %d bps exceeds %d", c.BlockRewardsBps, MaxBps)
	}
	return nil
}

// Bond is a solo validator bond account.
type Bond struct {
	Pubkey                PublicKey
	Owner                 PublicKey
	VoteAccount           PublicKey
	StakeAccount          PublicKey
	TransientStakeAccount PublicKey
	Commissions           RewardCommissions
	// MaturityTs is the unix timestamp after which the bond is no longer monitored, 0 means never.
	MaturityTs int64
}

func (b *Bond) HasTransientStakeAccount() bool {
	return !b.TransientStakeAccount.IsZero()
}

// IsActiveAt reports whether the bond is still eligible for settlement at t.
func (b *Bond) IsActiveAt(t time.Time) bool {
	if b.MaturityTs == 0 {
		return true
	}
	return t.Unix() < b.MaturityTs
}
