package types

// InflationReward is the partitioned inflation reward credited to an account for one epoch.
type InflationReward struct {
	Epoch         uint64 `json:"epoch"`
	EffectiveSlot uint64 `json:"effectiveSlot"`
	Amount        uint64 `json:"amount"`
	PostBalance   uint64 `json:"postBalance"`
	// Commission is the vote account commission (percent) at the time of the reward.
	Commission *uint8 `json:"commission"`
}

// MevSnapshot is what the MEV data provider reports for one validator and epoch.
type MevSnapshot struct {
	VoteAccount   PublicKey
	Epoch         uint64
	Tips          uint64
	CommissionBps uint16
	// ActiveStake is the validator's self-reported active stake, the denominator of per-staker shares.
	ActiveStake uint64
	RunningJito bool
}

// BlockRewardSnapshot totals the block production rewards of one validator identity for one epoch.
type BlockRewardSnapshot struct {
	Identity     PublicKey
	Epoch        uint64
	TotalRewards uint64
	LeaderSlots  int
	SkippedSlots int
	FailedSlots  int
}
