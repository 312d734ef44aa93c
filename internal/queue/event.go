package queue

import "github.com/pyefi/excess-rewards-keeper/internal/types"

const (
	ExcessRewardReportEventType = "excess_reward_report"
	eventSchemaVersion          = 1
)

type ExcessRewardReportEvent struct {
	SchemaVersion   int    `json:"schema_version"`
	EventType       string `json:"event_type"`
	Bond            string `json:"bond"`
	VoteAccount     string `json:"vote_account"`
	Epoch           uint64 `json:"epoch"`
	InflationBps    uint16 `json:"inflation_bps"`
	MevTipsBps      uint16 `json:"mev_tips_bps"`
	BlockRewardsBps uint16 `json:"block_rewards_bps"`
	BondActiveStake uint64 `json:"bond_active_stake"`
	Inflation       int64  `json:"inflation"`
	Mev             int64  `json:"mev"`
	Block           int64  `json:"block"`
	Total           int64  `json:"total"`
	TotalSol        string `json:"total_sol"`
	CreatedAt       int64  `json:"created_at"`
}

func NewExcessRewardReportEvent(report *types.ExcessRewardReport) *ExcessRewardReportEvent {
	return &ExcessRewardReportEvent{
		SchemaVersion:   eventSchemaVersion,
		EventType:       ExcessRewardReportEventType,
		Bond:            report.Bond.String(),
		VoteAccount:     report.VoteAccount.String(),
		Epoch:           report.Epoch,
		InflationBps:    report.Commissions.InflationBps,
		MevTipsBps:      report.Commissions.MevTipsBps,
		BlockRewardsBps: report.Commissions.BlockRewardsBps,
		BondActiveStake: report.BondActiveStake,
		Inflation:       report.Inflation,
		Mev:             report.Mev,
		Block:           report.Block,
		Total:           report.Total,
		TotalSol:        types.LamportsToSol(report.Total),
		CreatedAt:       report.CreatedAt.Unix(),
	}
}
