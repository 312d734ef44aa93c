package model

import (
	"time"

	"github.com/pyefi/excess-rewards-keeper/internal/types"
)

const ReportCollection = "excess_reward_report"

type ReportDocument struct {
	ID              string                  `bson:"_id"`
	Bond            string                  `bson:"bond"`
	VoteAccount     string                  `bson:"vote_account"`
	Epoch           uint64                  `bson:"epoch"`
	Commissions     types.RewardCommissions `bson:"commissions"`
	BondActiveStake uint64                  `bson:"bond_active_stake"`
	Inflation       int64                   `bson:"inflation"`
	Mev             int64                   `bson:"mev"`
	Block           int64                   `bson:"block"`
	Total           int64                   `bson:"total"`
	CreatedAt       time.Time               `bson:"created_at"`
}

func NewReportDocument(id string, report *types.ExcessRewardReport) *ReportDocument {
	return &ReportDocument{
		ID:              id,
		Bond:            report.Bond.String(),
		VoteAccount:     report.VoteAccount.String(),
		Epoch:           report.Epoch,
		Commissions:     report.Commissions,
		BondActiveStake: report.BondActiveStake,
		Inflation:       report.Inflation,
		Mev:             report.Mev,
		Block:           report.Block,
		Total:           report.Total,
		CreatedAt:       report.CreatedAt.UTC(),
	}
}
