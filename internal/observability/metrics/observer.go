package metrics

import (
	"context"

	"github.com/pyefi/excess-rewards-keeper/internal/types"
)

// ReportObserver exports every excess reward report as gauges.
type ReportObserver struct{}

func NewReportObserver() *ReportObserver {
	return &ReportObserver{}
}

func (o *ReportObserver) ObserveReport(_ context.Context, report *types.ExcessRewardReport) error {
	vote := report.VoteAccount.String()
	bond := report.Bond.String()

	RecordBondActiveStake(vote, bond, report.BondActiveStake)
	RecordExcessReward(vote, bond, "inflation", report.Inflation)
	RecordExcessReward(vote, bond, "mev", report.Mev)
	RecordExcessReward(vote, bond, "block", report.Block)
	RecordExcessReward(vote, bond, "total", report.Total)

	return nil
}
