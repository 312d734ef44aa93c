package types

import "time"

type SettlementOutcome string

const (
	OutcomeNoSettlementDue SettlementOutcome = "no_settlement_due"
	OutcomeDryRun          SettlementOutcome = "dry_run"
	OutcomeAlreadySettled  SettlementOutcome = "already_settled"
	OutcomeDeclined        SettlementOutcome = "declined"
	OutcomeSettled         SettlementOutcome = "settled"
)

func (o SettlementOutcome) String() string {
	return string(o)
}

// ExcessRewardReport is the reconciliation of one bond for one epoch.
// Stream amounts are signed, Total may be negative before it is floored by the orchestrator.
type ExcessRewardReport struct {
	Bond            PublicKey
	VoteAccount     PublicKey
	Epoch           uint64
	Commissions     RewardCommissions
	BondActiveStake uint64
	Inflation       int64
	Mev             int64
	Block           int64
	Total           int64
	CreatedAt       time.Time
}

// SettlementResult is the terminal state of one (bond, epoch) evaluation.
type SettlementResult struct {
	Report    *ExcessRewardReport
	Outcome   SettlementOutcome
	Signature string
}
