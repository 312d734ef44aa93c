package services

import (
	"context"

	"github.com/pyefi/excess-rewards-keeper/internal/db"
	"github.com/pyefi/excess-rewards-keeper/internal/types"
)

// LedgerObserver stores every report in the settlement ledger.
type LedgerObserver struct {
	ledger db.DbInterface
}

func NewLedgerObserver(ledger db.DbInterface) *LedgerObserver {
	return &LedgerObserver{ledger: ledger}
}

func (o *LedgerObserver) ObserveReport(ctx context.Context, report *types.ExcessRewardReport) error {
	return o.ledger.SaveReport(ctx, report)
}
