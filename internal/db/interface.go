package db

import (
	"context"

	"github.com/pyefi/excess-rewards-keeper/internal/types"
)

type DbInterface interface {
	Ping(ctx context.Context) error
	// SaveReport stores the reconciliation of a bond for an epoch, replacing an earlier one.
	SaveReport(ctx context.Context, report *types.ExcessRewardReport) error
	// HasSettlement reports whether a confirmed settlement exists for the bond and epoch.
	HasSettlement(ctx context.Context, bond types.PublicKey, epoch uint64) (bool, error)
	// RecordSettlement stores a confirmed settlement. A second settlement of the same
	// bond and epoch fails with a DuplicateKeyError.
	RecordSettlement(ctx context.Context, result *types.SettlementResult) error
}
