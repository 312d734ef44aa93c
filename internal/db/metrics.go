package db

import (
	"context"
	"time"

	"github.com/pyefi/excess-rewards-keeper/internal/observability/metrics"
	"github.com/pyefi/excess-rewards-keeper/internal/types"
)

type DbWithMetrics struct {
	db DbInterface
}

func NewDbWithMetrics(db DbInterface) *DbWithMetrics {
	return &DbWithMetrics{db: db}
}

func (d *DbWithMetrics) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

func (d *DbWithMetrics) SaveReport(ctx context.Context, report *types.ExcessRewardReport) error {
	return d.run("SaveReport", func() error {
		return d.db.SaveReport(ctx, report)
	})
}

func (d *DbWithMetrics) HasSettlement(ctx context.Context, bond types.PublicKey, epoch uint64) (result bool, err error) {
	//nolint:errcheck
	d.run("HasSettlement", func() error {
		result, err = d.db.HasSettlement(ctx, bond, epoch)
		return err
	})
	return
}

func (d *DbWithMetrics) RecordSettlement(ctx context.Context, result *types.SettlementResult) error {
	return d.run("RecordSettlement", func() error {
		return d.db.RecordSettlement(ctx, result)
	})
}

func (d *DbWithMetrics) run(method string, f func() error) error {
	startTime := time.Now()
	err := f()
	duration := time.Since(startTime)

	metrics.RecordDbLatency(duration, method, err != nil)
	return err
}
