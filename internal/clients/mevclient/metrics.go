package mevclient

import (
	"context"
	"time"

	"github.com/pyefi/excess-rewards-keeper/internal/observability/metrics"
	"github.com/pyefi/excess-rewards-keeper/internal/types"
)

type mevClientWithMetrics struct {
	mev MevInterface
}

func NewMevClientWithMetrics(mev MevInterface) *mevClientWithMetrics {
	return &mevClientWithMetrics{mev: mev}
}

func (m *mevClientWithMetrics) GetSnapshot(ctx context.Context, voteAccount types.PublicKey, epoch uint64) (*types.MevSnapshot, error) {
	startTime := time.Now()
	snapshot, err := m.mev.GetSnapshot(ctx, voteAccount, epoch)
	metrics.RecordMevClientLatency(time.Since(startTime), "GetSnapshot", err != nil)
	return snapshot, err
}
