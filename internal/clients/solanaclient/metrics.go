package solanaclient

import (
	"context"
	"time"

	"github.com/pyefi/excess-rewards-keeper/internal/observability/metrics"
	"github.com/pyefi/excess-rewards-keeper/internal/types"
)

type solanaClientWithMetrics struct {
	solana SolanaInterface
}

func NewSolanaClientWithMetrics(solana SolanaInterface) *solanaClientWithMetrics {
	return &solanaClientWithMetrics{solana: solana}
}

func (s *solanaClientWithMetrics) GetEpochInfo(ctx context.Context) (*types.EpochInfo, error) {
	return runSolanaClientMethodWithMetrics("GetEpochInfo", func() (*types.EpochInfo, error) {
		return s.solana.GetEpochInfo(ctx)
	})
}

func (s *solanaClientWithMetrics) GetEpochSchedule(ctx context.Context) (*types.EpochSchedule, error) {
	return runSolanaClientMethodWithMetrics("GetEpochSchedule", func() (*types.EpochSchedule, error) {
		return s.solana.GetEpochSchedule(ctx)
	})
}

func (s *solanaClientWithMetrics) GetStakePosition(ctx context.Context, key types.PublicKey) (*types.StakePosition, error) {
	return runSolanaClientMethodWithMetrics("GetStakePosition", func() (*types.StakePosition, error) {
		return s.solana.GetStakePosition(ctx, key)
	})
}

func (s *solanaClientWithMetrics) GetStakeHistory(ctx context.Context) (types.StakeHistory, error) {
	return runSolanaClientMethodWithMetrics("GetStakeHistory", func() (types.StakeHistory, error) {
		return s.solana.GetStakeHistory(ctx)
	})
}

func (s *solanaClientWithMetrics) GetInflationRewards(ctx context.Context, keys []types.PublicKey, epoch uint64) ([]*types.InflationReward, error) {
	return runSolanaClientMethodWithMetrics("GetInflationRewards", func() ([]*types.InflationReward, error) {
		return s.solana.GetInflationRewards(ctx, keys, epoch)
	})
}

func (s *solanaClientWithMetrics) GetVoteIdentity(ctx context.Context, voteAccount types.PublicKey) (types.PublicKey, error) {
	return runSolanaClientMethodWithMetrics("GetVoteIdentity", func() (types.PublicKey, error) {
		return s.solana.GetVoteIdentity(ctx, voteAccount)
	})
}

func (s *solanaClientWithMetrics) GetVoteAccountStake(ctx context.Context, voteAccount types.PublicKey) (uint64, error) {
	return runSolanaClientMethodWithMetrics("GetVoteAccountStake", func() (uint64, error) {
		return s.solana.GetVoteAccountStake(ctx, voteAccount)
	})
}

func (s *solanaClientWithMetrics) GetLeaderSlots(ctx context.Context, identity types.PublicKey, epoch uint64) ([]uint64, error) {
	return runSolanaClientMethodWithMetrics("GetLeaderSlots", func() ([]uint64, error) {
		return s.solana.GetLeaderSlots(ctx, identity, epoch)
	})
}

func (s *solanaClientWithMetrics) GetBlockReward(ctx context.Context, identity types.PublicKey, slot uint64) (*uint64, error) {
	return runSolanaClientMethodWithMetrics("GetBlockReward", func() (*uint64, error) {
		return s.solana.GetBlockReward(ctx, identity, slot)
	})
}

func (s *solanaClientWithMetrics) GetBlockTime(ctx context.Context, slot uint64) (*time.Time, error) {
	return runSolanaClientMethodWithMetrics("GetBlockTime", func() (*time.Time, error) {
		return s.solana.GetBlockTime(ctx, slot)
	})
}

func (s *solanaClientWithMetrics) GetBond(ctx context.Context, key types.PublicKey) (*types.Bond, error) {
	return runSolanaClientMethodWithMetrics("GetBond", func() (*types.Bond, error) {
		return s.solana.GetBond(ctx, key)
	})
}

func (s *solanaClientWithMetrics) GetBondsByVoteAccount(ctx context.Context, programID, voteAccount types.PublicKey) ([]*types.Bond, error) {
	return runSolanaClientMethodWithMetrics("GetBondsByVoteAccount", func() ([]*types.Bond, error) {
		return s.solana.GetBondsByVoteAccount(ctx, programID, voteAccount)
	})
}

func (s *solanaClientWithMetrics) GetLatestBlockhash(ctx context.Context) (types.PublicKey, error) {
	return runSolanaClientMethodWithMetrics("GetLatestBlockhash", func() (types.PublicKey, error) {
		return s.solana.GetLatestBlockhash(ctx)
	})
}

func (s *solanaClientWithMetrics) SendTransaction(ctx context.Context, rawTx []byte) (string, error) {
	return runSolanaClientMethodWithMetrics("SendTransaction", func() (string, error) {
		return s.solana.SendTransaction(ctx, rawTx)
	})
}

func (s *solanaClientWithMetrics) GetSignatureStatus(ctx context.Context, signature string) (*SignatureStatus, error) {
	// polled in a tight loop while confirming, latency is not interesting
	return s.solana.GetSignatureStatus(ctx, signature)
}

func runSolanaClientMethodWithMetrics[T any](method string, f func() (T, error)) (T, error) {
	startTime := time.Now()
	v, err := f()
	duration := time.Since(startTime)

	metrics.RecordSolanaClientLatency(duration, method, err != nil)
	return v, err
}
