package solanaclient

import (
	"context"
	"time"

	"github.com/pyefi/excess-rewards-keeper/internal/types"
)

//go:generate mockery --name=SolanaInterface --output=../../../testutil/mocks --outpkg=mocks --filename=mock_solana_client.go
type SolanaInterface interface {
	GetEpochInfo(ctx context.Context) (*types.EpochInfo, error)
	GetEpochSchedule(ctx context.Context) (*types.EpochSchedule, error)
	GetStakePosition(ctx context.Context, key types.PublicKey) (*types.StakePosition, error)
	GetStakeHistory(ctx context.Context) (types.StakeHistory, error)
	// GetInflationRewards returns one entry per key, nil where the key earned no reward in epoch.
	GetInflationRewards(ctx context.Context, keys []types.PublicKey, epoch uint64) ([]*types.InflationReward, error)
	GetVoteIdentity(ctx context.Context, voteAccount types.PublicKey) (types.PublicKey, error)
	// GetVoteAccountStake returns the stake activated on voteAccount in the current epoch.
	GetVoteAccountStake(ctx context.Context, voteAccount types.PublicKey) (uint64, error)
	// GetLeaderSlots returns the absolute slots identity was scheduled to lead in epoch.
	GetLeaderSlots(ctx context.Context, identity types.PublicKey, epoch uint64) ([]uint64, error)
	// GetBlockReward returns the fee reward credited to identity in slot, nil when the slot was skipped.
	GetBlockReward(ctx context.Context, identity types.PublicKey, slot uint64) (*uint64, error)
	// GetBlockTime returns nil when no block was produced in slot.
	GetBlockTime(ctx context.Context, slot uint64) (*time.Time, error)
	GetBond(ctx context.Context, key types.PublicKey) (*types.Bond, error)
	GetBondsByVoteAccount(ctx context.Context, programID, voteAccount types.PublicKey) ([]*types.Bond, error)
	GetLatestBlockhash(ctx context.Context) (types.PublicKey, error)
	SendTransaction(ctx context.Context, rawTx []byte) (string, error)
	GetSignatureStatus(ctx context.Context, signature string) (*SignatureStatus, error)
}
