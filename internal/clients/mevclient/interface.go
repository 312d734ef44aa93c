package mevclient

import (
	"context"

	"github.com/pyefi/excess-rewards-keeper/internal/types"
)

//go:generate mockery --name=MevInterface --output=../../../testutil/mocks --outpkg=mocks --filename=mock_mev_client.go
type MevInterface interface {
	// GetSnapshot returns the MEV rewards of a validator for one epoch, nil when the provider has no record.
	GetSnapshot(ctx context.Context, voteAccount types.PublicKey, epoch uint64) (*types.MevSnapshot, error)
}
