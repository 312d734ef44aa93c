package services

import (
	"context"

	"github.com/pyefi/excess-rewards-keeper/internal/clients/mevclient"
	"github.com/pyefi/excess-rewards-keeper/internal/clients/solanaclient"
	"github.com/pyefi/excess-rewards-keeper/internal/config"
	"github.com/pyefi/excess-rewards-keeper/internal/db"
	"github.com/pyefi/excess-rewards-keeper/internal/rewards"
	"github.com/pyefi/excess-rewards-keeper/internal/stake"
	"github.com/pyefi/excess-rewards-keeper/internal/types"
)

//go:generate mockery --name=Observer --output=../../testutil/mocks --outpkg=mocks --filename=mock_observer.go
// Observer receives every excess reward report before any settlement decision.
type Observer interface {
	ObserveReport(ctx context.Context, report *types.ExcessRewardReport) error
}

//go:generate mockery --name=Settler --output=../../testutil/mocks --outpkg=mocks --filename=mock_settler.go
// Settler transfers lamports into the bond and delegates them, returning the confirmed signature.
type Settler interface {
	Settle(ctx context.Context, bond *types.Bond, lamports uint64) (string, error)
}

//go:generate mockery --name=Confirmer --output=../../testutil/mocks --outpkg=mocks --filename=mock_confirmer.go
// Confirmer authorizes a settlement. Returning false declines it without error.
type Confirmer interface {
	Confirm(ctx context.Context, report *types.ExcessRewardReport) (bool, error)
}

type Service struct {
	cfg    *config.Config
	solana solanaclient.SolanaInterface
	mev    mevclient.MevInterface
	// ledger is nil when no database is configured.
	ledger    db.DbInterface
	settler   Settler
	confirmer Confirmer
	observers []Observer

	aggregator  *stake.Aggregator
	collector   *rewards.BlockRewardCollector
	calculators []rewards.Calculator
}

func NewService(
	cfg *config.Config,
	solana solanaclient.SolanaInterface,
	mev mevclient.MevInterface,
	ledger db.DbInterface,
	settler Settler,
	confirmer Confirmer,
	observers ...Observer,
) *Service {
	return &Service{
		cfg:       cfg,
		solana:    solana,
		mev:       mev,
		ledger:    ledger,
		settler:   settler,
		confirmer: confirmer,
		observers: observers,
		aggregator: stake.NewAggregator(
			solana, stake.NewResolver(cfg.Settlement.NewRateActivationEpoch),
		),
		collector: rewards.NewBlockRewardCollector(solana, cfg.Settlement.Concurrency),
		calculators: []rewards.Calculator{
			rewards.NewInflationCalculator(solana),
			rewards.NewMevCalculator(),
			rewards.NewBlockCalculator(),
		},
	}
}
