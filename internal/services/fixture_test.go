package services

import (
	"testing"

	"github.com/pyefi/excess-rewards-keeper/internal/config"
	"github.com/pyefi/excess-rewards-keeper/internal/types"
	"github.com/pyefi/excess-rewards-keeper/pkg"
	"github.com/pyefi/excess-rewards-keeper/testutil/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	currentEpoch = uint64(601)
	targetEpoch  = uint64(600)

	rentExemptReserve = uint64(2_282_880)
	slotsPerEpoch     = uint64(432_000)
)

var (
	voteAccount  = types.PublicKey{0xa1}
	identity     = types.PublicKey{0xa2}
	bondKey      = types.PublicKey{0xb1}
	stakeAccount = types.PublicKey{0xb2}
)

type fixture struct {
	cfg       *config.Config
	solana    *mocks.SolanaInterface
	mev       *mocks.MevInterface
	ledger    *mocks.DbInterface
	settler   *mocks.Settler
	confirmer *mocks.Confirmer
	observer  *mocks.Observer
}

func newFixture(t *testing.T) *fixture {
	cfg := &config.Config{}
	require.NoError(t, cfg.Settlement.Validate())
	require.NoError(t, cfg.Poller.Validate())

	return &fixture{
		cfg:       cfg,
		solana:    mocks.NewSolanaInterface(t),
		mev:       mocks.NewMevInterface(t),
		ledger:    mocks.NewDbInterface(t),
		settler:   mocks.NewSettler(t),
		confirmer: mocks.NewConfirmer(t),
		observer:  mocks.NewObserver(t),
	}
}

func (f *fixture) service() *Service {
	return NewService(f.cfg, f.solana, f.mev, f.ledger, f.settler, f.confirmer, f.observer)
}

// serviceWithoutLedger is a service run without a database.
func (f *fixture) serviceWithoutLedger() *Service {
	return NewService(f.cfg, f.solana, f.mev, nil, f.settler, f.confirmer, f.observer)
}

// testBond owes 263 inflation, 20_000 mev and 2_500 block lamports for the target epoch
// once the stake and rewards of expectBondReads are in place.
func testBond() *types.Bond {
	return &types.Bond{
		Pubkey:       bondKey,
		VoteAccount:  voteAccount,
		StakeAccount: stakeAccount,
		Commissions: types.RewardCommissions{
			InflationBps:    1_000,
			MevTipsBps:      1_000,
			BlockRewardsBps: 500,
		},
	}
}

func testEpochContext() *types.EpochContext {
	return types.NewEpochContext(
		types.EpochInfo{Epoch: currentEpoch, SlotsInEpoch: slotsPerEpoch},
		types.EpochSchedule{SlotsPerEpoch: slotsPerEpoch},
	)
}

func testSnapshots() *ValidatorSnapshots {
	return &ValidatorSnapshots{
		VoteAccount: voteAccount,
		Epoch:       targetEpoch,
		Mev:         &types.MevSnapshot{VoteAccount: voteAccount, Epoch: targetEpoch, Tips: 2_000_000, ActiveStake: 10_000_000},
		Block:       &types.BlockRewardSnapshot{Identity: identity, Epoch: targetEpoch, TotalRewards: 500_000, LeaderSlots: 2},
	}
}

// expectBondReads sets up a fully active stake account of 1_050_000 lamports that earned a 50_000
// lamport inflation reward at 5% vote commission, giving an active stake of 1_000_000.
func (f *fixture) expectBondReads(key types.PublicKey) {
	position := &types.StakePosition{
		Pubkey:   key,
		Lamports: 1_050_000 + rentExemptReserve,
		Meta:     &types.StakeMeta{RentExemptReserve: rentExemptReserve},
		Delegation: &types.Delegation{
			VoterPubkey:       voteAccount,
			Stake:             1_050_000,
			ActivationEpoch:   500,
			DeactivationEpoch: types.NoEpoch,
		},
	}
	reward := []*types.InflationReward{{Epoch: targetEpoch, Amount: 50_000, Commission: pkg.Ptr(uint8(5))}}

	f.solana.On("GetStakeHistory", mock.Anything).Return(types.StakeHistory{}, nil).Once()
	f.solana.On("GetStakePosition", mock.Anything, key).Return(position, nil).Once()
	f.solana.On("GetInflationRewards", mock.Anything, []types.PublicKey{key}, targetEpoch).Return(reward, nil).Twice()
}

func (f *fixture) expectSnapshotReads() {
	f.mev.On("GetSnapshot", mock.Anything, voteAccount, targetEpoch).Return(testSnapshots().Mev, nil).Once()
	f.expectBlockReads()
}

// expectBlockReads serves 500_000 lamports of block rewards over two leader slots.
func (f *fixture) expectBlockReads() {
	f.solana.On("GetVoteIdentity", mock.Anything, voteAccount).Return(identity, nil).Once()
	f.solana.On("GetLeaderSlots", mock.Anything, identity, targetEpoch).Return([]uint64{10, 11}, nil).Once()
	f.solana.On("GetBlockReward", mock.Anything, identity, uint64(10)).Return(pkg.Ptr(uint64(300_000)), nil).Once()
	f.solana.On("GetBlockReward", mock.Anything, identity, uint64(11)).Return(pkg.Ptr(uint64(200_000)), nil).Once()
}
