package services

import (
	"errors"
	"testing"

	"github.com/pyefi/excess-rewards-keeper/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReconcile(t *testing.T) {
	t.Run("sums the three streams", func(t *testing.T) {
		f := newFixture(t)
		f.expectBondReads(stakeAccount)

		report, err := f.service().Reconcile(t.Context(), testBond(), testEpochContext(), testSnapshots())
		require.NoError(t, err)

		assert.Equal(t, bondKey, report.Bond)
		assert.Equal(t, voteAccount, report.VoteAccount)
		assert.Equal(t, targetEpoch, report.Epoch)
		assert.Equal(t, uint64(1_000_000), report.BondActiveStake)
		assert.Equal(t, int64(263), report.Inflation)
		assert.Equal(t, int64(20_000), report.Mev)
		assert.Equal(t, int64(2_500), report.Block)
		assert.Equal(t, int64(22_763), report.Total)
		assert.Equal(t, testBond().Commissions, report.Commissions)
	})

	t.Run("missing mev snapshot", func(t *testing.T) {
		f := newFixture(t)
		f.expectBondReads(stakeAccount)
		snapshots := testSnapshots()
		snapshots.Mev = nil
		snapshots.ActiveStake = 10_000_000

		report, err := f.service().Reconcile(t.Context(), testBond(), testEpochContext(), snapshots)
		require.NoError(t, err)
		assert.Zero(t, report.Mev)
		assert.Equal(t, int64(2_500), report.Block)
		assert.Equal(t, int64(2_763), report.Total)
	})

	t.Run("block rewards without any validator stake", func(t *testing.T) {
		f := newFixture(t)
		f.expectBondReads(stakeAccount)
		snapshots := testSnapshots()
		snapshots.Mev = nil

		_, err := f.service().Reconcile(t.Context(), testBond(), testEpochContext(), snapshots)
		require.ErrorIs(t, err, types.ErrDataUnavailable)
	})

	t.Run("snapshots of another epoch", func(t *testing.T) {
		f := newFixture(t)
		snapshots := testSnapshots()
		snapshots.Epoch = targetEpoch - 1

		_, err := f.service().Reconcile(t.Context(), testBond(), testEpochContext(), snapshots)
		require.ErrorIs(t, err, types.ErrInvariantViolation)
	})

	t.Run("calculator failure fails the report", func(t *testing.T) {
		f := newFixture(t)
		position := &types.StakePosition{
			Pubkey:   stakeAccount,
			Lamports: 1_050_000 + rentExemptReserve,
			Meta:     &types.StakeMeta{RentExemptReserve: rentExemptReserve},
			Delegation: &types.Delegation{
				Stake:             1_050_000,
				ActivationEpoch:   500,
				DeactivationEpoch: types.NoEpoch,
			},
		}
		f.solana.On("GetStakeHistory", mock.Anything).Return(types.StakeHistory{}, nil).Once()
		f.solana.On("GetStakePosition", mock.Anything, stakeAccount).Return(position, nil).Once()
		f.solana.On("GetInflationRewards", mock.Anything, []types.PublicKey{stakeAccount}, targetEpoch).
			Return([]*types.InflationReward{nil}, nil).Once()
		f.solana.On("GetInflationRewards", mock.Anything, []types.PublicKey{stakeAccount}, targetEpoch).
			Return(nil, types.NewTransportError("getInflationReward", errors.New("connection refused"))).Once()

		_, err := f.service().Reconcile(t.Context(), testBond(), testEpochContext(), testSnapshots())
		require.ErrorIs(t, err, types.ErrTransportFailure)
	})

	t.Run("aggregator failure", func(t *testing.T) {
		f := newFixture(t)
		f.solana.On("GetStakeHistory", mock.Anything).
			Return(nil, types.NewTransportError("getAccountInfo", errors.New("timeout"))).Once()

		_, err := f.service().Reconcile(t.Context(), testBond(), testEpochContext(), testSnapshots())
		require.ErrorIs(t, err, types.ErrTransportFailure)
	})
}

func TestSettleBond(t *testing.T) {
	isReport := mock.MatchedBy(func(report *types.ExcessRewardReport) bool {
		return report.Bond == bondKey && report.Total == 22_763
	})

	t.Run("settled", func(t *testing.T) {
		f := newFixture(t)
		f.expectBondReads(stakeAccount)
		bond := testBond()
		f.observer.On("ObserveReport", mock.Anything, isReport).Return(nil).Once()
		f.ledger.On("HasSettlement", mock.Anything, bondKey, targetEpoch).Return(false, nil).Once()
		f.confirmer.On("Confirm", mock.Anything, isReport).Return(true, nil).Once()
		f.settler.On("Settle", mock.Anything, bond, uint64(22_763)).Return("sig", nil).Once()
		f.ledger.On("RecordSettlement", mock.Anything, mock.MatchedBy(func(result *types.SettlementResult) bool {
			return result.Outcome == types.OutcomeSettled && result.Signature == "sig" && result.Report.Total == 22_763
		})).Return(nil).Once()

		result, err := f.service().SettleBond(t.Context(), bond, testEpochContext(), testSnapshots())
		require.NoError(t, err)
		assert.Equal(t, types.OutcomeSettled, result.Outcome)
		assert.Equal(t, "sig", result.Signature)
	})

	t.Run("dry run never settles", func(t *testing.T) {
		f := newFixture(t)
		f.cfg.Settlement.DryRun = true
		f.expectBondReads(stakeAccount)
		f.observer.On("ObserveReport", mock.Anything, isReport).Return(nil).Once()

		result, err := f.service().SettleBond(t.Context(), testBond(), testEpochContext(), testSnapshots())
		require.NoError(t, err)
		assert.Equal(t, types.OutcomeDryRun, result.Outcome)
		assert.Empty(t, result.Signature)
		f.settler.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("nothing owed", func(t *testing.T) {
		f := newFixture(t)
		f.expectBondReads(stakeAccount)
		bond := testBond()
		bond.Commissions = types.RewardCommissions{}
		f.observer.On("ObserveReport", mock.Anything, mock.Anything).Return(nil).Once()

		result, err := f.service().SettleBond(t.Context(), bond, testEpochContext(), testSnapshots())
		require.NoError(t, err)
		assert.Equal(t, types.OutcomeNoSettlementDue, result.Outcome)
		assert.Zero(t, result.Report.Total)
	})

	t.Run("already settled", func(t *testing.T) {
		f := newFixture(t)
		f.expectBondReads(stakeAccount)
		f.observer.On("ObserveReport", mock.Anything, isReport).Return(nil).Once()
		f.ledger.On("HasSettlement", mock.Anything, bondKey, targetEpoch).Return(true, nil).Once()

		result, err := f.service().SettleBond(t.Context(), testBond(), testEpochContext(), testSnapshots())
		require.NoError(t, err)
		assert.Equal(t, types.OutcomeAlreadySettled, result.Outcome)
	})

	t.Run("declined", func(t *testing.T) {
		f := newFixture(t)
		f.expectBondReads(stakeAccount)
		f.observer.On("ObserveReport", mock.Anything, isReport).Return(nil).Once()
		f.confirmer.On("Confirm", mock.Anything, isReport).Return(false, nil).Once()

		result, err := f.serviceWithoutLedger().SettleBond(t.Context(), testBond(), testEpochContext(), testSnapshots())
		require.NoError(t, err)
		assert.Equal(t, types.OutcomeDeclined, result.Outcome)
	})

	t.Run("interrupted confirmation is a decline", func(t *testing.T) {
		f := newFixture(t)
		f.expectBondReads(stakeAccount)
		f.observer.On("ObserveReport", mock.Anything, isReport).Return(nil).Once()
		f.confirmer.On("Confirm", mock.Anything, isReport).Return(false, types.ErrUserDeclined).Once()

		result, err := f.serviceWithoutLedger().SettleBond(t.Context(), testBond(), testEpochContext(), testSnapshots())
		require.NoError(t, err)
		assert.Equal(t, types.OutcomeDeclined, result.Outcome)
	})

	t.Run("observer failure does not block settlement", func(t *testing.T) {
		f := newFixture(t)
		f.expectBondReads(stakeAccount)
		bond := testBond()
		f.observer.On("ObserveReport", mock.Anything, isReport).Return(errors.New("queue down")).Once()
		f.confirmer.On("Confirm", mock.Anything, isReport).Return(true, nil).Once()
		f.settler.On("Settle", mock.Anything, bond, uint64(22_763)).Return("sig", nil).Once()

		result, err := f.serviceWithoutLedger().SettleBond(t.Context(), bond, testEpochContext(), testSnapshots())
		require.NoError(t, err)
		assert.Equal(t, types.OutcomeSettled, result.Outcome)
	})

	t.Run("settler failure", func(t *testing.T) {
		f := newFixture(t)
		f.expectBondReads(stakeAccount)
		bond := testBond()
		f.observer.On("ObserveReport", mock.Anything, isReport).Return(nil).Once()
		f.ledger.On("HasSettlement", mock.Anything, bondKey, targetEpoch).Return(false, nil).Once()
		f.confirmer.On("Confirm", mock.Anything, isReport).Return(true, nil).Once()
		f.settler.On("Settle", mock.Anything, bond, uint64(22_763)).
			Return("", types.NewTransportError("sendTransaction", errors.New("blockhash not found"))).Once()

		_, err := f.service().SettleBond(t.Context(), bond, testEpochContext(), testSnapshots())
		require.ErrorIs(t, err, types.ErrTransportFailure)
		f.ledger.AssertNotCalled(t, "RecordSettlement", mock.Anything, mock.Anything)
	})

	t.Run("ledger record failure keeps the settlement", func(t *testing.T) {
		f := newFixture(t)
		f.expectBondReads(stakeAccount)
		bond := testBond()
		f.observer.On("ObserveReport", mock.Anything, isReport).Return(nil).Once()
		f.ledger.On("HasSettlement", mock.Anything, bondKey, targetEpoch).Return(false, nil).Once()
		f.confirmer.On("Confirm", mock.Anything, isReport).Return(true, nil).Once()
		f.settler.On("Settle", mock.Anything, bond, uint64(22_763)).Return("sig", nil).Once()
		f.ledger.On("RecordSettlement", mock.Anything, mock.Anything).Return(errors.New("write conflict")).Once()

		result, err := f.service().SettleBond(t.Context(), bond, testEpochContext(), testSnapshots())
		require.NoError(t, err)
		assert.Equal(t, "sig", result.Signature)
	})

	t.Run("calculator failure never settles", func(t *testing.T) {
		f := newFixture(t)
		f.solana.On("GetStakeHistory", mock.Anything).Return(nil, errors.New("boom")).Once()

		_, err := f.service().SettleBond(t.Context(), testBond(), testEpochContext(), testSnapshots())
		require.Error(t, err)
		f.observer.AssertNotCalled(t, "ObserveReport", mock.Anything, mock.Anything)
		f.settler.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestFetchValidatorSnapshots(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		f := newFixture(t)
		f.expectSnapshotReads()

		snapshots, err := f.service().FetchValidatorSnapshots(t.Context(), voteAccount, targetEpoch)
		require.NoError(t, err)
		assert.Equal(t, uint64(2_000_000), snapshots.Mev.Tips)
		assert.Equal(t, uint64(500_000), snapshots.Block.TotalRewards)
		assert.Equal(t, 2, snapshots.Block.LeaderSlots)
	})

	t.Run("no mev snapshot reads the ledger stake", func(t *testing.T) {
		f := newFixture(t)
		f.expectBlockReads()
		f.mev.On("GetSnapshot", mock.Anything, voteAccount, targetEpoch).Return(nil, nil).Once()
		f.solana.On("GetVoteAccountStake", mock.Anything, voteAccount).Return(uint64(10_000_000), nil).Once()

		snapshots, err := f.service().FetchValidatorSnapshots(t.Context(), voteAccount, targetEpoch)
		require.NoError(t, err)
		assert.Nil(t, snapshots.Mev)
		assert.Equal(t, uint64(10_000_000), snapshots.ActiveStake)
	})

	t.Run("ledger stake failure", func(t *testing.T) {
		f := newFixture(t)
		f.expectBlockReads()
		f.mev.On("GetSnapshot", mock.Anything, voteAccount, targetEpoch).Return(nil, nil).Once()
		f.solana.On("GetVoteAccountStake", mock.Anything, voteAccount).
			Return(uint64(0), types.NewTransportError("getVoteAccounts", errors.New("reset"))).Once()

		_, err := f.service().FetchValidatorSnapshots(t.Context(), voteAccount, targetEpoch)
		require.ErrorIs(t, err, types.ErrTransportFailure)
	})

	t.Run("mev provider failure", func(t *testing.T) {
		f := newFixture(t)
		f.mev.On("GetSnapshot", mock.Anything, voteAccount, targetEpoch).
			Return(nil, types.NewTransportError("GetSnapshot", errors.New("503"))).Once()
		f.solana.On("GetVoteIdentity", mock.Anything, voteAccount).Return(identity, nil).Maybe()
		f.solana.On("GetLeaderSlots", mock.Anything, identity, targetEpoch).Return([]uint64{}, nil).Maybe()

		_, err := f.service().FetchValidatorSnapshots(t.Context(), voteAccount, targetEpoch)
		require.ErrorIs(t, err, types.ErrTransportFailure)
	})

	t.Run("every leader slot failed", func(t *testing.T) {
		f := newFixture(t)
		f.mev.On("GetSnapshot", mock.Anything, voteAccount, targetEpoch).Return(nil, nil).Maybe()
		f.solana.On("GetVoteIdentity", mock.Anything, voteAccount).Return(identity, nil).Once()
		f.solana.On("GetLeaderSlots", mock.Anything, identity, targetEpoch).Return([]uint64{10}, nil).Once()
		f.solana.On("GetBlockReward", mock.Anything, identity, uint64(10)).
			Return(nil, types.NewTransportError("getBlock", errors.New("reset"))).Once()

		_, err := f.service().FetchValidatorSnapshots(t.Context(), voteAccount, targetEpoch)
		require.ErrorIs(t, err, types.ErrTransportFailure)
	})
}
