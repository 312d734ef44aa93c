package solanaclient

import (
	"encoding/binary"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/pyefi/excess-rewards-keeper/internal/types"
	"github.com/pyefi/excess-rewards-keeper/internal/utils"
)

// Solo validator bond account layout, little-endian:
//
//	[0..8)     anchor discriminator
//	[8..40)    owner
//	[40..72)   validator vote account
//	[72..104)  stake account
//	[104..136) transient stake account, zero when unset
//	[136..138) inflation commission bps
//	[138..140) mev tips commission bps
//	[140..142) block rewards commission bps
//	[142..150) maturity unix timestamp
//	[150]      bump
const (
	bondOwnerOffset       = utils.AnchorDiscriminatorLength
	bondVoteOffset        = bondOwnerOffset + types.PublicKeyLength
	bondStakeOffset       = bondVoteOffset + types.PublicKeyLength
	bondTransientOffset   = bondStakeOffset + types.PublicKeyLength
	bondCommissionsOffset = bondTransientOffset + types.PublicKeyLength
	bondMaturityOffset    = bondCommissionsOffset + 6
	bondBumpOffset        = bondMaturityOffset + 8

	BondAccountSize = bondBumpOffset + 1
)

const bondAccountName = "SoloValidatorBond"

var bondDiscriminator = utils.AnchorAccountDiscriminator(bondAccountName)

// DecodeBond parses the raw data of a solo validator bond account.
func DecodeBond(key types.PublicKey, data []byte) (*types.Bond, error) {
	if len(data) < BondAccountSize {
		return nil, fmt.Errorf("bond account %s too small: %d bytes", key, len(data))
	}
	if [utils.AnchorDiscriminatorLength]byte(data[:bondOwnerOffset]) != bondDiscriminator {
		return nil, fmt.Errorf("account %s is not a %s", key, bondAccountName)
	}

	bond := &types.Bond{
		Pubkey:                key,
		Owner:                 types.PublicKey(data[bondOwnerOffset:bondVoteOffset]),
		VoteAccount:           types.PublicKey(data[bondVoteOffset:bondStakeOffset]),
		StakeAccount:          types.PublicKey(data[bondStakeOffset:bondTransientOffset]),
		TransientStakeAccount: types.PublicKey(data[bondTransientOffset:bondCommissionsOffset]),
		Commissions: types.RewardCommissions{
			InflationBps:    binary.LittleEndian.Uint16(data[bondCommissionsOffset:]),
			MevTipsBps:      binary.LittleEndian.Uint16(data[bondCommissionsOffset+2:]),
			BlockRewardsBps: binary.LittleEndian.Uint16(data[bondCommissionsOffset+4:]),
		},
		MaturityTs: int64(binary.LittleEndian.Uint64(data[bondMaturityOffset:])),
	}
	if err := bond.Commissions.Validate(); err != nil {
		return nil, fmt.Errorf("bond %s: %w", key, err)
	}
	return bond, nil
}

// EncodeBond is the inverse of DecodeBond.
func EncodeBond(bond *types.Bond, bump uint8) []byte {
	data := make([]byte, BondAccountSize)
	copy(data, bondDiscriminator[:])
	copy(data[bondOwnerOffset:], bond.Owner[:])
	copy(data[bondVoteOffset:], bond.VoteAccount[:])
	copy(data[bondStakeOffset:], bond.StakeAccount[:])
	copy(data[bondTransientOffset:], bond.TransientStakeAccount[:])
	binary.LittleEndian.PutUint16(data[bondCommissionsOffset:], bond.Commissions.InflationBps)
	binary.LittleEndian.PutUint16(data[bondCommissionsOffset+2:], bond.Commissions.MevTipsBps)
	binary.LittleEndian.PutUint16(data[bondCommissionsOffset+4:], bond.Commissions.BlockRewardsBps)
	binary.LittleEndian.PutUint64(data[bondMaturityOffset:], uint64(bond.MaturityTs))
	data[bondBumpOffset] = bump
	return data
}

func bondFilters(voteAccount types.PublicKey) []map[string]any {
	return []map[string]any{
		{"memcmp": map[string]any{"offset": 0, "bytes": base58.Encode(bondDiscriminator[:])}},
		{"memcmp": map[string]any{"offset": bondVoteOffset, "bytes": voteAccount.String()}},
	}
}
