package transactions

import (
	"encoding/binary"

	"github.com/pyefi/excess-rewards-keeper/internal/types"
	"github.com/pyefi/excess-rewards-keeper/internal/utils"
)

var (
	SystemProgramID    = types.MustPublicKeyFromBase58("11111111111111111111111111111111")
	StakeProgramID     = types.MustPublicKeyFromBase58("Stake11111111111111111111111111111111111111")
	StakeConfigID      = types.MustPublicKeyFromBase58("StakeConfig11111111111111111111111111111111")
	SysvarClockID      = types.MustPublicKeyFromBase58("SysvarC1ock11111111111111111111111111111111")
	SysvarStakeHistory = types.MustPublicKeyFromBase58("SysvarStakeHistory1111111111111111111111111")
	SysvarRentID       = types.MustPublicKeyFromBase58("SysvarRent111111111111111111111111111111111")
)

const (
	systemTransferIndex     = 2
	delegateTipsInstruction = "solo_validator_delegate_tips"
	globalSettingsSeed      = "global_settings"
)

type AccountMeta struct {
	PublicKey  types.PublicKey
	IsSigner   bool
	IsWritable bool
}

func Writable(key types.PublicKey, signer bool) AccountMeta {
	return AccountMeta{PublicKey: key, IsSigner: signer, IsWritable: true}
}

func Readonly(key types.PublicKey, signer bool) AccountMeta {
	return AccountMeta{PublicKey: key, IsSigner: signer}
}

type Instruction struct {
	ProgramID types.PublicKey
	Accounts  []AccountMeta
	Data      []byte
}

// SystemTransfer moves lamports between two system accounts; from signs.
func SystemTransfer(from, to types.PublicKey, lamports uint64) Instruction {
	data := make([]byte, 12)
	binary.LittleEndian.PutUint32(data, systemTransferIndex)
	binary.LittleEndian.PutUint64(data[4:], lamports)

	return Instruction{
		ProgramID: SystemProgramID,
		Accounts: []AccountMeta{
			Writable(from, true),
			Writable(to, false),
		},
		Data: data,
	}
}

// GlobalSettingsAddress is the program wide settings account of the bonds program.
func GlobalSettingsAddress(programID types.PublicKey) (types.PublicKey, error) {
	address, _, err := FindProgramAddress([][]byte{[]byte(globalSettingsSeed)}, programID)
	return address, err
}

// DelegateTips delegates the lamports sitting undelegated in the bond's stake account through the
// transient stake account. The transient account signs when it is being created.
func DelegateTips(
	programID types.PublicKey, bond *types.Bond, transient types.PublicKey, transientIsSigner bool,
) (Instruction, error) {
	globalSettings, err := GlobalSettingsAddress(programID)
	if err != nil {
		return Instruction{}, err
	}

	discriminator := utils.AnchorInstructionDiscriminator(delegateTipsInstruction)
	return Instruction{
		ProgramID: programID,
		Accounts: []AccountMeta{
			Writable(bond.Pubkey, false),
			Readonly(bond.VoteAccount, false),
			Writable(bond.StakeAccount, false),
			Readonly(globalSettings, false),
			Readonly(SysvarClockID, false),
			Readonly(StakeProgramID, false),
			Readonly(SysvarStakeHistory, false),
			Readonly(StakeConfigID, false),
			Readonly(SysvarRentID, false),
			Readonly(SystemProgramID, false),
			Writable(transient, transientIsSigner),
			Readonly(programID, false),
		},
		Data: discriminator[:],
	}, nil
}
