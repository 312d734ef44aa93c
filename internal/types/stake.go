package types

import "math"

// NoEpoch marks an unset activation/deactivation epoch (u64::MAX on-chain).
const NoEpoch uint64 = math.MaxUint64

// Delegation is the delegation record of a stake account.
type Delegation struct {
	VoterPubkey       PublicKey
	Stake             uint64
	ActivationEpoch   uint64
	DeactivationEpoch uint64
}

// IsBootstrap reports whether the stake was part of the genesis set and is effective from the start.
func (d *Delegation) IsBootstrap() bool {
	return d.ActivationEpoch == NoEpoch
}

type StakeMeta struct {
	RentExemptReserve uint64
}

// StakePosition is a read-only snapshot of a stake account.
// Meta and Delegation are nil when the account is uninitialized or not delegated.
type StakePosition struct {
	Pubkey     PublicKey
	Lamports   uint64
	Meta       *StakeMeta
	Delegation *Delegation
}

type StakeActivationState string

const (
	StakeActive       StakeActivationState = "active"
	StakeActivating   StakeActivationState = "activating"
	StakeDeactivating StakeActivationState = "deactivating"
	StakeInactive     StakeActivationState = "inactive"
)

func (s StakeActivationState) String() string {
	return string(s)
}

// StakeActivationStatus describes a stake position as of one epoch.
type StakeActivationStatus struct {
	Effective    uint64
	Activating   uint64
	Deactivating uint64
	Inactive     uint64
	State        StakeActivationState
}

// StakeHistoryEntry holds cluster-wide stake totals for one epoch.
type StakeHistoryEntry struct {
	Effective    uint64 `json:"effective"`
	Activating   uint64 `json:"activating"`
	Deactivating uint64 `json:"deactivating"`
}

// StakeHistory is the content of the stake history sysvar keyed by epoch.
type StakeHistory map[uint64]StakeHistoryEntry

func (h StakeHistory) Get(epoch uint64) (StakeHistoryEntry, bool) {
	entry, ok := h[epoch]
	return entry, ok
}
