package solanaclient

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pyefi/excess-rewards-keeper/internal/types"
)

// u64 decodes integers that jsonParsed accounts render either as numbers or as strings.
type u64 uint64

func (v *u64) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid u64 %q: %w", s, err)
		}
		*v = u64(n)
		return nil
	}

	var n uint64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = u64(n)
	return nil
}

type rpcContext struct {
	Slot uint64 `json:"slot"`
}

type accountInfoResult[T any] struct {
	Context rpcContext      `json:"context"`
	Value   *accountInfo[T] `json:"value"`
}

type accountInfo[T any] struct {
	Lamports   uint64 `json:"lamports"`
	Owner      string `json:"owner"`
	Executable bool   `json:"executable"`
	Data       T      `json:"data"`
}

type parsedData[T any] struct {
	Program string `json:"program"`
	Parsed  struct {
		Type string `json:"type"`
		Info T      `json:"info"`
	} `json:"parsed"`
}

// base64Data is the ["<payload>", "base64"] pair returned for base64 encoded accounts.
type base64Data []byte

func (d *base64Data) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 || pair[1] != "base64" {
		return fmt.Errorf("unexpected account data encoding %v", pair)
	}
	bz, err := base64.StdEncoding.DecodeString(pair[0])
	if err != nil {
		return err
	}
	*d = bz
	return nil
}

type stakeAccountInfo struct {
	Meta *struct {
		RentExemptReserve u64 `json:"rentExemptReserve"`
	} `json:"meta"`
	Stake *struct {
		Delegation struct {
			Voter             string `json:"voter"`
			Stake             u64    `json:"stake"`
			ActivationEpoch   u64    `json:"activationEpoch"`
			DeactivationEpoch u64    `json:"deactivationEpoch"`
		} `json:"delegation"`
	} `json:"stake"`
}

type stakeHistoryInfo []struct {
	Epoch        u64 `json:"epoch"`
	StakeHistory struct {
		Effective    u64 `json:"effective"`
		Activating   u64 `json:"activating"`
		Deactivating u64 `json:"deactivating"`
	} `json:"stakeHistory"`
}

type voteAccountInfo struct {
	NodePubkey string `json:"nodePubkey"`
}

type blockRewards struct {
	BlockTime *int64 `json:"blockTime"`
	Rewards   []struct {
		Pubkey     string `json:"pubkey"`
		Lamports   int64  `json:"lamports"`
		RewardType string `json:"rewardType"`
	} `json:"rewards"`
}

type programAccount struct {
	Pubkey  string                  `json:"pubkey"`
	Account accountInfo[base64Data] `json:"account"`
}

type latestBlockhashResult struct {
	Context rpcContext `json:"context"`
	Value   struct {
		Blockhash            string `json:"blockhash"`
		LastValidBlockHeight uint64 `json:"lastValidBlockHeight"`
	} `json:"value"`
}

// SignatureStatus is the cluster view of a submitted transaction.
type SignatureStatus struct {
	Slot               uint64          `json:"slot"`
	Confirmations      *uint64         `json:"confirmations"`
	Err                json.RawMessage `json:"err"`
	ConfirmationStatus string          `json:"confirmationStatus"`
}

// Failed reports whether the transaction landed but its execution failed.
func (s *SignatureStatus) Failed() bool {
	return len(s.Err) > 0 && string(s.Err) != "null"
}

// IsConfirmed reports whether the transaction reached at least confirmed commitment.
func (s *SignatureStatus) IsConfirmed() bool {
	return s.ConfirmationStatus == "confirmed" || s.ConfirmationStatus == "finalized"
}

type signatureStatusesResult struct {
	Context rpcContext         `json:"context"`
	Value   []*SignatureStatus `json:"value"`
}

func (info *stakeAccountInfo) toStakePosition(key types.PublicKey, lamports uint64) (*types.StakePosition, error) {
	position := &types.StakePosition{
		Pubkey:   key,
		Lamports: lamports,
	}
	if info.Meta != nil {
		position.Meta = &types.StakeMeta{RentExemptReserve: uint64(info.Meta.RentExemptReserve)}
	}
	if info.Stake != nil {
		voter, err := types.PublicKeyFromBase58(info.Stake.Delegation.Voter)
		if err != nil {
			return nil, fmt.Errorf("invalid delegation voter: %w", err)
		}
		position.Delegation = &types.Delegation{
			VoterPubkey:       voter,
			Stake:             uint64(info.Stake.Delegation.Stake),
			ActivationEpoch:   uint64(info.Stake.Delegation.ActivationEpoch),
			DeactivationEpoch: uint64(info.Stake.Delegation.DeactivationEpoch),
		}
	}
	return position, nil
}

func (info stakeHistoryInfo) toStakeHistory() types.StakeHistory {
	history := make(types.StakeHistory, len(info))
	for _, entry := range info {
		history[uint64(entry.Epoch)] = types.StakeHistoryEntry{
			Effective:    uint64(entry.StakeHistory.Effective),
			Activating:   uint64(entry.StakeHistory.Activating),
			Deactivating: uint64(entry.StakeHistory.Deactivating),
		}
	}
	return history
}

type voteAccountsResult struct {
	Current    []voteAccountStatus `json:"current"`
	Delinquent []voteAccountStatus `json:"delinquent"`
}

type voteAccountStatus struct {
	VotePubkey     string `json:"votePubkey"`
	NodePubkey     string `json:"nodePubkey"`
	ActivatedStake u64    `json:"activatedStake"`
	Commission     uint8  `json:"commission"`
}
