package solanaclient

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/pyefi/excess-rewards-keeper/internal/config"
	"github.com/pyefi/excess-rewards-keeper/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rpcRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

type rpcErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// rpcHandler answers one JSON-RPC method; it returns either a result or an error.
type rpcHandler func(t *testing.T, params []json.RawMessage) (any, *rpcErrorBody)

type fakeNode struct {
	t        *testing.T
	mu       sync.Mutex
	handlers map[string]rpcHandler
	calls    map[string]int
	status   int
}

func newFakeNode(t *testing.T) *fakeNode {
	return &fakeNode{t: t, handlers: map[string]rpcHandler{}, calls: map[string]int{}}
}

func (n *fakeNode) handle(method string, h rpcHandler) {
	n.handlers[method] = h
}

func (n *fakeNode) callCount(method string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls[method]
}

func (n *fakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	require.NoError(n.t, json.NewDecoder(r.Body).Decode(&req))

	n.mu.Lock()
	n.calls[req.Method]++
	status := n.status
	h, ok := n.handlers[req.Method]
	n.mu.Unlock()

	if status != 0 {
		w.WriteHeader(status)
		return
	}

	resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
	if !ok {
		resp["error"] = rpcErrorBody{Code: -32601, Message: "Method not found"}
	} else if result, rpcErr := h(n.t, req.Params); rpcErr != nil {
		resp["error"] = rpcErr
	} else {
		resp["result"] = result
	}

	w.Header().Set("Content-Type", "application/json")
	require.NoError(n.t, json.NewEncoder(w).Encode(resp))
}

func setupClient(t *testing.T, node *fakeNode) *SolanaClient {
	server := httptest.NewServer(node)
	t.Cleanup(server.Close)

	cfg := &config.SolanaConfig{
		RPCAddr:       server.URL,
		Timeout:       5 * time.Second,
		MaxRetryTimes: 3,
		RetryInterval: time.Millisecond,
		Commitment:    "confirmed",
	}
	client, err := NewSolanaClient(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(client.Close)
	return client
}

func decodeParam[T any](t *testing.T, raw json.RawMessage) T {
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

var mainnetSchedule = map[string]any{
	"slotsPerEpoch":            432000,
	"leaderScheduleSlotOffset": 432000,
	"warmup":                   false,
	"firstNormalEpoch":         0,
	"firstNormalSlot":          0,
}

func TestGetEpochInfo(t *testing.T) {
	node := newFakeNode(t)
	node.handle("getEpochInfo", func(t *testing.T, params []json.RawMessage) (any, *rpcErrorBody) {
		require.Len(t, params, 1)
		opts := decodeParam[map[string]string](t, params[0])
		assert.Equal(t, "confirmed", opts["commitment"])
		return map[string]any{
			"epoch":        601,
			"slotIndex":    1200,
			"slotsInEpoch": 432000,
			"absoluteSlot": 259633200,
			"blockHeight":  238000000,
		}, nil
	})
	client := setupClient(t, node)

	info, err := client.GetEpochInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(601), info.Epoch)
	assert.Equal(t, uint64(259633200), info.AbsoluteSlot)
}

func TestGetStakePosition(t *testing.T) {
	stakeKey := types.PublicKey{1}
	voter := types.PublicKey{2}

	t.Run("delegated stake with string encoded integers", func(t *testing.T) {
		node := newFakeNode(t)
		node.handle("getAccountInfo", func(t *testing.T, params []json.RawMessage) (any, *rpcErrorBody) {
			assert.Equal(t, stakeKey.String(), decodeParam[string](t, params[0]))
			opts := decodeParam[map[string]string](t, params[1])
			assert.Equal(t, "jsonParsed", opts["encoding"])
			return map[string]any{
				"context": map[string]any{"slot": 1},
				"value": map[string]any{
					"lamports": 1_002_282_880,
					"owner":    "Stake11111111111111111111111111111111111111",
					"data": map[string]any{
						"program": "stake",
						"parsed": map[string]any{
							"type": "delegated",
							"info": map[string]any{
								"meta": map[string]any{"rentExemptReserve": "2282880"},
								"stake": map[string]any{
									"delegation": map[string]any{
										"voter":             voter.String(),
										"stake":             "1000000000",
										"activationEpoch":   "500",
										"deactivationEpoch": "18446744073709551615",
									},
								},
							},
						},
					},
				},
			}, nil
		})
		client := setupClient(t, node)

		position, err := client.GetStakePosition(context.Background(), stakeKey)
		require.NoError(t, err)
		assert.Equal(t, stakeKey, position.Pubkey)
		assert.Equal(t, uint64(1_002_282_880), position.Lamports)
		require.NotNil(t, position.Meta)
		assert.Equal(t, uint64(2_282_880), position.Meta.RentExemptReserve)
		require.NotNil(t, position.Delegation)
		assert.Equal(t, voter, position.Delegation.VoterPubkey)
		assert.Equal(t, uint64(1_000_000_000), position.Delegation.Stake)
		assert.Equal(t, uint64(500), position.Delegation.ActivationEpoch)
		assert.Equal(t, types.NoEpoch, position.Delegation.DeactivationEpoch)
	})

	t.Run("initialized but not delegated", func(t *testing.T) {
		node := newFakeNode(t)
		node.handle("getAccountInfo", func(t *testing.T, params []json.RawMessage) (any, *rpcErrorBody) {
			return map[string]any{
				"context": map[string]any{"slot": 1},
				"value": map[string]any{
					"lamports": 2282880,
					"data": map[string]any{
						"program": "stake",
						"parsed": map[string]any{
							"type": "initialized",
							"info": map[string]any{"meta": map[string]any{"rentExemptReserve": 2282880}},
						},
					},
				},
			}, nil
		})
		client := setupClient(t, node)

		position, err := client.GetStakePosition(context.Background(), stakeKey)
		require.NoError(t, err)
		assert.NotNil(t, position.Meta)
		assert.Nil(t, position.Delegation)
	})

	t.Run("account not found", func(t *testing.T) {
		node := newFakeNode(t)
		node.handle("getAccountInfo", func(t *testing.T, params []json.RawMessage) (any, *rpcErrorBody) {
			return map[string]any{"context": map[string]any{"slot": 1}, "value": nil}, nil
		})
		client := setupClient(t, node)

		_, err := client.GetStakePosition(context.Background(), stakeKey)
		require.ErrorIs(t, err, types.ErrDataUnavailable)
	})
}

func TestGetStakeHistory(t *testing.T) {
	node := newFakeNode(t)
	node.handle("getAccountInfo", func(t *testing.T, params []json.RawMessage) (any, *rpcErrorBody) {
		assert.Equal(t, stakeHistorySysvar, decodeParam[string](t, params[0]))
		return map[string]any{
			"context": map[string]any{"slot": 1},
			"value": map[string]any{
				"lamports": 1,
				"data": map[string]any{
					"program": "sysvar",
					"parsed": map[string]any{
						"type": "stakeHistory",
						"info": []map[string]any{
							{"epoch": 600, "stakeHistory": map[string]any{"effective": 400, "activating": 20, "deactivating": 10}},
							{"epoch": 599, "stakeHistory": map[string]any{"effective": 390, "activating": 0, "deactivating": 0}},
						},
					},
				},
			},
		}, nil
	})
	client := setupClient(t, node)

	history, err := client.GetStakeHistory(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 2)
	entry, ok := history.Get(600)
	require.True(t, ok)
	assert.Equal(t, types.StakeHistoryEntry{Effective: 400, Activating: 20, Deactivating: 10}, entry)
	_, ok = history.Get(598)
	assert.False(t, ok)
}

func TestGetInflationRewards(t *testing.T) {
	keys := []types.PublicKey{{1}, {2}}
	node := newFakeNode(t)
	node.handle("getInflationReward", func(t *testing.T, params []json.RawMessage) (any, *rpcErrorBody) {
		addresses := decodeParam[[]string](t, params[0])
		assert.Equal(t, []string{keys[0].String(), keys[1].String()}, addresses)
		opts := decodeParam[map[string]any](t, params[1])
		assert.EqualValues(t, 600, opts["epoch"])
		return []any{
			map[string]any{"epoch": 600, "effectiveSlot": 259632000, "amount": 50000, "postBalance": 1050000, "commission": 5},
			nil,
		}, nil
	})
	client := setupClient(t, node)

	rewards, err := client.GetInflationRewards(context.Background(), keys, 600)
	require.NoError(t, err)
	require.Len(t, rewards, 2)
	require.NotNil(t, rewards[0])
	assert.Equal(t, uint64(50000), rewards[0].Amount)
	require.NotNil(t, rewards[0].Commission)
	assert.Equal(t, uint8(5), *rewards[0].Commission)
	assert.Nil(t, rewards[1])
}

func TestGetVoteAccountStake(t *testing.T) {
	vote := types.PublicKey{7}
	delinquent := types.PublicKey{8}

	node := newFakeNode(t)
	node.handle("getVoteAccounts", func(t *testing.T, params []json.RawMessage) (any, *rpcErrorBody) {
		opts := decodeParam[map[string]any](t, params[0])
		assert.Equal(t, "confirmed", opts["commitment"])
		assert.Equal(t, true, opts["keepUnstakedDelinquents"])

		status := func(key types.PublicKey, stake uint64) map[string]any {
			return map[string]any{"votePubkey": key.String(), "nodePubkey": types.PublicKey{9}.String(), "activatedStake": stake, "commission": 5}
		}
		switch opts["votePubkey"] {
		case vote.String():
			return map[string]any{"current": []any{status(vote, 10_000_000)}, "delinquent": []any{}}, nil
		case delinquent.String():
			return map[string]any{"current": []any{}, "delinquent": []any{status(delinquent, 42)}}, nil
		default:
			return map[string]any{"current": []any{}, "delinquent": []any{}}, nil
		}
	})
	client := setupClient(t, node)

	stake, err := client.GetVoteAccountStake(context.Background(), vote)
	require.NoError(t, err)
	assert.Equal(t, uint64(10_000_000), stake)

	stake, err = client.GetVoteAccountStake(context.Background(), delinquent)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), stake)

	_, err = client.GetVoteAccountStake(context.Background(), types.PublicKey{1})
	require.ErrorIs(t, err, types.ErrDataUnavailable)
}

func TestGetLeaderSlots(t *testing.T) {
	identity := types.PublicKey{9}
	node := newFakeNode(t)
	node.handle("getEpochSchedule", func(t *testing.T, params []json.RawMessage) (any, *rpcErrorBody) {
		return mainnetSchedule, nil
	})
	node.handle("getLeaderSchedule", func(t *testing.T, params []json.RawMessage) (any, *rpcErrorBody) {
		assert.EqualValues(t, 259_200_000, decodeParam[uint64](t, params[0]))
		opts := decodeParam[map[string]string](t, params[1])
		assert.Equal(t, identity.String(), opts["identity"])
		return map[string][]uint64{identity.String(): {0, 1, 2, 3, 431_999}}, nil
	})
	client := setupClient(t, node)

	slots, err := client.GetLeaderSlots(context.Background(), identity, 600)
	require.NoError(t, err)
	assert.Equal(t, []uint64{259_200_000, 259_200_001, 259_200_002, 259_200_003, 259_631_999}, slots)

	_, err = client.GetLeaderSlots(context.Background(), identity, 600)
	require.NoError(t, err)
	assert.Equal(t, 1, node.callCount("getEpochSchedule"))
}

func TestGetBlockReward(t *testing.T) {
	identity := types.PublicKey{9}
	other := types.PublicKey{8}

	node := newFakeNode(t)
	node.handle("getBlock", func(t *testing.T, params []json.RawMessage) (any, *rpcErrorBody) {
		switch decodeParam[uint64](t, params[0]) {
		case 100:
			return map[string]any{
				"blockTime": 1700000000,
				"rewards": []map[string]any{
					{"pubkey": identity.String(), "lamports": 5000, "rewardType": "Fee"},
					{"pubkey": other.String(), "lamports": 7000, "rewardType": "Fee"},
					{"pubkey": identity.String(), "lamports": 100, "rewardType": "Rent"},
				},
			}, nil
		case 101:
			return nil, &rpcErrorBody{Code: errCodeSlotSkipped, Message: "Slot 101 was skipped"}
		case 102:
			return nil, &rpcErrorBody{Code: errCodeLongTermStorageSlotSkipped, Message: "Slot 102 was skipped"}
		default:
			return nil, &rpcErrorBody{Code: -32602, Message: "Invalid params"}
		}
	})
	client := setupClient(t, node)
	ctx := context.Background()

	reward, err := client.GetBlockReward(ctx, identity, 100)
	require.NoError(t, err)
	require.NotNil(t, reward)
	assert.Equal(t, uint64(5000), *reward)

	reward, err = client.GetBlockReward(ctx, identity, 101)
	require.NoError(t, err)
	assert.Nil(t, reward)

	reward, err = client.GetBlockReward(ctx, identity, 102)
	require.NoError(t, err)
	assert.Nil(t, reward)

	_, err = client.GetBlockReward(ctx, identity, 103)
	require.Error(t, err)
	assert.NotErrorIs(t, err, types.ErrTransportFailure)

	// skipped slots and invalid params are not retried
	assert.Equal(t, 4, node.callCount("getBlock"))
}

func TestRetries(t *testing.T) {
	t.Run("retryable rpc error", func(t *testing.T) {
		node := newFakeNode(t)
		attempts := 0
		node.handle("getBlockTime", func(t *testing.T, params []json.RawMessage) (any, *rpcErrorBody) {
			attempts++
			if attempts < 3 {
				return nil, &rpcErrorBody{Code: errCodeBlockNotAvailable, Message: "Block not available for slot"}
			}
			return 1700000000, nil
		})
		client := setupClient(t, node)

		blockTime, err := client.GetBlockTime(context.Background(), 259_631_999)
		require.NoError(t, err)
		require.NotNil(t, blockTime)
		assert.Equal(t, time.Unix(1700000000, 0).UTC(), *blockTime)
		assert.Equal(t, 3, node.callCount("getBlockTime"))
	})

	t.Run("http failure exhausts attempts", func(t *testing.T) {
		node := newFakeNode(t)
		node.status = http.StatusServiceUnavailable
		client := setupClient(t, node)

		_, err := client.GetEpochInfo(context.Background())
		require.ErrorIs(t, err, types.ErrTransportFailure)
		assert.Contains(t, err.Error(), "getEpochInfo")
		assert.Equal(t, 3, node.callCount("getEpochInfo"))
	})
}

func TestGetBondsByVoteAccount(t *testing.T) {
	programID := types.PublicKey{7}
	vote := types.PublicKey{2}
	bond := &types.Bond{
		Pubkey:       types.PublicKey{3},
		Owner:        types.PublicKey{4},
		VoteAccount:  vote,
		StakeAccount: types.PublicKey{5},
		Commissions:  types.RewardCommissions{InflationBps: 1000, MevTipsBps: 500, BlockRewardsBps: 250},
		MaturityTs:   1_800_000_000,
	}

	node := newFakeNode(t)
	node.handle("getProgramAccounts", func(t *testing.T, params []json.RawMessage) (any, *rpcErrorBody) {
		assert.Equal(t, programID.String(), decodeParam[string](t, params[0]))

		var opts struct {
			Encoding string `json:"encoding"`
			Filters  []struct {
				Memcmp struct {
					Offset int    `json:"offset"`
					Bytes  string `json:"bytes"`
				} `json:"memcmp"`
			} `json:"filters"`
		}
		require.NoError(t, json.Unmarshal(params[1], &opts))
		assert.Equal(t, "base64", opts.Encoding)
		require.Len(t, opts.Filters, 2)
		assert.Equal(t, 0, opts.Filters[0].Memcmp.Offset)
		assert.Equal(t, bondVoteOffset, opts.Filters[1].Memcmp.Offset)
		assert.Equal(t, vote.String(), opts.Filters[1].Memcmp.Bytes)

		return []map[string]any{{
			"pubkey": bond.Pubkey.String(),
			"account": map[string]any{
				"lamports": 1,
				"owner":    programID.String(),
				"data":     []string{base64.StdEncoding.EncodeToString(EncodeBond(bond, 254)), "base64"},
			},
		}}, nil
	})
	client := setupClient(t, node)

	bonds, err := client.GetBondsByVoteAccount(context.Background(), programID, vote)
	require.NoError(t, err)
	require.Len(t, bonds, 1)
	assert.Equal(t, bond, bonds[0])
	assert.False(t, bonds[0].HasTransientStakeAccount())
}

func TestSendAndConfirmTransaction(t *testing.T) {
	raw := []byte{1, 2, 3}
	node := newFakeNode(t)
	node.handle("sendTransaction", func(t *testing.T, params []json.RawMessage) (any, *rpcErrorBody) {
		assert.Equal(t, base64.StdEncoding.EncodeToString(raw), decodeParam[string](t, params[0]))
		return "5sig", nil
	})
	node.handle("getSignatureStatuses", func(t *testing.T, params []json.RawMessage) (any, *rpcErrorBody) {
		sigs := decodeParam[[]string](t, params[0])
		if sigs[0] == "unknown" {
			return map[string]any{"context": map[string]any{"slot": 1}, "value": []any{nil}}, nil
		}
		return map[string]any{
			"context": map[string]any{"slot": 1},
			"value": []any{map[string]any{
				"slot":               10,
				"confirmations":      nil,
				"err":                nil,
				"confirmationStatus": "finalized",
			}},
		}, nil
	})
	client := setupClient(t, node)
	ctx := context.Background()

	sig, err := client.SendTransaction(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, "5sig", sig)

	status, err := client.GetSignatureStatus(ctx, sig)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.True(t, status.IsConfirmed())
	assert.False(t, status.Failed())

	status, err = client.GetSignatureStatus(ctx, "unknown")
	require.NoError(t, err)
	assert.Nil(t, status)
}

func TestSignatureStatus(t *testing.T) {
	failed := &SignatureStatus{Err: json.RawMessage(`{"InstructionError":[0,"Custom"]}`), ConfirmationStatus: "processed"}
	assert.True(t, failed.Failed())
	assert.False(t, failed.IsConfirmed())

	ok := &SignatureStatus{Err: json.RawMessage(`null`), ConfirmationStatus: "confirmed"}
	assert.False(t, ok.Failed())
	assert.True(t, ok.IsConfirmed())
}
