package solanaclient

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pyefi/excess-rewards-keeper/internal/config"
	"github.com/pyefi/excess-rewards-keeper/internal/types"
	"github.com/rs/zerolog/log"
)

// JSON-RPC error codes returned by Solana nodes.
const (
	errCodeBlockNotAvailable          = -32004
	errCodeNodeUnhealthy              = -32005
	errCodeSlotSkipped                = -32007
	errCodeLongTermStorageSlotSkipped = -32009
	errCodeBlockStatusNotAvailableYet = -32014
	errCodeMinContextSlotNotReached   = -32016
	errCodeEpochRewardsPeriodActive   = -32017
)

const (
	stakeHistorySysvar = "SysvarStakeHistory1111111111111111111111111"
	stakeProgramName   = "stake"
	voteProgramName    = "vote"
	feeRewardType      = "Fee"
)

type SolanaClient struct {
	rpcClient *rpc.Client
	cfg       *config.SolanaConfig

	scheduleMu sync.Mutex
	schedule   *types.EpochSchedule
}

func NewSolanaClient(ctx context.Context, cfg *config.SolanaConfig) (*SolanaClient, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	rpcClient, err := rpc.DialOptions(ctx, cfg.RPCAddr, rpc.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to dial solana rpc %s: %w", cfg.RPCAddr, err)
	}
	return &SolanaClient{rpcClient: rpcClient, cfg: cfg}, nil
}

func (c *SolanaClient) Close() {
	c.rpcClient.Close()
}

func (c *SolanaClient) GetEpochInfo(ctx context.Context) (*types.EpochInfo, error) {
	var info types.EpochInfo
	if err := c.call(ctx, &info, "getEpochInfo", c.commitment()); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetEpochSchedule is cached after the first successful call, the schedule never changes on a cluster.
func (c *SolanaClient) GetEpochSchedule(ctx context.Context) (*types.EpochSchedule, error) {
	c.scheduleMu.Lock()
	defer c.scheduleMu.Unlock()

	if c.schedule != nil {
		schedule := *c.schedule
		return &schedule, nil
	}

	var schedule types.EpochSchedule
	if err := c.call(ctx, &schedule, "getEpochSchedule"); err != nil {
		return nil, err
	}
	if schedule.SlotsPerEpoch == 0 {
		return nil, fmt.Errorf("%w: epoch schedule has zero slots per epoch", types.ErrInvariantViolation)
	}
	c.schedule = &schedule
	result := schedule
	return &result, nil
}

func (c *SolanaClient) GetStakePosition(ctx context.Context, key types.PublicKey) (*types.StakePosition, error) {
	var result accountInfoResult[parsedData[stakeAccountInfo]]
	if err := c.call(ctx, &result, "getAccountInfo", key.String(), c.jsonParsed()); err != nil {
		return nil, err
	}
	if result.Value == nil {
		return nil, fmt.Errorf("%w: stake account %s not found", types.ErrDataUnavailable, key)
	}
	if result.Value.Data.Program != stakeProgramName {
		return nil, fmt.Errorf("%w: account %s is owned by %q, not the stake program",
			types.ErrDataUnavailable, key, result.Value.Data.Program)
	}
	return result.Value.Data.Parsed.Info.toStakePosition(key, result.Value.Lamports)
}

func (c *SolanaClient) GetStakeHistory(ctx context.Context) (types.StakeHistory, error) {
	var result accountInfoResult[parsedData[stakeHistoryInfo]]
	if err := c.call(ctx, &result, "getAccountInfo", stakeHistorySysvar, c.jsonParsed()); err != nil {
		return nil, err
	}
	if result.Value == nil {
		return nil, fmt.Errorf("%w: stake history sysvar not found", types.ErrDataUnavailable)
	}
	return result.Value.Data.Parsed.Info.toStakeHistory(), nil
}

func (c *SolanaClient) GetInflationRewards(
	ctx context.Context, keys []types.PublicKey, epoch uint64,
) ([]*types.InflationReward, error) {
	addresses := make([]string, len(keys))
	for i, key := range keys {
		addresses[i] = key.String()
	}

	var rewards []*types.InflationReward
	opts := map[string]any{"epoch": epoch, "commitment": c.rewardsCommitment()}
	if err := c.call(ctx, &rewards, "getInflationReward", addresses, opts); err != nil {
		return nil, err
	}
	if len(rewards) != len(keys) {
		return nil, fmt.Errorf("%w: getInflationReward returned %d entries for %d addresses",
			types.ErrInvariantViolation, len(rewards), len(keys))
	}
	return rewards, nil
}

func (c *SolanaClient) GetVoteIdentity(ctx context.Context, voteAccount types.PublicKey) (types.PublicKey, error) {
	var result accountInfoResult[parsedData[voteAccountInfo]]
	if err := c.call(ctx, &result, "getAccountInfo", voteAccount.String(), c.jsonParsed()); err != nil {
		return types.ZeroPublicKey, err
	}
	if result.Value == nil {
		return types.ZeroPublicKey, fmt.Errorf("%w: vote account %s not found", types.ErrDataUnavailable, voteAccount)
	}
	if result.Value.Data.Program != voteProgramName {
		return types.ZeroPublicKey, fmt.Errorf("%w: account %s is not a vote account", types.ErrDataUnavailable, voteAccount)
	}
	return types.PublicKeyFromBase58(result.Value.Data.Parsed.Info.NodePubkey)
}

func (c *SolanaClient) GetVoteAccountStake(ctx context.Context, voteAccount types.PublicKey) (uint64, error) {
	var result voteAccountsResult
	opts := map[string]any{
		"commitment":              c.cfg.Commitment,
		"votePubkey":              voteAccount.String(),
		"keepUnstakedDelinquents": true,
	}
	if err := c.call(ctx, &result, "getVoteAccounts", opts); err != nil {
		return 0, err
	}

	vote := voteAccount.String()
	for _, status := range append(result.Current, result.Delinquent...) {
		if status.VotePubkey == vote {
			return uint64(status.ActivatedStake), nil
		}
	}
	return 0, fmt.Errorf("%w: vote account %s not found in vote accounts", types.ErrDataUnavailable, voteAccount)
}

func (c *SolanaClient) GetLeaderSlots(ctx context.Context, identity types.PublicKey, epoch uint64) ([]uint64, error) {
	schedule, err := c.GetEpochSchedule(ctx)
	if err != nil {
		return nil, err
	}
	firstSlot := schedule.FirstSlotInEpoch(epoch)

	var result map[string][]uint64
	opts := map[string]any{"identity": identity.String(), "commitment": c.cfg.Commitment}
	if err := c.call(ctx, &result, "getLeaderSchedule", firstSlot, opts); err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("%w: no leader schedule for epoch %d", types.ErrDataUnavailable, epoch)
	}

	offsets := result[identity.String()]
	slots := make([]uint64, len(offsets))
	for i, offset := range offsets {
		slots[i] = firstSlot + offset
	}
	return slots, nil
}

func (c *SolanaClient) GetBlockReward(ctx context.Context, identity types.PublicKey, slot uint64) (*uint64, error) {
	var block *blockRewards
	opts := map[string]any{
		"encoding":                       "json",
		"transactionDetails":             "none",
		"rewards":                        true,
		"maxSupportedTransactionVersion": 0,
		"commitment":                     c.rewardsCommitment(),
	}
	if err := c.call(ctx, &block, "getBlock", slot, opts); err != nil {
		if isSkippedSlot(err) {
			return nil, nil
		}
		return nil, err
	}
	if block == nil {
		return nil, nil
	}

	var total uint64
	leader := identity.String()
	for _, reward := range block.Rewards {
		if reward.RewardType == feeRewardType && reward.Pubkey == leader && reward.Lamports > 0 {
			total += uint64(reward.Lamports)
		}
	}
	return &total, nil
}

func (c *SolanaClient) GetBlockTime(ctx context.Context, slot uint64) (*time.Time, error) {
	var ts *int64
	if err := c.call(ctx, &ts, "getBlockTime", slot); err != nil {
		if isSkippedSlot(err) {
			return nil, nil
		}
		return nil, err
	}
	if ts == nil {
		return nil, nil
	}
	t := time.Unix(*ts, 0).UTC()
	return &t, nil
}

func (c *SolanaClient) GetBond(ctx context.Context, key types.PublicKey) (*types.Bond, error) {
	var result accountInfoResult[base64Data]
	opts := map[string]any{"encoding": "base64", "commitment": c.cfg.Commitment}
	if err := c.call(ctx, &result, "getAccountInfo", key.String(), opts); err != nil {
		return nil, err
	}
	if result.Value == nil {
		return nil, fmt.Errorf("%w: bond account %s not found", types.ErrDataUnavailable, key)
	}
	return DecodeBond(key, result.Value.Data)
}

func (c *SolanaClient) GetBondsByVoteAccount(
	ctx context.Context, programID, voteAccount types.PublicKey,
) ([]*types.Bond, error) {
	var accounts []programAccount
	opts := map[string]any{
		"encoding":   "base64",
		"commitment": c.cfg.Commitment,
		"filters":    bondFilters(voteAccount),
	}
	if err := c.call(ctx, &accounts, "getProgramAccounts", programID.String(), opts); err != nil {
		return nil, err
	}

	bonds := make([]*types.Bond, 0, len(accounts))
	for _, account := range accounts {
		key, err := types.PublicKeyFromBase58(account.Pubkey)
		if err != nil {
			return nil, err
		}
		bond, err := DecodeBond(key, account.Account.Data)
		if err != nil {
			return nil, err
		}
		bonds = append(bonds, bond)
	}
	return bonds, nil
}

func (c *SolanaClient) GetLatestBlockhash(ctx context.Context) (types.PublicKey, error) {
	var result latestBlockhashResult
	if err := c.call(ctx, &result, "getLatestBlockhash", map[string]any{"commitment": "finalized"}); err != nil {
		return types.ZeroPublicKey, err
	}
	return types.PublicKeyFromBase58(result.Value.Blockhash)
}

func (c *SolanaClient) SendTransaction(ctx context.Context, rawTx []byte) (string, error) {
	var signature string
	opts := map[string]any{"encoding": "base64", "preflightCommitment": c.cfg.Commitment}
	if err := c.call(ctx, &signature, "sendTransaction", base64.StdEncoding.EncodeToString(rawTx), opts); err != nil {
		return "", err
	}
	return signature, nil
}

func (c *SolanaClient) GetSignatureStatus(ctx context.Context, signature string) (*SignatureStatus, error) {
	var result signatureStatusesResult
	opts := map[string]any{"searchTransactionHistory": false}
	if err := c.call(ctx, &result, "getSignatureStatuses", []string{signature}, opts); err != nil {
		return nil, err
	}
	if len(result.Value) == 0 {
		return nil, nil
	}
	return result.Value[0], nil
}

func (c *SolanaClient) call(ctx context.Context, result any, method string, args ...any) error {
	callMethod := func() (struct{}, error) {
		return struct{}{}, c.rpcClient.CallContext(ctx, result, method, args...)
	}

	if _, err := clientCallWithRetry(ctx, callMethod, c.cfg); err != nil {
		if isRPCError(err) {
			return fmt.Errorf("%s: %w", method, err)
		}
		return types.NewTransportError(method, err)
	}
	return nil
}

func (c *SolanaClient) commitment() map[string]any {
	return map[string]any{"commitment": c.cfg.Commitment}
}

func (c *SolanaClient) jsonParsed() map[string]any {
	return map[string]any{"encoding": "jsonParsed", "commitment": c.cfg.Commitment}
}

// rewardsCommitment is used for methods that reject "processed".
func (c *SolanaClient) rewardsCommitment() string {
	if c.cfg.Commitment == "processed" {
		return "confirmed"
	}
	return c.cfg.Commitment
}

func clientCallWithRetry[T any](
	ctx context.Context, call retry.RetryableFuncWithData[T], cfg *config.SolanaConfig,
) (T, error) {
	return retry.DoWithData(call,
		retry.Context(ctx),
		retry.Attempts(cfg.MaxRetryTimes),
		retry.Delay(cfg.RetryInterval),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Debug().
				Uint("attempt", n+1).
				Uint("max_attempts", cfg.MaxRetryTimes).
				Err(err).
				Msg("failed to call the solana RPC")
		}))
}

func rpcErrorCode(err error) (int, bool) {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return rpcErr.ErrorCode(), true
	}
	return 0, false
}

func isRPCError(err error) bool {
	_, ok := rpcErrorCode(err)
	return ok
}

// isSkippedSlot reports whether the node answered that no block exists for the slot.
func isSkippedSlot(err error) bool {
	code, ok := rpcErrorCode(err)
	return ok && (code == errCodeSlotSkipped || code == errCodeLongTermStorageSlotSkipped)
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	if code, ok := rpcErrorCode(err); ok {
		switch code {
		case errCodeBlockNotAvailable,
			errCodeNodeUnhealthy,
			errCodeEpochRewardsPeriodActive,
			errCodeMinContextSlotNotReached,
			errCodeBlockStatusNotAvailableYet:
			return true
		}
		return false
	}

	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusTooManyRequests || httpErr.StatusCode >= http.StatusInternalServerError
	}

	// network and decoding failures
	return true
}
