package mevclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/pyefi/excess-rewards-keeper/internal/clients/client"
	"github.com/pyefi/excess-rewards-keeper/internal/config"
	"github.com/pyefi/excess-rewards-keeper/internal/types"
	"github.com/rs/zerolog/log"
)

const validatorEndpoint = "/api/v1/validators/"

type Client struct {
	httpClient *http.Client
	cfg        *config.MevConfig
	baseURL    string
}

func (c *Client) GetBaseURL() string {
	return c.baseURL
}

func (c *Client) GetDefaultRequestTimeout() time.Duration {
	return c.cfg.Timeout
}

func (c *Client) GetHttpClient() *http.Client {
	return c.httpClient
}

func NewClient(cfg *config.MevConfig) *Client {
	if cfg == nil {
		return nil
	}

	return &Client{
		httpClient: &http.Client{},
		cfg:        cfg,
		baseURL:    cfg.URL,
	}
}

type validatorEpochRewards struct {
	Epoch            uint64 `json:"epoch"`
	MevCommissionBps uint16 `json:"mev_commission_bps"`
	MevRewards       uint64 `json:"mev_rewards"`
	RunningJito      bool   `json:"running_jito"`
	ActiveStake      uint64 `json:"active_stake"`
}

func (c *Client) GetSnapshot(ctx context.Context, voteAccount types.PublicKey, epoch uint64) (*types.MevSnapshot, error) {
	type empty struct{}

	callForRewards := func() ([]validatorEpochRewards, error) {
		opts := &client.HttpClientOptions{
			Path:         validatorEndpoint + voteAccount.String(),
			TemplatePath: validatorEndpoint + "{vote_account}",
		}

		resp, err := client.SendRequest[empty, []validatorEpochRewards](ctx, c, http.MethodGet, opts, nil)
		if err != nil {
			var httpErr *client.HttpError
			if errors.As(err, &httpErr) && httpErr.NotFound() {
				return nil, nil
			}
			return nil, err
		}
		return *resp, nil
	}

	rewards, err := clientCallWithRetry(ctx, callForRewards, c.cfg)
	if err != nil {
		return nil, types.NewTransportError("GetSnapshot", fmt.Errorf("mev rewards of %s: %w", voteAccount, err))
	}

	for _, r := range rewards {
		if r.Epoch != epoch {
			continue
		}
		return &types.MevSnapshot{
			VoteAccount:   voteAccount,
			Epoch:         r.Epoch,
			Tips:          r.MevRewards,
			CommissionBps: r.MevCommissionBps,
			ActiveStake:   r.ActiveStake,
			RunningJito:   r.RunningJito,
		}, nil
	}

	log.Ctx(ctx).Debug().
		Stringer("vote_account", voteAccount).
		Uint64("epoch", epoch).
		Msg("no mev rewards record for epoch")
	return nil, nil
}

func clientCallWithRetry[T any](
	ctx context.Context,
	call retry.RetryableFuncWithData[T],
	cfg *config.MevConfig,
) (T, error) {
	return retry.DoWithData(call,
		retry.Context(ctx),
		retry.Attempts(cfg.MaxRetryTimes),
		retry.Delay(cfg.RetryInterval),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var httpErr *client.HttpError
			if errors.As(err, &httpErr) {
				return httpErr.Retryable()
			}
			return !errors.Is(err, context.Canceled)
		}),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Debug().
				Uint("attempt", n+1).
				Uint("max_attempts", cfg.MaxRetryTimes).
				Err(err).
				Msg("failed to fetch mev rewards, retrying with exponential backoff")
		}))
}
