package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pyefi/excess-rewards-keeper/internal/observability/metrics"
	"github.com/rs/zerolog/log"
)

// BaseClient is implemented by every REST client that goes through SendRequest.
type BaseClient interface {
	GetBaseURL() string
	GetDefaultRequestTimeout() time.Duration
	GetHttpClient() *http.Client
}

type HttpClientOptions struct {
	Timeout time.Duration
	Path    string
	// TemplatePath is the path with its parameters left out, used as the metrics label.
	TemplatePath string
	Headers      map[string]string
}

// HttpError is returned for every non-2xx response.
type HttpError struct {
	StatusCode int
	Body       string
}

func (e *HttpError) Error() string {
	if e.StatusCode == http.StatusTooManyRequests {
		return fmt.Sprintf("rate limit exceeded: %s", e.Body)
	}
	return fmt.Sprintf("unexpected status code %d: %s", e.StatusCode, e.Body)
}

func (e *HttpError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Retryable reports whether repeating the request may succeed.
func (e *HttpError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// SendRequest performs one JSON request against client and decodes the response into R.
func SendRequest[I any, R any](
	ctx context.Context, client BaseClient, method string, opts *HttpClientOptions, input *I,
) (*R, error) {
	timeout := client.GetDefaultRequestTimeout()
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := client.GetBaseURL() + opts.Path

	var body io.Reader
	if input != nil {
		payload, err := json.Marshal(input)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if input != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	templatePath := opts.TemplatePath
	if templatePath == "" {
		templatePath = opts.Path
	}
	observe := metrics.StartClientRequestDurationTimer(client.GetBaseURL(), method, templatePath)

	resp, err := client.GetHttpClient().Do(req)
	if err != nil {
		observe(0)
		return nil, fmt.Errorf("failed to send request to %s: %w", url, err)
	}
	defer resp.Body.Close()
	observe(resp.StatusCode)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Ctx(ctx).Debug().
			Int("status_code", resp.StatusCode).
			Str("url", url).
			Msg("unexpected response status")
		return nil, &HttpError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var result R
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", url, err)
	}
	return &result, nil
}
