package corpus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"cfmigrate/internal/config"
	"cfmigrate/pkg/utils"
)

// ErrUnexpectedStatusCode indicates an HTTP response with unexpected status.
var ErrUnexpectedStatusCode = errors.New("unexpected status code")

// maxCorpusBytes bounds a fetched corpus document.
const maxCorpusBytes = 64 << 20

// Fetcher downloads corpus documents with config-driven retry logic.
type Fetcher struct {
	client      *http.Client
	headers     *utils.HTTPHelper
	retryPolicy *config.RetryPolicy
}

// NewFetcher creates a fetcher with the default retry policy.
func NewFetcher() *Fetcher {
	return NewFetcherWithConfig(&config.Default().Migrator.Retry)
}

// NewFetcherWithConfig creates a fetcher with a custom retry policy.
func NewFetcherWithConfig(retryPolicy *config.RetryPolicy) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: retryPolicy.GetTimeout(),
		},
		headers:     utils.NewHTTPHelper(),
		retryPolicy: retryPolicy,
	}
}

// Fetch returns the body at url. Transport errors and temporary statuses are
// retried with exponential backoff; other statuses fail immediately.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= f.retryPolicy.MaxAttempts; attempt++ {
		if attempt > 1 {
			if err := wait(ctx, f.retryPolicy.GetRetryDelay(attempt)); err != nil {
				return nil, err
			}
		}

		body, retry, err := f.fetchOnce(ctx, url)
		if err == nil {
			return body, nil
		}

		lastErr = fmt.Errorf("attempt %d/%d: %w", attempt, f.retryPolicy.MaxAttempts, err)

		if !retry {
			break
		}
	}

	return nil, lastErr
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) (body []byte, retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header = f.headers.BuildHeaders(map[string]string{
		"Accept": "application/json",
	})

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close response body: %w", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, isRetryableStatus(resp.StatusCode), fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode)
	}

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxCorpusBytes))
	if err != nil {
		return nil, true, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, false, nil
}

// isRetryableStatus determines if we should retry based on HTTP status code.
func isRetryableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusServiceUnavailable, http.StatusGatewayTimeout, http.StatusTooManyRequests, http.StatusRequestTimeout:
		return true
	}

	return false
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
