package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/casescout"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (*casescout.Response, error)

// RetryDelays returns the first n of 1s, 2s, 4s, 8s... as backoff delays.
func RetryDelays(n int) []time.Duration {
	if n <= 0 {
		return nil
	}
	delays := make([]time.Duration, n)
	d := time.Second
	for i := range delays {
		delays[i] = d
		d *= 2
	}
	return delays
}

// FetchWithRetryDelays attempts to fetch a URL once plus once per delay,
// waiting delays[i] before retry i. The logger, if not nil, records each
// retry.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger *slog.Logger, delays []time.Duration) (*casescout.Response, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		resp, err := fetch(ctx, url)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if logger != nil {
			logger.Warn("retrying fetch", "url", url, "attempt", attempt+2, "error", err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
