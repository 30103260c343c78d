package retrieval

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ReesavGupta/ragxragas/core"
)

// rateLimitBackoffFactor stretches the delay when the upstream said 429;
// retrying a rate-limited endpoint on the normal schedule just burns quota.
const rateLimitBackoffFactor = 4

// RetryWithBackoff retries fn with exponential backoff on failure. It stops
// early when ctx is cancelled and returns the last error when attempts are
// exhausted. Rate-limited failures back off longer than plain outages.
func RetryWithBackoff(ctx context.Context, logger *slog.Logger, maxAttempts int, initialDelay time.Duration, fn func() error) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	delay := initialDelay

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if attempt == maxAttempts {
			break
		}

		wait := delay
		if errors.Is(lastErr, core.ErrRateLimited) {
			wait = delay * rateLimitBackoffFactor
		}
		if logger != nil {
			logger.Warn("retrying after failure",
				"attempt", attempt,
				"max_attempts", maxAttempts,
				"delay", wait,
				"error", lastErr)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		delay *= 2
	}

	return lastErr
}
