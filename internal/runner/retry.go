package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/CodexForgeBR/openrouter-helper/internal/openrouter"
)

const (
	// DefaultMaxAttempts bounds the request loop.
	DefaultMaxAttempts = 5

	// DefaultBaseDelay is the first backoff interval.
	DefaultBaseDelay = 5 * time.Second
)

// RetryConfig controls the backoff loop around the completion request.
type RetryConfig struct {
	// MaxAttempts is the total number of tries, not the number of retries.
	MaxAttempts int

	// BaseDelay is the pause after the first failed attempt; it doubles
	// after each subsequent failure.
	BaseDelay time.Duration

	// OnRetry is invoked before each backoff pause with the attempt number
	// that just failed (1-based), the upcoming delay, and the error that
	// triggered the retry.
	OnRetry func(attempt int, delay time.Duration, err error)
}

// RetryWithBackoff runs fn up to MaxAttempts times with exponential backoff
// between attempts. Only retryable request errors re-enter the loop; any
// other error is returned to the caller unchanged. When attempts run out,
// the last error is returned wrapped in a max-attempts message.
func RetryWithBackoff(ctx context.Context, cfg RetryConfig, fn func() error) error {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = DefaultBaseDelay
	}

	delay := cfg.BaseDelay
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn()
		if err == nil {
			return nil
		}

		var reqErr *openrouter.RequestError
		if !errors.As(err, &reqErr) || !reqErr.Retryable() {
			return err
		}
		if attempt >= cfg.MaxAttempts {
			return fmt.Errorf("max attempts (%d) exceeded: %w", cfg.MaxAttempts, err)
		}

		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, delay, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}
