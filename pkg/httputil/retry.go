package httputil

import (
	"context"
	"errors"
	"time"
)

// Repository retry policy. POM requests are cheap, idempotent GETs against
// mirrored repositories, so a short doubling backoff recovers from blips
// without stalling a wide crawl.
const (
	repoRetryAttempts  = 3
	repoRetryBaseDelay = time.Second
)

// RetryableError marks an error as transient. The descriptor client wraps
// connection failures and 5xx statuses with it; anything unwrapped (404s,
// client errors) fails the attempt immediately.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry runs fn until it succeeds, returns a non-retryable error, or
// attempts are exhausted, sleeping delay between tries and doubling it each
// time. A cancelled context interrupts the wait and returns ctx.Err().
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	var lastErr error
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !errors.As(err, new(*RetryableError)) {
			return err
		}
		lastErr = err
		if attempt >= max(attempts, 1) {
			return lastErr
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}

// RetryWithBackoff applies the repository retry policy to fn.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, repoRetryAttempts, repoRetryBaseDelay, fn)
}
