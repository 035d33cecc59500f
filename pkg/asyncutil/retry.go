package asyncutil

import (
	"context"
	"time"
)

// AttemptFunc runs one try of an operation. attempt is 0 on the first call
// and increments by one per retry.
type AttemptFunc[R any] func(ctx context.Context, attempt int) (R, error)

// ShouldRetryFunc decides whether a failed attempt should be retried.
type ShouldRetryFunc func(err error, attempt int) bool

// DelayFunc computes how long to wait before the next attempt.
type DelayFunc func(attempt int) time.Duration

// Retry calls attempt repeatedly until it succeeds, shouldRetry rejects the
// most recent error, or ctx is cancelled while waiting out a backoff delay.
// Retry does not build per-attempt timeouts or watch cancellation tokens
// itself; attempt receives ctx unchanged and is responsible for deriving
// whatever per-attempt deadline it needs.
func Retry[R any](ctx context.Context, attempt AttemptFunc[R], shouldRetry ShouldRetryFunc, delayFor DelayFunc) (R, error) {
	var zero R
	n := 0

	for {
		result, err := attempt(ctx, n)
		if err == nil {
			return result, nil
		}
		if !shouldRetry(err, n) {
			return zero, err
		}

		timer := time.NewTimer(delayFor(n))
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		}
		n++
	}
}
