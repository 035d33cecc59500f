package job

import "time"

// RetryPolicy describes the executor pipeline's retry behavior for a
// failing worker.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the first attempt; the
	// worker is invoked at most MaxRetries+1 times.
	MaxRetries int
	// BaseDelay is the delay before the first retry.
	BaseDelay time.Duration
	// ExponentialBackoff doubles the delay for each subsequent attempt,
	// capped at MaxDelay, when true. When false every retry waits
	// BaseDelay.
	ExponentialBackoff bool
	// MaxDelay caps the computed delay when ExponentialBackoff is set.
	// Zero means no cap.
	MaxDelay time.Duration
	// ShouldRetry decides whether a given error is retryable at all. A
	// nil ShouldRetry retries every error except Cancelled errors, which
	// the pipeline never retries regardless of this function.
	ShouldRetry func(err error) bool
}

// DelayFor returns the delay to wait after the (0-indexed) attempt n has
// failed, before the next attempt, per the policy's backoff configuration.
func (p RetryPolicy) DelayFor(n int) time.Duration {
	if !p.ExponentialBackoff {
		return p.BaseDelay
	}

	delay := p.BaseDelay
	for range n {
		delay *= 2
		if p.MaxDelay > 0 && delay >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		return p.MaxDelay
	}
	return delay
}

// CanRetry reports whether attempt n (0-indexed, the attempt that just
// failed) may be retried: there must be retries remaining and, if
// configured, ShouldRetry must approve of err. Cancellation errors are
// never retried by the caller regardless of what CanRetry returns for them
// (the executor pipeline checks that case separately).
func (p RetryPolicy) CanRetry(err error, n int) bool {
	if n >= p.MaxRetries {
		return false
	}
	if p.ShouldRetry == nil {
		return true
	}
	return p.ShouldRetry(err)
}
