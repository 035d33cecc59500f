// Package executor runs a single Job to completion: it consults the cache,
// invokes the worker under the job's timeout/retry/cancellation policy,
// writes the cache back, completes the JobHandle, and broadcasts the
// resulting domain event on the job's bus.
package executor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/lploc94/orbit/core/bus"
	"github.com/lploc94/orbit/core/cache"
	"github.com/lploc94/orbit/core/job"
	"github.com/lploc94/orbit/pkg/asyncutil"
)

// progressSettleDelay is how long the pipeline waits after completing a
// handle before closing its progress stream, so a progress report emitted
// in the same tick as completion is not dropped.
const progressSettleDelay = 50 * time.Millisecond

// WorkerFunc is the business logic behind one dispatch of a Job[R, E]. It
// receives a context already bound to the job's timeout and cancellation
// token by the pipeline.
type WorkerFunc[R any] func(ctx context.Context) (R, error)

// Run executes j to completion against worker, driving handle through the
// cache-first/stale-while-revalidate contract described on job.CachePolicy,
// then emits the resulting domain event on j.EffectiveBus(). Run blocks
// until the job reaches a terminal state; dispatch code that needs to
// return a job id immediately runs Run in its own goroutine, while the
// offline-queue replay path calls Run directly so it can block on
// handle.Await afterward.
//
// cacheProvider and observer may be nil; a nil cacheProvider disables the
// cache-read/write steps entirely (as if no CachePolicy were set) and a nil
// observer is equivalent to NoopObserver.
func Run[R any, E bus.Event](
	ctx context.Context,
	j *job.Job[R, E],
	worker WorkerFunc[R],
	handle *job.Handle[R],
	cacheProvider cache.Provider,
	observer Observer,
) {
	obs := newSafeObserver(observer, func(hook string, r any) {
		slog.Default().Error("observer hook panicked",
			slog.String("hook", hook), slog.Any("panic", r))
	})
	obs.OnJobStart(j.ID)
	defer func() {
		h := handle
		time.AfterFunc(progressSettleDelay, h.CloseProgress)
	}()

	b := j.EffectiveBus()
	policy := j.CachePolicy()

	if policy != nil && cacheProvider != nil && !policy.ForceRefresh {
		if raw, found := cacheProvider.Read(policy.Key); found {
			if cached, ok := raw.(R); ok {
				event := j.MakeEvent(cached, job.Cached)
				b.Emit(event)
				obs.OnEvent(event)
				obs.OnJobSuccess(j.ID, cached, job.Cached)
				handle.Complete(cached, job.Cached)
				if !policy.Revalidate {
					return
				}
				// Stale-while-revalidate: the handle already resolved with
				// the cached value; fall through so the worker still runs
				// and refreshes the cache and the bus.
			}
		}
	}

	result, err := runWorker(ctx, j, worker)
	if err != nil {
		obs.OnJobError(j.ID, err)
		handle.CompleteError(err)
		return
	}

	if policy != nil && cacheProvider != nil {
		var ttl time.Duration
		if policy.TTL != nil {
			ttl = *policy.TTL
		}
		cacheProvider.Write(policy.Key, result, ttl)
	}

	event := j.MakeEvent(result, job.Fresh)
	b.Emit(event)
	obs.OnEvent(event)
	obs.OnJobSuccess(j.ID, result, job.Fresh)
	handle.Complete(result, job.Fresh)
}

// errCancelledSentinel marks an attempt that failed because the job's
// cancellation token fired, so the retry-decision wrapper below can refuse
// to retry it without re-deriving cancellation state itself.
var errCancelledSentinel = job.NewCancelledError()

// runWorker invokes worker under j's timeout and cancellation token, using
// asyncutil.Retry for the retry-loop/backoff mechanics while keeping the
// job-specific per-attempt context composition and error classification
// here.
func runWorker[R any, E bus.Event](ctx context.Context, j *job.Job[R, E], worker WorkerFunc[R]) (R, error) {
	one := func(_ context.Context, _ int) (R, error) {
		var zero R

		if j.Cancel != nil {
			if err := j.Cancel.ThrowIfCancelled(); err != nil {
				return zero, errCancelledSentinel
			}
		}

		attemptCtx := ctx
		var cancelTimeout context.CancelFunc
		if j.Timeout != nil {
			attemptCtx, cancelTimeout = context.WithTimeout(attemptCtx, *j.Timeout)
		}

		var unregister func()
		if j.Cancel != nil {
			var cancelManual context.CancelFunc
			attemptCtx, cancelManual = context.WithCancel(attemptCtx)
			unregister = j.Cancel.OnCancel(cancelManual)
		}

		result, err := worker(attemptCtx)
		deadlineExceeded := attemptCtx.Err() == context.DeadlineExceeded

		if cancelTimeout != nil {
			cancelTimeout()
		}
		if unregister != nil {
			unregister()
		}

		if j.Cancel != nil && j.Cancel.IsCancelled() {
			return zero, errCancelledSentinel
		}
		if err == nil {
			return result, nil
		}
		if deadlineExceeded {
			return zero, job.NewTimeoutError()
		}
		return zero, err
	}

	shouldRetry := func(err error, attempt int) bool {
		if err == errCancelledSentinel {
			return false
		}
		return j.Retry != nil && j.Retry.CanRetry(err, attempt)
	}

	delayFor := func(attempt int) time.Duration {
		if j.Retry == nil {
			return 0
		}
		return j.Retry.DelayFor(attempt)
	}

	result, err := asyncutil.Retry(ctx, one, shouldRetry, delayFor)
	if err == nil {
		return result, nil
	}
	if err == errCancelledSentinel || errors.Is(err, context.Canceled) {
		return result, job.NewCancelledError()
	}
	return result, terminal(err)
}

// terminal normalizes a worker failure into a *job.Error, leaving one that
// already is (e.g. NewTimeoutError) untouched.
func terminal(err error) error {
	if _, ok := err.(*job.Error); ok {
		return err
	}
	return job.NewWorkerError(err)
}
