package asyncutil

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTimeout is returned by Future.AwaitWithTimeout when the deadline
// elapses before the future completes.
var ErrTimeout = errors.New("asyncutil: await timeout")

// ErrNoFutures is returned by WaitAny when called with no futures.
var ErrNoFutures = errors.New("asyncutil: no futures given")

// Future represents the result of an asynchronous computation producing a
// value of type R.
type Future[R any] struct {
	result R
	err    error
	once   sync.Once
	done   chan struct{}
}

// Await blocks until the future completes and returns its result.
func (f *Future[R]) Await() (R, error) {
	<-f.done
	return f.result, f.err
}

// AwaitWithTimeout blocks until the future completes or timeout elapses,
// whichever comes first.
func (f *Future[R]) AwaitWithTimeout(timeout time.Duration) (R, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-time.After(timeout):
		var zero R
		return zero, ErrTimeout
	}
}

// IsComplete reports whether the future has resolved, without blocking.
func (f *Future[R]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Exec runs fn asynchronously with param and returns a Future for its
// result. If ctx is already cancelled when the goroutine starts, fn is
// never invoked and the future resolves with ctx.Err().
func Exec[T, R any](ctx context.Context, param T, fn func(context.Context, T) (R, error)) *Future[R] {
	f := &Future[R]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		select {
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		default:
		}

		result, err := fn(ctx, param)
		f.once.Do(func() {
			f.result = result
			f.err = err
		})
	}()

	return f
}

// WaitAll waits for every future to complete and returns their results in
// order. It returns the first error encountered, stopping at the first
// future that failed.
func WaitAll[R any](futures ...*Future[R]) ([]R, error) {
	results := make([]R, 0, len(futures))
	for _, f := range futures {
		result, err := f.Await()
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// WaitAny returns the index, result, and error of whichever future
// completes first.
func WaitAny[R any](futures ...*Future[R]) (int, R, error) {
	var zero R
	if len(futures) == 0 {
		return -1, zero, ErrNoFutures
	}

	type outcome struct {
		index  int
		result R
		err    error
	}
	done := make(chan outcome, len(futures))

	for i, f := range futures {
		go func(index int, fut *Future[R]) {
			result, err := fut.Await()
			select {
			case done <- outcome{index, result, err}:
			default:
			}
		}(i, f)
	}

	o := <-done
	return o.index, o.result, o.err
}
