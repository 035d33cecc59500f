// Package asyncutil provides generic asynchronous-execution building blocks
// shared by the job executor: a Future[R] for fire-and-forget computations
// with a typed result, and a Retry loop that re-invokes an attempt function
// under caller-supplied backoff/retry-decision policy.
//
// # Futures
//
//	future := asyncutil.Exec(ctx, userID, fetchUser)
//	user, err := future.Await()
//
// Futures compose with WaitAll and WaitAny for fan-out/fan-in:
//
//	users, err := asyncutil.WaitAll(futures...)
//	index, user, err := asyncutil.WaitAny(futures...)
//
// # Retry
//
// Retry re-invokes attempt until it succeeds, the retry policy rejects the
// error, or ctx is cancelled while waiting out a backoff delay:
//
//	result, err := asyncutil.Retry(ctx,
//		func(ctx context.Context, attempt int) (Result, error) { ... },
//		func(err error, attempt int) bool { return attempt < 3 },
//		func(attempt int) time.Duration { return time.Second })
//
// Retry knows nothing about timeouts or cancellation tokens; callers that
// need per-attempt deadlines build their own context inside attempt and
// ignore the ctx Retry passes through except to observe its cancellation
// between attempts.
package asyncutil
