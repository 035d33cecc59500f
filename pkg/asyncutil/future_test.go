package asyncutil_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lploc94/orbit/pkg/asyncutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecAwait(t *testing.T) {
	t.Parallel()

	future := asyncutil.Exec(context.Background(), 42, func(ctx context.Context, n int) (int, error) {
		return n * 2, nil
	})

	result, err := future.Await()
	require.NoError(t, err)
	assert.Equal(t, 84, result)
}

func TestExecPropagatesError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("boom")
	future := asyncutil.Exec(context.Background(), 1, func(ctx context.Context, n int) (int, error) {
		return 0, wantErr
	})

	_, err := future.Await()
	assert.Equal(t, wantErr, err)
}

func TestExecRespectsCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	future := asyncutil.Exec(ctx, 1, func(ctx context.Context, n int) (int, error) {
		called = true
		return n, nil
	})

	_, err := future.Await()
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestAwaitWithTimeout(t *testing.T) {
	t.Parallel()

	future := asyncutil.Exec(context.Background(), 1, func(ctx context.Context, n int) (int, error) {
		time.Sleep(100 * time.Millisecond)
		return n, nil
	})

	_, err := future.AwaitWithTimeout(10 * time.Millisecond)
	assert.ErrorIs(t, err, asyncutil.ErrTimeout)
}

func TestIsComplete(t *testing.T) {
	t.Parallel()

	future := asyncutil.Exec(context.Background(), 1, func(ctx context.Context, n int) (int, error) {
		time.Sleep(30 * time.Millisecond)
		return n, nil
	})

	assert.False(t, future.IsComplete())
	_, _ = future.Await()
	assert.True(t, future.IsComplete())
}

func TestWaitAll(t *testing.T) {
	t.Parallel()

	futures := []*asyncutil.Future[int]{
		asyncutil.Exec(context.Background(), 1, func(ctx context.Context, n int) (int, error) { return n, nil }),
		asyncutil.Exec(context.Background(), 2, func(ctx context.Context, n int) (int, error) { return n, nil }),
		asyncutil.Exec(context.Background(), 3, func(ctx context.Context, n int) (int, error) { return n, nil }),
	}

	results, err := asyncutil.WaitAll(futures...)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 2, 3}, results)
}

func TestWaitAllStopsAtFirstError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("second failed")
	futures := []*asyncutil.Future[int]{
		asyncutil.Exec(context.Background(), 1, func(ctx context.Context, n int) (int, error) { return n, nil }),
		asyncutil.Exec(context.Background(), 2, func(ctx context.Context, n int) (int, error) { return 0, wantErr }),
	}

	_, err := asyncutil.WaitAll(futures...)
	assert.Equal(t, wantErr, err)
}

func TestWaitAnyReturnsFastest(t *testing.T) {
	t.Parallel()

	futures := []*asyncutil.Future[int]{
		asyncutil.Exec(context.Background(), 150, func(ctx context.Context, ms int) (int, error) {
			time.Sleep(time.Duration(ms) * time.Millisecond)
			return ms, nil
		}),
		asyncutil.Exec(context.Background(), 10, func(ctx context.Context, ms int) (int, error) {
			time.Sleep(time.Duration(ms) * time.Millisecond)
			return ms, nil
		}),
	}

	index, result, err := asyncutil.WaitAny(futures...)
	require.NoError(t, err)
	assert.Equal(t, 1, index)
	assert.Equal(t, 10, result)
}

func TestWaitAnyNoFutures(t *testing.T) {
	t.Parallel()

	_, _, err := asyncutil.WaitAny[int]()
	assert.ErrorIs(t, err, asyncutil.ErrNoFutures)
}
