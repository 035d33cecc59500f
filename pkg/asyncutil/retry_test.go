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

func TestRetrySucceedsFirstTry(t *testing.T) {
	t.Parallel()

	calls := 0
	result, err := asyncutil.Retry(context.Background(),
		func(ctx context.Context, attempt int) (int, error) {
			calls++
			return 7, nil
		},
		func(err error, attempt int) bool { return false },
		func(attempt int) time.Duration { return 0 },
	)

	require.NoError(t, err)
	assert.Equal(t, 7, result)
	assert.Equal(t, 1, calls)
}

func TestRetryRetriesUntilSuccess(t *testing.T) {
	t.Parallel()

	attempts := 0
	result, err := asyncutil.Retry(context.Background(),
		func(ctx context.Context, attempt int) (string, error) {
			attempts++
			if attempts < 3 {
				return "", errors.New("transient")
			}
			return "ok", nil
		},
		func(err error, attempt int) bool { return attempt < 5 },
		func(attempt int) time.Duration { return time.Millisecond },
	)

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, attempts)
}

func TestRetryStopsWhenShouldRetryRejects(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("permanent")
	attempts := 0
	_, err := asyncutil.Retry(context.Background(),
		func(ctx context.Context, attempt int) (int, error) {
			attempts++
			return 0, wantErr
		},
		func(err error, attempt int) bool { return false },
		func(attempt int) time.Duration { return 0 },
	)

	assert.Equal(t, wantErr, err)
	assert.Equal(t, 1, attempts)
}

func TestRetryAbortsOnContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := asyncutil.Retry(ctx,
		func(ctx context.Context, attempt int) (int, error) {
			attempts++
			return 0, errors.New("always fails")
		},
		func(err error, attempt int) bool { return true },
		func(attempt int) time.Duration { return time.Second },
	)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}
