package queue_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lploc94/orbit/core/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSafety struct {
	secured []byte
	cleaned [][]byte
}

func (r *recordingSafety) SecureFiles(payload []byte) ([]byte, error) {
	r.secured = payload
	return append([]byte("secured:"), payload...), nil
}

func (r *recordingSafety) CleanupFiles(payload []byte) error {
	r.cleaned = append(r.cleaned, payload)
	return nil
}

func TestManager(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Enqueue routes payload through the safety delegate", func(t *testing.T) {
		t.Parallel()
		safety := &recordingSafety{}
		mgr := queue.NewManager(queue.NewMemoryStorage(), safety)

		entry, err := mgr.Enqueue(ctx, "SendMessage", []byte("hello"), "corr-1")
		require.NoError(t, err)
		assert.Equal(t, "secured:hello", string(entry.Payload))
		assert.Equal(t, "SendMessage", entry.Type)
		assert.Equal(t, "corr-1", entry.CorrelationID)
	})

	t.Run("nil safety defaults to a passthrough", func(t *testing.T) {
		t.Parallel()
		mgr := queue.NewManager(queue.NewMemoryStorage(), nil)
		entry, err := mgr.Enqueue(ctx, "X", []byte("raw"), "c")
		require.NoError(t, err)
		assert.Equal(t, "raw", string(entry.Payload))
	})

	t.Run("Requeue increments retry count and records the cause", func(t *testing.T) {
		t.Parallel()
		mgr := queue.NewManager(queue.NewMemoryStorage(), nil)
		entry, err := mgr.Enqueue(ctx, "X", []byte("p"), "c")
		require.NoError(t, err)

		claimed, err := mgr.ClaimNext(ctx)
		require.NoError(t, err)
		assert.Equal(t, entry.ID, claimed.ID)

		require.NoError(t, mgr.Requeue(ctx, claimed, errors.New("boom")))

		got, err := mgr.ClaimNext(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, got.RetryCount)
		assert.Equal(t, "boom", got.LastError)
	})

	t.Run("Complete and Quarantine both clean up durable files", func(t *testing.T) {
		t.Parallel()
		safety := &recordingSafety{}
		mgr := queue.NewManager(queue.NewMemoryStorage(), safety)
		entry, err := mgr.Enqueue(ctx, "X", []byte("p"), "c")
		require.NoError(t, err)

		require.NoError(t, mgr.Complete(ctx, entry))
		require.NoError(t, mgr.Quarantine(ctx, entry))
		assert.Len(t, safety.cleaned, 2)

		n, err := mgr.Len(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("entry exhausting retries reports Poisoned", func(t *testing.T) {
		t.Parallel()
		e := queue.Entry{RetryCount: queue.DefaultMaxRetries}
		assert.True(t, e.Poisoned(queue.DefaultMaxRetries))
		assert.False(t, queue.Entry{RetryCount: 0}.Poisoned(queue.DefaultMaxRetries))
	})
}
