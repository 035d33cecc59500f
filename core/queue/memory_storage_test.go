package queue_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lploc94/orbit/core/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("ClaimNext on empty queue returns ErrEmpty", func(t *testing.T) {
		t.Parallel()
		s := queue.NewMemoryStorage()
		_, err := s.ClaimNext(ctx)
		assert.ErrorIs(t, err, queue.ErrEmpty)
	})

	t.Run("FIFO ordering across enqueue and claim", func(t *testing.T) {
		t.Parallel()
		s := queue.NewMemoryStorage()
		first := queue.Entry{ID: uuid.New(), Type: "A"}
		second := queue.Entry{ID: uuid.New(), Type: "B"}
		require.NoError(t, s.Enqueue(ctx, first))
		require.NoError(t, s.Enqueue(ctx, second))

		got, err := s.ClaimNext(ctx)
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID)

		got, err = s.ClaimNext(ctx)
		require.NoError(t, err)
		assert.Equal(t, second.ID, got.ID)
	})

	t.Run("Requeue appends to the tail, not the head", func(t *testing.T) {
		t.Parallel()
		s := queue.NewMemoryStorage()
		a := queue.Entry{ID: uuid.New(), Type: "A"}
		b := queue.Entry{ID: uuid.New(), Type: "B"}
		require.NoError(t, s.Enqueue(ctx, a))
		require.NoError(t, s.Enqueue(ctx, b))

		claimed, err := s.ClaimNext(ctx)
		require.NoError(t, err)
		claimed.RetryCount++
		require.NoError(t, s.Requeue(ctx, claimed))

		got, err := s.ClaimNext(ctx)
		require.NoError(t, err)
		assert.Equal(t, b.ID, got.ID)

		got, err = s.ClaimNext(ctx)
		require.NoError(t, err)
		assert.Equal(t, a.ID, got.ID)
		assert.Equal(t, 1, got.RetryCount)
	})

	t.Run("Remove is a no-op for an unknown id", func(t *testing.T) {
		t.Parallel()
		s := queue.NewMemoryStorage()
		assert.NoError(t, s.Remove(ctx, uuid.New()))
	})

	t.Run("Len and List reflect current contents", func(t *testing.T) {
		t.Parallel()
		s := queue.NewMemoryStorage()
		require.NoError(t, s.Enqueue(ctx, queue.Entry{ID: uuid.New()}))
		require.NoError(t, s.Enqueue(ctx, queue.Entry{ID: uuid.New()}))

		n, err := s.Len(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		list, err := s.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})
}
