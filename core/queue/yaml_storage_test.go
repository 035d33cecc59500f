package queue_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lploc94/orbit/core/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLFileStorageRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queue.yaml")

	s1, err := queue.NewYAMLFileStorage(path)
	require.NoError(t, err)

	entry := queue.Entry{
		ID:         uuid.New(),
		Type:       "send-message",
		Payload:    []byte(`{"to":"alice"}`),
		EnqueuedAt: time.Now(),
	}
	require.NoError(t, s1.Enqueue(context.Background(), entry))

	n, err := s1.Len(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	s2, err := queue.NewYAMLFileStorage(path)
	require.NoError(t, err)

	n2, err := s2.Len(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n2, "entries enqueued by s1 should be visible after reopening the file")

	claimed, err := s2.ClaimNext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entry.ID, claimed.ID)
	assert.Equal(t, entry.Type, claimed.Type)
}

func TestYAMLFileStorageMissingFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.yaml")

	s, err := queue.NewYAMLFileStorage(path)
	require.NoError(t, err)

	n, err := s.Len(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = s.ClaimNext(context.Background())
	assert.ErrorIs(t, err, queue.ErrEmpty)
}

func TestYAMLFileStorageRequeueGoesToTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queue.yaml")
	s, err := queue.NewYAMLFileStorage(path)
	require.NoError(t, err)

	first := queue.Entry{ID: uuid.New(), Type: "a"}
	second := queue.Entry{ID: uuid.New(), Type: "b"}
	require.NoError(t, s.Enqueue(context.Background(), first))
	require.NoError(t, s.Enqueue(context.Background(), second))

	claimed, err := s.ClaimNext(context.Background())
	require.NoError(t, err)
	require.Equal(t, first.ID, claimed.ID)

	claimed.RetryCount++
	require.NoError(t, s.Requeue(context.Background(), claimed))

	next, err := s.ClaimNext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, second.ID, next.ID, "requeued entry should land behind the one enqueued after it")
}
