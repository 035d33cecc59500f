package queue

import (
	"context"

	"github.com/google/uuid"
)

// Storage is the persistence backend for the offline replay queue. FIFO
// ordering applies across Enqueue/ClaimNext: entries are replayed in the
// order they were enqueued, and a Requeue'd entry (one that failed and has
// retries left) goes back onto the tail rather than the head, so a single
// poisoned entry cannot block the rest of the queue from draining.
type Storage interface {
	// Enqueue appends entry to the tail of the queue.
	Enqueue(ctx context.Context, entry Entry) error

	// ClaimNext removes and returns the entry at the head of the queue.
	// It returns ErrEmpty if the queue has no entries.
	ClaimNext(ctx context.Context) (Entry, error)

	// Requeue appends entry back onto the tail, for a replay attempt that
	// failed but still has retries remaining.
	Requeue(ctx context.Context, entry Entry) error

	// Remove deletes the entry with the given id, if present. It is a
	// no-op if the id is unknown (ClaimNext already removed it).
	Remove(ctx context.Context, id uuid.UUID) error

	// List returns every entry currently queued, in FIFO order.
	List(ctx context.Context) ([]Entry, error)

	// Len reports the number of entries currently queued.
	Len(ctx context.Context) (int, error)
}
