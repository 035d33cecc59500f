package queue

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxRetries is the number of replay attempts a queued entry gets
// before it is quarantined as poisoned.
const DefaultMaxRetries = 5

// ErrEmpty is returned by Storage.ClaimNext when the queue has no pending
// entries.
var ErrEmpty = errors.New("queue: empty")

// ErrNotFound reports an entry id that is not present in storage. The
// storages in this package do not return it: their Remove treats an
// unknown id as a no-op.
var ErrNotFound = errors.New("queue: entry not found")

// Status is the lifecycle state of a persisted Entry.
type Status string

const (
	// StatusPending is an entry waiting in the queue for its turn to
	// replay.
	StatusPending Status = "pending"
	// StatusProcessing is an entry currently claimed by the replay loop.
	// It is never itself persisted (ClaimNext removes the entry from
	// storage for the duration of the attempt), but is part of the
	// documented schema's status enum for storage backends that choose
	// to track in-flight entries some other way.
	StatusProcessing Status = "processing"
	// StatusPoisoned is an entry that has exhausted its retries; it is
	// removed from storage immediately after being reported poisoned.
	StatusPoisoned Status = "poisoned"
)

// Entry is one NetworkAction job waiting to be replayed once connectivity
// returns. Payload is the bytes the dispatching caller passed as
// dispatcher.NetworkOptions.Payload; it is opaque to the queue itself and
// only meaningful to the rebuild function registered for Type via
// dispatcher.RegisterNetworkJob.
type Entry struct {
	ID            uuid.UUID `json:"id" yaml:"id"`
	Type          string    `json:"type" yaml:"type"`
	Payload       []byte    `json:"payload" yaml:"payload"`
	CorrelationID string    `json:"correlation_id" yaml:"correlation_id"`
	EnqueuedAt    time.Time `json:"timestamp" yaml:"timestamp"`
	Status        Status    `json:"status" yaml:"status"`
	RetryCount    int       `json:"retryCount" yaml:"retryCount"`
	LastError     string    `json:"lastError,omitempty" yaml:"lastError,omitempty"`
}

// Poisoned reports whether entry has exhausted maxRetries and should be
// quarantined rather than requeued.
func (e Entry) Poisoned(maxRetries int) bool {
	return e.RetryCount >= maxRetries
}
