package queue

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lploc94/orbit/core/filesafety"
)

// Manager is the caller-facing entry point to the offline queue: it wraps
// a Storage backend with the bookkeeping (ids, timestamps, file safety)
// that every entry needs, so the dispatcher's replay loop never has to deal
// with Storage directly.
type Manager struct {
	storage Storage
	safety  filesafety.Delegate
}

// NewManager returns a Manager backed by storage. A nil safety defaults to
// filesafety.Noop.
func NewManager(storage Storage, safety filesafety.Delegate) *Manager {
	if safety == nil {
		safety = filesafety.Noop{}
	}
	return &Manager{storage: storage, safety: safety}
}

// Enqueue secures any transient file references in payload and appends a
// new Entry for typeName to the tail of the queue.
func (m *Manager) Enqueue(ctx context.Context, typeName string, payload []byte, correlationID string) (Entry, error) {
	secured, err := m.safety.SecureFiles(payload)
	if err != nil {
		return Entry{}, err
	}

	entry := Entry{
		ID:            uuid.New(),
		Type:          typeName,
		Payload:       secured,
		CorrelationID: correlationID,
		EnqueuedAt:    time.Now(),
		Status:        StatusPending,
	}
	if err := m.storage.Enqueue(ctx, entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// ClaimNext pops the head entry, if any.
func (m *Manager) ClaimNext(ctx context.Context) (Entry, error) {
	return m.storage.ClaimNext(ctx)
}

// Requeue records a failed replay attempt and puts entry back on the tail
// with its retry count incremented and cause recorded.
func (m *Manager) Requeue(ctx context.Context, entry Entry, cause error) error {
	entry.RetryCount++
	entry.Status = StatusPending
	if cause != nil {
		entry.LastError = cause.Error()
	}
	return m.storage.Requeue(ctx, entry)
}

// Complete removes entry after a successful replay and cleans up any
// durable file copies the safety delegate made for it.
func (m *Manager) Complete(ctx context.Context, entry Entry) error {
	if err := m.safety.CleanupFiles(entry.Payload); err != nil {
		return err
	}
	return m.storage.Remove(ctx, entry.ID)
}

// Quarantine permanently drops entry: it has exhausted its retries or its
// type has no registered factory to reconstruct it. Any durable file
// copies are still cleaned up.
func (m *Manager) Quarantine(ctx context.Context, entry Entry) error {
	if err := m.safety.CleanupFiles(entry.Payload); err != nil {
		return err
	}
	return m.storage.Remove(ctx, entry.ID)
}

// List returns every queued entry, in FIFO order, for inspection.
func (m *Manager) List(ctx context.Context) ([]Entry, error) {
	return m.storage.List(ctx)
}

// Len reports how many entries are currently queued.
func (m *Manager) Len(ctx context.Context) (int, error) {
	return m.storage.Len(ctx)
}
