package queue

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// MemoryStorage is an in-memory, FIFO Storage implementation. It is safe
// for concurrent use and is the default backend for local development and
// tests; a durable backend would persist entries to disk so the queue
// survives a process restart, which is the whole point of a network replay
// queue in production use.
type MemoryStorage struct {
	mu      sync.Mutex
	order   []uuid.UUID
	entries map[uuid.UUID]Entry
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		entries: make(map[uuid.UUID]Entry),
	}
}

// Enqueue implements Storage.
func (s *MemoryStorage) Enqueue(ctx context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[entry.ID] = entry
	s.order = append(s.order, entry.ID)
	return nil
}

// ClaimNext implements Storage.
func (s *MemoryStorage) ClaimNext(ctx context.Context) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.order) == 0 {
		return Entry{}, ErrEmpty
	}

	id := s.order[0]
	s.order = s.order[1:]
	entry := s.entries[id]
	delete(s.entries, id)
	return entry, nil
}

// Requeue implements Storage.
func (s *MemoryStorage) Requeue(ctx context.Context, entry Entry) error {
	return s.Enqueue(ctx, entry)
}

// Remove implements Storage.
func (s *MemoryStorage) Remove(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return nil
	}
	delete(s.entries, id)
	s.order = slices.DeleteFunc(s.order, func(other uuid.UUID) bool { return other == id })
	return nil
}

// List implements Storage.
func (s *MemoryStorage) List(ctx context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.entries[id])
	}
	return out, nil
}

// Len implements Storage.
func (s *MemoryStorage) Len(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order), nil
}
