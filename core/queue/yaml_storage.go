package queue

import (
	"context"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// YAMLFileStorage is a Storage implementation that persists the queue as a
// YAML document on disk, so queued entries survive a process restart
// without a database dependency. Every mutation rewrites the whole file;
// this is adequate for a local/dev-scale offline queue, not a
// high-throughput production backend.
type YAMLFileStorage struct {
	mu      sync.Mutex
	path    string
	order   []uuid.UUID
	entries map[uuid.UUID]Entry
}

type yamlDocument struct {
	Order   []uuid.UUID         `yaml:"order"`
	Entries map[uuid.UUID]Entry `yaml:"entries"`
}

// NewYAMLFileStorage opens (or creates) a YAML-backed queue at path,
// loading any entries already persisted there.
func NewYAMLFileStorage(path string) (*YAMLFileStorage, error) {
	s := &YAMLFileStorage{
		path:    path,
		entries: make(map[uuid.UUID]Entry),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("queue: read %s: %w", path, err)
	}
	if len(raw) == 0 {
		return s, nil
	}

	var doc yamlDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("queue: parse %s: %w", path, err)
	}
	s.order = doc.Order
	if doc.Entries != nil {
		s.entries = doc.Entries
	}
	return s, nil
}

func (s *YAMLFileStorage) persist() error {
	doc := yamlDocument{Order: s.order, Entries: s.entries}
	raw, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("queue: marshal: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("queue: write %s: %w", s.path, err)
	}
	return nil
}

// Enqueue implements Storage.
func (s *YAMLFileStorage) Enqueue(ctx context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[entry.ID] = entry
	s.order = append(s.order, entry.ID)
	return s.persist()
}

// ClaimNext implements Storage.
func (s *YAMLFileStorage) ClaimNext(ctx context.Context) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.order) == 0 {
		return Entry{}, ErrEmpty
	}

	id := s.order[0]
	s.order = s.order[1:]
	entry := s.entries[id]
	delete(s.entries, id)
	if err := s.persist(); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// Requeue implements Storage.
func (s *YAMLFileStorage) Requeue(ctx context.Context, entry Entry) error {
	return s.Enqueue(ctx, entry)
}

// Remove implements Storage.
func (s *YAMLFileStorage) Remove(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return nil
	}
	delete(s.entries, id)
	s.order = slices.DeleteFunc(s.order, func(other uuid.UUID) bool { return other == id })
	return s.persist()
}

// List implements Storage.
func (s *YAMLFileStorage) List(ctx context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.entries[id])
	}
	return out, nil
}

// Len implements Storage.
func (s *YAMLFileStorage) Len(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order), nil
}
