package store

import (
	"context"
	"errors"
	"sync"
)

// MemoryStore is a map-backed Store for tests and dry runs.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	// FailSet, when non-nil, makes Set fail for the named keys. Lets tests
	// exercise save-failure paths.
	FailSet map[string]bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSet[key] {
		return errors.New("store: save failed")
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	s.data[key] = stored
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) HealthCheck(ctx context.Context) error { return nil }
