package store

import (
	"context"
	"sync"
)

// MemoryStore keeps sources in process memory. Contents are lost on exit.
type MemoryStore struct {
	mu      sync.RWMutex
	sources map[string]Source
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sources: make(map[string]Source)}
}

func (s *MemoryStore) List(ctx context.Context) ([]Source, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Source, 0, len(s.sources))
	for _, src := range s.sources {
		out = append(out, src)
	}
	sortSources(out)
	return out, nil
}

func (s *MemoryStore) Put(ctx context.Context, src Source) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources[src.ID] = src
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sources, id)
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources = make(map[string]Source)
	return nil
}

func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}
