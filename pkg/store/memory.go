package store

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/Andre-Pham/FamApp-sub000/pkg/graph"
)

// MemoryStore keeps families in a map. It is safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	families map[string]graph.FamilyFile
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{families: make(map[string]graph.FamilyFile)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (graph.FamilyFile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.families[id]
	if !ok {
		return graph.FamilyFile{}, ErrNotFound
	}
	return clone(f), nil
}

func (s *MemoryStore) Put(_ context.Context, id string, f graph.FamilyFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.families[id] = clone(f)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.families[id]; !ok {
		return ErrNotFound
	}
	delete(s.families, id)
	return nil
}

func (s *MemoryStore) List(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.families)), nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
