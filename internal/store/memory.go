package store

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps scores in process. Used when no database is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Submit(_ context.Context, e *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, *e)
	return nil
}

func (s *MemoryStore) Top(_ context.Context, limit int) ([]Entry, error) {
	s.mu.RLock()
	out := slices.Clone(s.entries)
	s.mu.RUnlock()

	slices.SortStableFunc(out, compareEntries)
	if n := clampLimit(limit); len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (s *MemoryStore) Best(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	best := 0
	for _, e := range s.entries {
		best = max(best, e.Score)
	}
	return best, nil
}

func (s *MemoryStore) Close() error { return nil }

// Higher score first, then the earlier game.
func compareEntries(a, b Entry) int {
	if a.Score != b.Score {
		return b.Score - a.Score
	}
	return a.CreatedAt.Compare(b.CreatedAt)
}
