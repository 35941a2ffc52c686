package store

import (
	"context"
	"sync"
	"time"

	"bifrost/pkg/sentinel"
)

// MemoryStore is an in-memory session store. Suitable for tests and
// single-instance development; records vanish on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]Record),
		now:     time.Now,
	}
}

// WithClock overrides the clock for tests.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *MemoryStore) Create(_ context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[rec.ID]; ok {
		return sentinel.ErrConflict
	}
	rec.CreatedAt = s.now()
	rec.UpdatedAt = rec.CreatedAt
	s.records[rec.ID] = *rec
	return nil
}

func (s *MemoryStore) Find(_ context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	// Copy out so callers cannot mutate the stored record in place.
	out := rec
	return &out, nil
}

func (s *MemoryStore) Update(_ context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.records[rec.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	rec.CreatedAt = existing.CreatedAt
	rec.UpdatedAt = s.now()
	s.records[rec.ID] = *rec
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.records, id)
	return nil
}
