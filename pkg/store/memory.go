package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps sheets in process memory. Intended for development
// and tests; nothing survives a restart.
type MemoryStore struct {
	mu     sync.RWMutex
	sheets map[string]*Sheet
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sheets: make(map[string]*Sheet)}
}

// Save stores a copy of the sheet.
func (s *MemoryStore) Save(ctx context.Context, sheet *Sheet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *sheet
	clone.Payload = append([]byte(nil), sheet.Payload...)
	s.sheets[sheet.ID] = &clone
	return nil
}

// Get retrieves a sheet by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Sheet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sheet, ok := s.sheets[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *sheet
	clone.Payload = append([]byte(nil), sheet.Payload...)
	return &clone, nil
}

// List returns all sheets, newest first.
func (s *MemoryStore) List(ctx context.Context) ([]*Sheet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Sheet, 0, len(s.sheets))
	for _, sheet := range s.sheets {
		clone := *sheet
		clone.Payload = append([]byte(nil), sheet.Payload...)
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Delete removes a sheet.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sheets[id]; !ok {
		return ErrNotFound
	}
	delete(s.sheets, id)
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
