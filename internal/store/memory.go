package store

import (
	"context"
	"sync"

	"resumeforge/internal/types"
)

// MemoryStore keeps user records in process memory. It backs the service
// when no remote store is configured, and doubles as the test store.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]types.UserRecord
}

// Ensure MemoryStore implements RecordStore
var _ RecordStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]types.UserRecord),
	}
}

// GetUser returns the record for username, or a not-found error
func (s *MemoryStore) GetUser(_ context.Context, username string) (*types.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[username]
	if !ok {
		return nil, notFound(username)
	}
	// Return a copy so callers cannot mutate stored state.
	out := record
	return &out, nil
}

// PutUser stores the record under username, replacing any previous value
func (s *MemoryStore) PutUser(_ context.Context, username string, record types.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[username] = record
	return nil
}

// Len reports the number of stored records
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
