package persistence

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryDocumentStore keeps the document in process memory.
// Used by tests and by the memory store driver.
type MemoryDocumentStore struct {
	mu     sync.RWMutex
	fields map[string]json.RawMessage
	// FailMerge, when set, is returned by Merge without writing
	FailMerge error
}

// NewMemoryDocumentStore creates an empty in-memory document
func NewMemoryDocumentStore() *MemoryDocumentStore {
	return &MemoryDocumentStore{fields: make(map[string]json.RawMessage)}
}

// Fetch implements DocumentStore
func (s *MemoryDocumentStore) Fetch(ctx context.Context) (map[string]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]json.RawMessage, len(s.fields))
	for k, v := range s.fields {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out, nil
}

// Merge implements DocumentStore
func (s *MemoryDocumentStore) Merge(ctx context.Context, fields map[string]json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailMerge != nil {
		return s.FailMerge
	}
	for k, v := range fields {
		s.fields[k] = append(json.RawMessage(nil), v...)
	}
	return nil
}

// Ping implements DocumentStore
func (s *MemoryDocumentStore) Ping(ctx context.Context) error {
	return nil
}

var _ DocumentStore = (*MemoryDocumentStore)(nil)
