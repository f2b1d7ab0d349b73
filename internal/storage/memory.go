package storage

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore provides an in-memory implementation of Store. Values are
// kept as raw JSON so that Get always hands out an independent copy.
type MemoryStore struct {
	mu sync.Mutex
	m  map[string]json.RawMessage
}

// NewMemoryStore instantiates a new MemoryStore with an empty map.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		m: map[string]json.RawMessage{},
	}
}

func (s *MemoryStore) Get(_ context.Context, key string, out any) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}
	s.mu.Lock()
	raw, ok := s.m[key]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, v any) error {
	if key == "" {
		return ErrEmptyKey
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.m[key] = raw
	s.mu.Unlock()
	return nil
}
