package kv

import (
	"context"
	"sync"

	"shopcore/internal/metrics"
)

// MemoryStore is an in-memory Store used by tests and ephemeral deployments.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Driver() Driver { return DriverMemory }

// Read returns the payload stored under key.
func (s *MemoryStore) Read(_ context.Context, key string) (string, bool, error) {
	metrics.StoreReads.WithLabelValues(string(DriverMemory)).Inc()
	s.mu.RLock()
	defer s.mu.RUnlock()
	payload, ok := s.data[key]
	return payload, ok, nil
}

// Write stores payload under key.
func (s *MemoryStore) Write(_ context.Context, key, payload string) error {
	metrics.StoreWrites.WithLabelValues(string(DriverMemory)).Inc()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = payload
	return nil
}
