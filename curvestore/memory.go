package curvestore

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/hupe1980/zcurve"
)

// MemoryStore is an in-memory Store implementation for testing.
// Thread-safe for concurrent reads and writes.
type MemoryStore struct {
	mu     sync.RWMutex
	curves map[string][]byte
}

// NewMemoryStore creates a new in-memory curve store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		curves: make(map[string][]byte),
	}
}

// Put writes a curve under the given name.
func (m *MemoryStore) Put(_ context.Context, name string, c *zcurve.SurrogateCurve) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.curves[name] = data
	return nil
}

// Get reads the curve stored under the given name.
func (m *MemoryStore) Get(_ context.Context, name string) (*zcurve.SurrogateCurve, error) {
	m.mu.RLock()
	data, ok := m.curves[name]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}

	var c zcurve.SurrogateCurve
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}

	return &c, nil
}
