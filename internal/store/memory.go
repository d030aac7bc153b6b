package store

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"sync"
)

// Memory is an in-process Mutator used by tests and dry runs. Values are
// kept in encoded JSON form so callers never share slices with the store.
type Memory struct {
	mu      sync.Mutex
	writeMu sync.Mutex
	data    map[string][]byte
}

var _ Mutator = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Get decodes a previously stored collection.
func (m *Memory) Get(_ context.Context, collection string, dst any) (bool, error) {
	m.mu.Lock()
	raw, ok := m.data[collection]
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode collection %s: %w", collection, err)
	}
	return true, nil
}

// Set stores the JSON encoding of v.
func (m *Memory) Set(_ context.Context, collection string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", collection, err)
	}
	m.mu.Lock()
	m.data[collection] = raw
	m.mu.Unlock()
	return nil
}

// Mutate applies fn to a staged copy and publishes it only on success.
func (m *Memory) Mutate(_ context.Context, fn func(ReadWriter) error) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.mu.Lock()
	staged := &Memory{data: maps.Clone(m.data)}
	m.mu.Unlock()

	if err := fn(staged); err != nil {
		return err
	}

	m.mu.Lock()
	m.data = staged.data
	m.mu.Unlock()
	return nil
}
