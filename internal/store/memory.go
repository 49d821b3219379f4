package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/tbourn/warri-apartment-hunt/internal/domain"
)

// Memory is an in-process Store. It is safe for concurrent use and is the
// backend for tests and for DB_DRIVER=memory.
type Memory struct {
	mu   sync.RWMutex
	data map[domain.Collection]json.RawMessage
	notifier
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[domain.Collection]json.RawMessage)}
}

// Read returns a copy of the stored array, or nil when key is unset.
func (m *Memory) Read(_ context.Context, key domain.Collection) (json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	out := make(json.RawMessage, len(v))
	copy(out, v)
	return out, nil
}

// Write stores a copy of data under key and notifies subscribers.
func (m *Memory) Write(_ context.Context, key domain.Collection, data json.RawMessage) error {
	cp := make(json.RawMessage, len(data))
	copy(cp, data)

	m.mu.Lock()
	m.data[key] = cp
	m.mu.Unlock()

	m.emit(key)
	return nil
}

// OnChanged subscribes fn to change notifications.
func (m *Memory) OnChanged(fn Listener) func() { return m.subscribe(fn) }
