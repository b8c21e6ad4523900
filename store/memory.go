package store

import (
	"context"
	"sync"
)

// MemoryBackend keeps collections in process memory. Contents vanish on restart.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

func (m *MemoryBackend) Name() string { return "memory" }

func (m *MemoryBackend) Load(_ context.Context, coll Collection, out any) (bool, error) {
	m.mu.RLock()
	raw, ok := m.data[storageKey(coll)]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return true, decodeRecords(raw, out)
}

func (m *MemoryBackend) Save(_ context.Context, coll Collection, records []any) error {
	raw, err := encodeRecords(records)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[storageKey(coll)] = raw
	m.mu.Unlock()
	return nil
}

func (m *MemoryBackend) Clear(_ context.Context, coll Collection) error {
	m.mu.Lock()
	delete(m.data, storageKey(coll))
	m.mu.Unlock()
	return nil
}

func (m *MemoryBackend) Close(context.Context) error { return nil }
