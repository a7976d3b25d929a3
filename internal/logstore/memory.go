package logstore

import (
	"context"
	"strings"
	"sync"
)

// MemoryKV is an in-memory KV, used in tests and as a throwaway backend.
type MemoryKV struct {
	mutex sync.Mutex
	slots map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		slots: map[string][]byte{},
	}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	value, ok := m.slots[key]
	if !ok {
		return nil, nil
	}
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)
	return valueCopy, nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)
	m.slots[key] = valueCopy
	return nil
}

func (m *MemoryKV) Keys(_ context.Context, prefix string) ([]string, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	var keys []string
	for key := range m.slots {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (m *MemoryKV) Remove(_ context.Context, keys ...string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, key := range keys {
		delete(m.slots, key)
	}
	return nil
}
