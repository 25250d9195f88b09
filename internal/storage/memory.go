package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore keeps objects in process memory. Used for local runs and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func (m *MemoryStore) Put(_ context.Context, category, id string, blob []byte) error {
	if err := checkKey(category, id); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[Key(category, id)] = append([]byte(nil), blob...)
	return nil
}

func (m *MemoryStore) Get(_ context.Context, category, id string) ([]byte, bool, error) {
	if err := checkKey(category, id); err != nil {
		return nil, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	blob, ok := m.objects[Key(category, id)]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), blob...), true, nil
}

func (m *MemoryStore) Delete(_ context.Context, category, id string) (bool, error) {
	if err := checkKey(category, id); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := Key(category, id)
	_, ok := m.objects[key]
	delete(m.objects, key)
	return ok, nil
}

func (m *MemoryStore) List(_ context.Context, category string) ([]string, error) {
	if err := checkCategory(category); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := []string{}
	for key := range m.objects {
		if !strings.HasPrefix(key, category+"/") {
			continue
		}
		if _, id, ok := ParseKey(key); ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *MemoryStore) Backend() string { return "memory" }

func (m *MemoryStore) Close() error { return nil }
