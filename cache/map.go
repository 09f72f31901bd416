package cache

import (
	"sync"
)

// Map is a concurrency-safe in-memory key-value store.
type Map[K comparable, V any] struct {
	data map[K]V
	sync.RWMutex
}

// NewMap creates an empty map.
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{data: make(map[K]V)}
}

// Get retrieves a value by key, with existence check.
func (m *Map[K, V]) Get(key K) (V, bool) {
	m.RLock()
	defer m.RUnlock()
	value, ok := m.data[key]
	return value, ok
}

// Set stores a value under the given key.
func (m *Map[K, V]) Set(key K, value V) {
	m.Lock()
	defer m.Unlock()
	m.data[key] = value
}

// Size returns the number of entries.
func (m *Map[K, V]) Size() int {
	m.RLock()
	defer m.RUnlock()
	return len(m.data)
}

// Clear empties the map.
func (m *Map[K, V]) Clear() {
	m.Lock()
	defer m.Unlock()
	m.data = make(map[K]V)
}

// Range invokes fn for every entry until fn returns false.
func (m *Map[K, V]) Range(fn func(key K, value V) bool) {
	m.RLock()
	defer m.RUnlock()
	for key, value := range m.data {
		if !fn(key, value) {
			return
		}
	}
}
