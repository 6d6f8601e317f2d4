// Package kv provides a small thread-safe key-value cache.
package kv

import "sync"

// Store is a thread-safe key-value store holding at most a fixed number of
// entries. When full, the oldest inserted entry is evicted.
type Store[K comparable, V any] struct {
	mu    sync.RWMutex
	data  map[K]V
	order []K
	limit int
}

// New creates a store that keeps at most limit entries. A limit of zero or
// less means unbounded.
func New[K comparable, V any](limit int) *Store[K, V] {
	return &Store[K, V]{
		data:  make(map[K]V),
		limit: limit,
	}
}

// Get retrieves a value by key.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok
}

func (s *Store[K, V]) set(key K, value V) {
	if _, exists := s.data[key]; !exists {
		if s.limit > 0 && len(s.order) >= s.limit {
			oldest := s.order[0]
			s.order = s.order[1:]
			delete(s.data, oldest)
		}
		s.order = append(s.order, key)
	}
	s.data[key] = value
}

// GetOrSet returns the value for key, computing and storing it with fn on a
// miss. Errors from fn are returned and nothing is stored.
func (s *Store[K, V]) GetOrSet(key K, fn func() (V, error)) (V, error) {
	if val, ok := s.Get(key); ok {
		return val, nil
	}

	val, err := fn()
	if err != nil {
		return val, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(key, val)
	return val, nil
}

// Clear removes all entries from the store.
func (s *Store[K, V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[K]V)
	s.order = nil
}

// Len returns the number of items in the store.
func (s *Store[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
