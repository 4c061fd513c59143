// Package snapshot provides an in-process cache for loaded datasets so
// repeated report runs within one session reuse parsed data instead of
// re-reading source files.
package snapshot

import (
	"sync"
	"time"
)

// Store caches values of one type by key, each entry with its own TTL. A
// zero TTL means the entry never expires.
type Store[T any] struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]entry[T]
}

type entry[T any] struct {
	value    T
	loadedAt time.Time
	ttl      time.Duration
}

// NewStore returns an empty store using wall-clock time.
func NewStore[T any]() *Store[T] {
	return &Store[T]{now: time.Now, entries: make(map[string]entry[T])}
}

// Get returns the cached value for key if present and unexpired.
func (s *Store[T]) Get(key string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	if e.ttl > 0 && s.now().Sub(e.loadedAt) > e.ttl {
		delete(s.entries, key)
		var zero T
		return zero, false
	}
	return e.value, true
}

// Put stores a value under key with the given TTL (zero for no expiry).
func (s *Store[T]) Put(key string, value T, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry[T]{value: value, loadedAt: s.now(), ttl: ttl}
}

// GetOrLoad returns the cached value for key, calling load on a miss and
// caching its result. A load error is returned without caching anything.
func (s *Store[T]) GetOrLoad(key string, ttl time.Duration, load func() (T, error)) (T, error) {
	if v, ok := s.Get(key); ok {
		return v, nil
	}
	v, err := load()
	if err != nil {
		var zero T
		return zero, err
	}
	s.Put(key, v, ttl)
	return v, nil
}

// Clear drops all entries, forcing the next access to reload.
func (s *Store[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]entry[T])
}
