// Package memory provides an in-process counter store for rate limiting.
// It backs tests and redis-less deployments; counts are per-process only.
package memory

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	count     int64
	expiresAt time.Time
}

// CounterStore is a mutex-guarded counter map with lazy TTL expiry. The
// increment holds the lock for the whole read-modify-write, which gives the
// same atomicity guarantee as Redis INCR for concurrent requests.
type CounterStore struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

func NewCounterStore() *CounterStore {
	return &CounterStore{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Increment adds one to the counter at key and returns the new value. The
// ttl is applied when the increment creates the key.
func (s *CounterStore) Increment(_ context.Context, key string, ttl time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.entries[key]
	if !ok || now.After(e.expiresAt) {
		e = &entry{expiresAt: now.Add(ttl)}
		s.entries[key] = e
	}
	e.count++
	return e.count, nil
}

// Get returns the current counter value, or 0 when the key is absent or
// expired.
func (s *CounterStore) Get(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || s.now().After(e.expiresAt) {
		return 0, nil
	}
	return e.count, nil
}

// Sweep drops expired entries. Callers may run it periodically; correctness
// does not depend on it because reads treat expired entries as absent.
func (s *CounterStore) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, k)
		}
	}
}
