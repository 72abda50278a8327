// Package dedupe tracks names already seen and intersects name lists.
package dedupe

import (
	"sync"
	"sync/atomic"
)

// Set records names for at-most-once emission. Safe for concurrent use.
type Set struct {
	mu   sync.RWMutex
	seen map[string]struct{}
	size atomic.Int64
}

// NewSet creates an empty set.
func NewSet(opts ...Option) *Set {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Set{seen: make(map[string]struct{}, cfg.capacity)}
}

// SeenAndRecord atomically checks whether name was seen and records it if not.
// Returns true if name was already seen, false if it was newly recorded.
func (s *Set) SeenAndRecord(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seen[name]; ok {
		return true
	}
	s.seen[name] = struct{}{}
	s.size.Add(1)
	return false
}

// Contains reports whether name was recorded.
func (s *Set) Contains(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.seen[name]
	return ok
}

// Size returns the number of distinct names recorded.
func (s *Set) Size() int64 {
	return s.size.Load()
}

// Intersect returns the names present in both lists, in the order they first
// appear in primary, each at most once. The result is never nil.
func Intersect(primary, secondary []string) []string {
	other := NewSet(WithCapacity(len(secondary)))
	for _, name := range secondary {
		other.SeenAndRecord(name)
	}

	emitted := NewSet(WithCapacity(len(primary)))
	out := make([]string, 0, min(len(primary), len(secondary)))
	for _, name := range primary {
		if !other.Contains(name) {
			continue
		}
		if emitted.SeenAndRecord(name) {
			continue
		}
		out = append(out, name)
	}
	return out
}

// Names projects items onto their names, keeping order.
func Names[T any](items []T, name func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = name(it)
	}
	return out
}
