package handlers

import (
	"sync"
	"time"
)

// registry keeps per-visitor controller state between requests. Entries
// idle past the TTL are evicted by Cleanup, with onEvict releasing any
// resources the controller holds (timers, preview handles).
type registry[T any] struct {
	mu      sync.Mutex
	entries map[string]*registryEntry[T]
	ttl     time.Duration
	onEvict func(T)
}

type registryEntry[T any] struct {
	value    T
	lastSeen time.Time
}

func newRegistry[T any](ttl time.Duration, onEvict func(T)) *registry[T] {
	return &registry[T]{
		entries: make(map[string]*registryEntry[T]),
		ttl:     ttl,
		onEvict: onEvict,
	}
}

func (r *registry[T]) get(id string) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[id]
	if !ok {
		var zero T
		return zero, false
	}
	entry.lastSeen = time.Now()
	return entry.value, true
}

func (r *registry[T]) put(id string, value T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.entries[id]; ok && r.onEvict != nil {
		r.onEvict(old.value)
	}
	r.entries[id] = &registryEntry[T]{value: value, lastSeen: time.Now()}
}

func (r *registry[T]) delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, ok := r.entries[id]; ok {
		if r.onEvict != nil {
			r.onEvict(entry.value)
		}
		delete(r.entries, id)
	}
}

// Cleanup evicts idle entries periodically. Run in a goroutine at startup.
func (r *registry[T]) Cleanup() {
	for {
		time.Sleep(10 * time.Minute)
		cutoff := time.Now().Add(-r.ttl)
		r.mu.Lock()
		for id, entry := range r.entries {
			if entry.lastSeen.Before(cutoff) {
				if r.onEvict != nil {
					r.onEvict(entry.value)
				}
				delete(r.entries, id)
			}
		}
		r.mu.Unlock()
	}
}
