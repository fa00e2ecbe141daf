package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Keyed layers an optimistic in-memory overlay on top of a Store.
//
// Optimistic values written through SetOptimistic are visible to Get until
// the next server-confirmed write for the same key. A server fetch always
// wins: SetFromServer discards the overlay entry before persisting, and
// Invalidate drops both the overlay and the stored entry.
type Keyed struct {
	store   Store
	mu      sync.Mutex
	overlay map[string]json.RawMessage
}

func NewKeyed(store Store) *Keyed {
	return &Keyed{store: store, overlay: make(map[string]json.RawMessage)}
}

// Get reads a key, preferring an optimistic overlay entry when present.
// Returns false when the key is unknown to both layers.
func (k *Keyed) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	k.mu.Lock()
	raw, ok := k.overlay[key]
	k.mu.Unlock()
	if ok {
		if err := json.Unmarshal(raw, dest); err != nil {
			return false, err
		}
		return true, nil
	}

	err := k.store.Get(ctx, key, dest)
	if err == ErrCacheMiss {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SetFromServer records an authoritative value. Any optimistic overlay for
// the key is discarded first.
func (k *Keyed) SetFromServer(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	k.mu.Lock()
	delete(k.overlay, key)
	k.mu.Unlock()
	return k.store.Set(ctx, key, value, expiration)
}

// SetOptimistic applies an update to the overlay without touching the
// store. The updater receives the current overlay value for the key (nil
// when absent) and returns the replacement.
func (k *Keyed) SetOptimistic(key string, update func(current json.RawMessage) json.RawMessage) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.overlay[key] = update(k.overlay[key])
}

// Invalidate removes the key from the overlay and the store so the next
// read goes back to the server.
func (k *Keyed) Invalidate(ctx context.Context, key string) error {
	k.mu.Lock()
	delete(k.overlay, key)
	k.mu.Unlock()
	return k.store.Delete(ctx, key)
}
