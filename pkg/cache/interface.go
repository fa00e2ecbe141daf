package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned when a key is absent from the store.
var ErrCacheMiss = errors.New("cache: key not found")

// Store is the minimal keyed storage contract shared by the Redis-backed
// store and the in-memory store used in tests.
type Store interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
}
