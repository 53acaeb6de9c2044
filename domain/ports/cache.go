package ports

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss reports an absent key.
var ErrCacheMiss = errors.New("cache miss")

// Cache is the key-value slice of the cache client the services use.
// Get returns ErrCacheMiss when the key is absent or expired.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, expiration time.Duration) error
}
