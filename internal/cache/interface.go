package cache

import (
	"context"
	"time"
)

// Service defines the interface for generic caching operations
// External packages should use this interface, not the concrete implementations
type Service interface {
	// Get returns models.ErrCacheMiss when the key is absent or expired
	Get(ctx context.Context, key string) (interface{}, error)
	// Set overwrites any existing entry; a ttl <= 0 expires immediately
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// DeletePrefix removes every key starting with prefix and returns how many were removed.
	// An empty prefix removes everything.
	DeletePrefix(ctx context.Context, prefix string) (int, error)
}
