package catalogCache

import (
	"context"
)

// Namespace groups cache keys that are invalidated together
type Namespace string

const (
	NamespaceList    Namespace = "products:list"
	NamespaceSummary Namespace = "products:summary"
)

// Namespaces lists every namespace a write invalidates
var Namespaces = []Namespace{NamespaceList, NamespaceSummary}

// DecodeFn converts a raw backend value into the type the caller expects
type DecodeFn func(raw interface{}) (interface{}, error)

// FillFn loads a value from the source of truth after a miss
type FillFn func(ctx context.Context) (interface{}, error)

// Service defines the read-through cache used by the catalog service
type Service interface {
	// Fetch returns the cached value for key or fills it. Backend failures never
	// fail the call; they bypass the cache.
	Fetch(ctx context.Context, ns Namespace, key string, decode DecodeFn, fill FillFn) (interface{}, error)
	// Invalidate drops every list and summary entry. Fills that started
	// before the call are not stored.
	Invalidate(ctx context.Context) error
	// Flush drops every entry in the backend
	Flush(ctx context.Context) error
	// Degraded reports whether the last invalidation failed and reads bypass the cache
	Degraded() bool
}
