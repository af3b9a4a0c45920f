package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"Product_Catalog/internal/models"

	"github.com/jonboulle/clockwork"
)

const defaultSweepInterval = 5 * time.Minute

// MemoryCache implements Service using in-memory storage
type MemoryCache struct {
	data  map[string]*cacheEntry
	mutex sync.Mutex
	clock clockwork.Clock

	stop     chan struct{}
	stopOnce sync.Once
}

// cacheEntry represents a single cache entry with expiration
type cacheEntry struct {
	value     interface{}
	expiresAt time.Time
}

// expired reports whether the entry must no longer be served at now
func (e *cacheEntry) expired(now time.Time) bool {
	return !now.Before(e.expiresAt)
}

// NewMemoryCache creates a new in-memory cache on the wall clock
func NewMemoryCache() *MemoryCache {
	return NewMemoryCacheWithClock(clockwork.NewRealClock(), defaultSweepInterval)
}

// NewMemoryCacheWithClock creates an in-memory cache that reads time from clock
// and sweeps expired entries every sweepInterval. A non-positive interval disables sweeping.
func NewMemoryCacheWithClock(clock clockwork.Clock, sweepInterval time.Duration) *MemoryCache {
	cache := &MemoryCache{
		data:  make(map[string]*cacheEntry),
		clock: clock,
		stop:  make(chan struct{}),
	}

	if sweepInterval > 0 {
		go cache.sweep(sweepInterval)
	}

	return cache
}

// Get retrieves a cached value for the given key, dropping it if it has expired
func (m *MemoryCache) Get(ctx context.Context, key string) (interface{}, error) {
	now := m.clock.Now()

	m.mutex.Lock()
	defer m.mutex.Unlock()

	entry, exists := m.data[key]
	if !exists {
		return nil, models.ErrCacheMiss
	}

	if entry.expired(now) {
		delete(m.data, key)
		return nil, models.ErrCacheMiss
	}

	return entry.value, nil
}

// Set stores a value in the cache with the specified TTL
func (m *MemoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	expiresAt := m.clock.Now().Add(ttl)

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.data[key] = &cacheEntry{
		value:     value,
		expiresAt: expiresAt,
	}

	return nil
}

// Delete removes an entry from the cache
func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.data, key)
	return nil
}

// DeletePrefix removes all entries whose key starts with prefix
func (m *MemoryCache) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if prefix == "" {
		removed := len(m.data)
		m.data = make(map[string]*cacheEntry)
		return removed, nil
	}

	removed := 0
	for key := range m.data {
		if strings.HasPrefix(key, prefix) {
			delete(m.data, key)
			removed++
		}
	}

	return removed, nil
}

// Size returns the current number of stored entries, expired or not (for monitoring)
func (m *MemoryCache) Size() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.data)
}

// Close stops the background sweeper
func (m *MemoryCache) Close() error {
	m.stopOnce.Do(func() { close(m.stop) })
	return nil
}

// sweep removes expired entries until Close is called
func (m *MemoryCache) sweep(interval time.Duration) {
	ticker := m.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.Chan():
			m.removeExpired()
		}
	}
}

func (m *MemoryCache) removeExpired() int {
	now := m.clock.Now()

	m.mutex.Lock()
	defer m.mutex.Unlock()

	removed := 0
	for key, entry := range m.data {
		if entry.expired(now) {
			delete(m.data, key)
			removed++
		}
	}
	return removed
}
