package catalogCache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"Product_Catalog/internal/cache"
	"Product_Catalog/internal/logger"
	"Product_Catalog/internal/metrics"
	"Product_Catalog/internal/models"

	"golang.org/x/sync/singleflight"
)

// Config holds the TTL of each namespace
type Config struct {
	ListTTL    time.Duration
	SummaryTTL time.Duration
}

// catalogCache implements Service on top of a generic cache backend
type catalogCache struct {
	backend cache.Service
	config  Config
	logger  logger.Service

	// mu orders invalidations against stores; generation is bumped under it
	mu         sync.Mutex
	generation atomic.Uint64
	degraded   atomic.Bool

	group singleflight.Group
}

// sizer is implemented by backends that can report their entry count
type sizer interface {
	Size() int
}

// New creates a new catalog cache
func New(backend cache.Service, config Config, log logger.Service) Service {
	return &catalogCache{
		backend: backend,
		config:  config,
		logger:  log,
	}
}

// Fetch returns the cached value for key, or runs fill and caches its result
func (c *catalogCache) Fetch(ctx context.Context, ns Namespace, key string, decode DecodeFn, fill FillFn) (interface{}, error) {
	if !c.available(ctx) {
		metrics.RecordCacheOperation(string(ns), metrics.ResultBypass)
		return fill(ctx)
	}

	raw, err := c.backend.Get(ctx, key)
	switch {
	case err == nil:
		value, decodeErr := decode(raw)
		if decodeErr == nil {
			metrics.RecordCacheOperation(string(ns), metrics.ResultHit)
			c.logger.LogInfo(ctx, logger.OpCacheHit, "Serving "+key+" from cache", nil)
			return value, nil
		}
		c.logger.LogError(ctx, logger.OpCacheMiss, key, "Discarding undecodable cache entry", decodeErr, models.LogSeverityLow, nil)
	case errors.Is(err, models.ErrCacheMiss):
	default:
		metrics.RecordCacheOperation(string(ns), metrics.ResultError)
		c.logger.LogError(ctx, logger.OpCacheBypass, key, "Cache read failed, bypassing cache", err, models.LogSeverityMedium, nil)
		return fill(ctx)
	}

	metrics.RecordCacheOperation(string(ns), metrics.ResultMiss)
	c.logger.LogInfo(ctx, logger.OpCacheMiss, "Cache miss for "+key, nil)

	generation := c.generation.Load()
	flightKey := key + "#" + strconv.FormatUint(generation, 10)

	value, err, shared := c.group.Do(flightKey, func() (interface{}, error) {
		return c.fillAndStore(ctx, ns, key, generation, fill)
	})

	// A follower must not fail because the leader's request was cancelled
	if err != nil && shared && ctx.Err() == nil &&
		(errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return c.fillAndStore(ctx, ns, key, generation, fill)
	}

	return value, err
}

func (c *catalogCache) fillAndStore(ctx context.Context, ns Namespace, key string, generation uint64, fill FillFn) (interface{}, error) {
	value, err := fill(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, ns, key, generation, value)
	return value, nil
}

// store writes value only if no invalidation happened since the fill started
func (c *catalogCache) store(ctx context.Context, ns Namespace, key string, generation uint64, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generation.Load() != generation || c.degraded.Load() {
		return
	}

	if err := c.backend.Set(ctx, key, value, c.ttl(ns)); err != nil {
		metrics.RecordCacheOperation(string(ns), metrics.ResultError)
		c.logger.LogError(ctx, logger.OpCacheBypass, key, "Failed to store value in cache", err, models.LogSeverityLow, nil)
		return
	}

	c.updateSize()
}

// available reports whether the cache may be used, retrying a failed invalidation first
func (c *catalogCache) available(ctx context.Context) bool {
	if !c.degraded.Load() {
		return true
	}
	return c.Invalidate(ctx) == nil
}

// Invalidate drops both namespaces; on failure the cache stays bypassed until a later call succeeds
func (c *catalogCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation.Add(1)

	removed := 0
	var errs error
	for _, ns := range Namespaces {
		n, err := c.backend.DeletePrefix(ctx, string(ns))
		removed += n
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("failed to invalidate %s: %w", ns, err))
		}
	}

	metrics.RecordInvalidation(removed, errs)

	if errs != nil {
		if !c.degraded.Swap(true) {
			c.logger.LogError(ctx, logger.OpCacheInvalidate, "", "Cache invalidation failed, bypassing cache until it succeeds", errs, models.LogSeverityHigh, nil)
		}
		return errs
	}

	if c.degraded.Swap(false) {
		c.logger.LogSuccess(ctx, logger.OpCacheInvalidate, "", "Cache invalidation recovered", nil)
	}
	c.updateSize()
	return nil
}

// Flush drops everything in the backend
func (c *catalogCache) Flush(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation.Add(1)
	if _, err := c.backend.DeletePrefix(ctx, ""); err != nil {
		return fmt.Errorf("failed to flush cache: %w", err)
	}
	c.updateSize()
	return nil
}

// Degraded reports whether reads currently bypass the cache
func (c *catalogCache) Degraded() bool {
	return c.degraded.Load()
}

func (c *catalogCache) ttl(ns Namespace) time.Duration {
	if ns == NamespaceSummary {
		return c.config.SummaryTTL
	}
	return c.config.ListTTL
}

func (c *catalogCache) updateSize() {
	if s, ok := c.backend.(sizer); ok {
		metrics.UpdateCacheSize(s.Size())
	}
}
