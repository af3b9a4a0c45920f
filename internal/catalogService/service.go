package catalogService

import (
	"context"
	"errors"
	"time"

	"Product_Catalog/internal/cache/catalogCache"
	"Product_Catalog/internal/logger"
	"Product_Catalog/internal/models"
	"Product_Catalog/internal/store"
)

// Service implements the CatalogService interface
type Service struct {
	store  store.Store
	cache  catalogCache.Service
	logger logger.Service
}

// NewService creates a new catalog service
func NewService(
	store store.Store,
	cache catalogCache.Service,
	logger logger.Service,
) CatalogService {
	return &Service{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// Ping checks if the store is reachable
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// write runs fn in a store transaction and invalidates the list and summary
// namespaces once it has committed. A failed invalidation does not fail the
// write; the cache bypasses itself until it can be cleared.
func (s *Service) write(ctx context.Context, operation, entity string, fn func(ctx context.Context, tx store.Tx) error) error {
	start := time.Now()

	if err := s.store.WithTx(ctx, fn); err != nil {
		err = storeError(entity, err)
		s.logger.LogError(ctx, operation, entity, "Write rolled back", err, severityOf(err), map[string]interface{}{
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return err
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.LogError(ctx, logger.OpCacheInvalidate, entity, "Failed to invalidate cache after write", err, models.LogSeverityHigh, nil)
	}

	return nil
}

// storeError keeps the client-facing sentinels and cancellation as they are
// and reports anything else from the store as ErrOperationFailed
func storeError(entity string, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound),
		errors.Is(err, models.ErrInvalidReference),
		errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrDuplicate),
		errors.Is(err, models.ErrOperationFailed),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return models.NewEntityError(entity, 0, err.Error(), models.ErrOperationFailed)
	}
}

// severityOf rates client errors low and store failures high
func severityOf(err error) models.LogSeverity {
	switch {
	case errors.Is(err, models.ErrOperationFailed):
		return models.LogSeverityHigh
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return models.LogSeverityMedium
	default:
		return models.LogSeverityLow
	}
}

func invalidReference(entity string, id int64) error {
	return models.NewEntityError(entity, id, "does not exist", models.ErrInvalidReference)
}

func duplicate(entity, name string) error {
	return models.NewEntityError(entity, 0, "name "+name+" is already taken", models.ErrDuplicate)
}
