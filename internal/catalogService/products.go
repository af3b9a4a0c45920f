package catalogService

import (
	"context"
	"fmt"
	"time"

	"Product_Catalog/internal/cache/catalogCache"
	"Product_Catalog/internal/logger"
	"Product_Catalog/internal/models"
	"Product_Catalog/internal/store"
)

// normalizeQuery resolves defaults and rejects pagination the store cannot serve
func normalizeQuery(q models.ProductQuery) (models.ProductQuery, error) {
	if q.Skip < 0 {
		return q, models.ValidationError("product", "skip must be greater than or equal to 0")
	}
	if q.Limit == 0 {
		q.Limit = models.DefaultPageLimit
	}
	if q.Limit < 0 || q.Limit > models.MaxPageLimit {
		return q, models.ValidationError("product", fmt.Sprintf("limit must be between 1 and %d", models.MaxPageLimit))
	}
	if q.Name != nil && *q.Name == "" {
		q.Name = nil
	}
	return q.Normalize(), nil
}

// ListProducts returns one page of products, served from the list namespace when cached
func (s *Service) ListProducts(ctx context.Context, q models.ProductQuery) ([]models.Product, error) {
	q, err := normalizeQuery(q)
	if err != nil {
		return nil, err
	}

	key := catalogCache.ListKey(q)
	products, err := catalogCache.Fetch(ctx, s.cache, catalogCache.NamespaceList, key,
		func(ctx context.Context) ([]models.Product, error) {
			return s.store.ListProducts(ctx, q)
		})
	if err != nil {
		err = storeError("product", err)
		s.logger.LogError(ctx, logger.OpListProducts, key, "Failed to list products", err, severityOf(err), nil)
		return nil, err
	}

	return products, nil
}

// GetProduct returns the product with its category and department
func (s *Service) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	p, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, storeError("product", err)
	}
	return p, nil
}

// CreateProduct validates the input, checks the category exists and inserts the product
func (s *Service) CreateProduct(ctx context.Context, in models.ProductCreate) (*models.Product, error) {
	if err := models.Validate("product", in); err != nil {
		return nil, err
	}

	var created *models.Product
	err := s.write(ctx, logger.OpCreateProduct, "product", func(ctx context.Context, tx store.Tx) error {
		exists, err := tx.CategoryExists(ctx, in.CategoryID)
		if err != nil {
			return err
		}
		if !exists {
			return invalidReference("category", in.CategoryID)
		}

		taken, err := tx.ProductNameTaken(ctx, in.Name, 0)
		if err != nil {
			return err
		}
		if taken {
			return duplicate("product", in.Name)
		}

		created, err = tx.InsertProduct(ctx, in)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogSuccess(ctx, logger.OpCreateProduct, created.Name, "Product created", map[string]interface{}{
		"id":          created.ID,
		"category_id": created.CategoryID,
	})
	return created, nil
}

// UpdateProduct applies only the fields present in in
func (s *Service) UpdateProduct(ctx context.Context, id int64, in models.ProductUpdate) (*models.Product, error) {
	if err := models.Validate("product", in); err != nil {
		return nil, err
	}
	if in.Empty() {
		return s.GetProduct(ctx, id)
	}

	start := time.Now()
	var updated *models.Product
	err := s.write(ctx, logger.OpUpdateProduct, "product", func(ctx context.Context, tx store.Tx) error {
		current, err := tx.GetProduct(ctx, id)
		if err != nil {
			return err
		}

		if in.CategoryID != nil && *in.CategoryID != current.CategoryID {
			exists, err := tx.CategoryExists(ctx, *in.CategoryID)
			if err != nil {
				return err
			}
			if !exists {
				return invalidReference("category", *in.CategoryID)
			}
		}

		if in.Name != nil && *in.Name != current.Name {
			taken, err := tx.ProductNameTaken(ctx, *in.Name, id)
			if err != nil {
				return err
			}
			if taken {
				return duplicate("product", *in.Name)
			}
		}

		in.Apply(current)
		if err := tx.UpdateProduct(ctx, current); err != nil {
			return err
		}

		// Reload so a changed category comes back with its own department
		updated, err = tx.GetProduct(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogSuccess(ctx, logger.OpUpdateProduct, updated.Name, "Product updated", map[string]interface{}{
		"id":          id,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return updated, nil
}

// DeleteProduct removes the product with id
func (s *Service) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := s.write(ctx, logger.OpDeleteProduct, "product", func(ctx context.Context, tx store.Tx) error {
		var err error
		deleted, err = tx.DeleteProduct(ctx, id)
		return err
	})
	if err != nil {
		return false, err
	}

	if deleted {
		s.logger.LogSuccess(ctx, logger.OpDeleteProduct, fmt.Sprint(id), "Product deleted", nil)
	}
	return deleted, nil
}
