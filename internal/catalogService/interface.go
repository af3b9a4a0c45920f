package catalogService

import (
	"context"

	"Product_Catalog/internal/models"
)

// CatalogService defines the catalog reads, reports and writes
// External packages should use this interface, not the concrete implementations
type CatalogService interface {
	ListDepartments(ctx context.Context) ([]models.Department, error)
	GetDepartment(ctx context.Context, id int64) (*models.Department, error)
	CreateDepartment(ctx context.Context, in models.DepartmentCreate) (*models.Department, error)
	DeleteDepartment(ctx context.Context, id int64) (bool, error)

	ListCategories(ctx context.Context, departmentID *int64) ([]models.Category, error)
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	CreateCategory(ctx context.Context, in models.CategoryCreate) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) (bool, error)

	ListProducts(ctx context.Context, q models.ProductQuery) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	CreateProduct(ctx context.Context, in models.ProductCreate) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, in models.ProductUpdate) (*models.Product, error)
	// DeleteProduct reports false when no product has the id
	DeleteProduct(ctx context.Context, id int64) (bool, error)

	AvgPriceByDepartment(ctx context.Context) ([]models.AvgPriceByDepartment, error)
	TotalStockByCategory(ctx context.Context) ([]models.TotalStockByCategory, error)
	CountProductsByDepartment(ctx context.Context) ([]models.CountProductsByDepartment, error)
	TotalValueByDepartment(ctx context.Context) ([]models.TotalValueByDepartment, error)

	// Ping checks the store, for health checks
	Ping(ctx context.Context) error
}
