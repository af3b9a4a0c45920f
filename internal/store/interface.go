package store

import (
	"context"

	"Product_Catalog/internal/models"
)

// Store defines the read and aggregate queries over the catalog tables
// External packages should use this interface, not the concrete implementation
type Store interface {
	ListDepartments(ctx context.Context) ([]models.Department, error)
	GetDepartment(ctx context.Context, id int64) (*models.Department, error)
	// ListCategories returns every category, or only those of departmentID when set
	ListCategories(ctx context.Context, departmentID *int64) ([]models.Category, error)
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	// ListProducts expects a normalized query; category and department are attached
	ListProducts(ctx context.Context, q models.ProductQuery) ([]models.Product, error)

	AvgPriceByDepartment(ctx context.Context) ([]models.AvgPriceByDepartment, error)
	TotalStockByCategory(ctx context.Context) ([]models.TotalStockByCategory, error)
	CountProductsByDepartment(ctx context.Context) ([]models.CountProductsByDepartment, error)
	TotalValueByDepartment(ctx context.Context) ([]models.TotalValueByDepartment, error)

	// WithTx runs fn in a transaction, committing only if fn returns nil and ctx is still live
	WithTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error

	Ping(ctx context.Context) error
	Close() error
}

// Tx defines the operations available inside a write transaction
type Tx interface {
	DepartmentExists(ctx context.Context, id int64) (bool, error)
	CategoryExists(ctx context.Context, id int64) (bool, error)
	DepartmentNameTaken(ctx context.Context, name string) (bool, error)
	CategoryNameTaken(ctx context.Context, departmentID int64, name string) (bool, error)
	// ProductNameTaken ignores the product with excludeID so an update can keep its own name
	ProductNameTaken(ctx context.Context, name string, excludeID int64) (bool, error)

	InsertDepartment(ctx context.Context, in models.DepartmentCreate) (*models.Department, error)
	InsertCategory(ctx context.Context, in models.CategoryCreate) (*models.Category, error)
	InsertProduct(ctx context.Context, in models.ProductCreate) (*models.Product, error)

	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	UpdateProduct(ctx context.Context, p *models.Product) error

	DeleteProduct(ctx context.Context, id int64) (bool, error)
	// DeleteCategory also removes the category's products
	DeleteCategory(ctx context.Context, id int64) (bool, error)
	// DeleteDepartment also removes the department's categories and their products
	DeleteDepartment(ctx context.Context, id int64) (bool, error)
}
