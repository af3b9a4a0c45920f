package mocks

import (
	"context"

	"Product_Catalog/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockCatalogService is a mock implementation of catalogService.CatalogService
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListDepartments(ctx context.Context) ([]models.Department, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Department), args.Error(1)
}

func (m *MockCatalogService) GetDepartment(ctx context.Context, id int64) (*models.Department, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Department), args.Error(1)
}

func (m *MockCatalogService) CreateDepartment(ctx context.Context, in models.DepartmentCreate) (*models.Department, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Department), args.Error(1)
}

func (m *MockCatalogService) DeleteDepartment(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogService) ListCategories(ctx context.Context, departmentID *int64) ([]models.Category, error) {
	args := m.Called(ctx, departmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCatalogService) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCatalogService) CreateCategory(ctx context.Context, in models.CategoryCreate) (*models.Category, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCatalogService) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// ListProducts mocks the ListProducts method of catalogService.CatalogService
func (m *MockCatalogService) ListProducts(ctx context.Context, q models.ProductQuery) ([]models.Product, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockCatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockCatalogService) CreateProduct(ctx context.Context, in models.ProductCreate) (*models.Product, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockCatalogService) UpdateProduct(ctx context.Context, id int64, in models.ProductUpdate) (*models.Product, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockCatalogService) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogService) AvgPriceByDepartment(ctx context.Context) ([]models.AvgPriceByDepartment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AvgPriceByDepartment), args.Error(1)
}

func (m *MockCatalogService) TotalStockByCategory(ctx context.Context) ([]models.TotalStockByCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TotalStockByCategory), args.Error(1)
}

func (m *MockCatalogService) CountProductsByDepartment(ctx context.Context) ([]models.CountProductsByDepartment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CountProductsByDepartment), args.Error(1)
}

func (m *MockCatalogService) TotalValueByDepartment(ctx context.Context) ([]models.TotalValueByDepartment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TotalValueByDepartment), args.Error(1)
}

// Ping mocks the health check
func (m *MockCatalogService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
