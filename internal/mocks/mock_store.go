package mocks

import (
	"context"

	"Product_Catalog/internal/models"
	"Product_Catalog/internal/store"

	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of store.Store.
// WithTx runs the callback against Tx when the expectation returns nil.
type MockStore struct {
	mock.Mock
	Tx *MockTx
}

// ListDepartments mocks the ListDepartments method of store.Store
func (m *MockStore) ListDepartments(ctx context.Context) ([]models.Department, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Department), args.Error(1)
}

// GetDepartment mocks the GetDepartment method of store.Store
func (m *MockStore) GetDepartment(ctx context.Context, id int64) (*models.Department, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Department), args.Error(1)
}

// ListCategories mocks the ListCategories method of store.Store
func (m *MockStore) ListCategories(ctx context.Context, departmentID *int64) ([]models.Category, error) {
	args := m.Called(ctx, departmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

// GetCategory mocks the GetCategory method of store.Store
func (m *MockStore) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

// GetProduct mocks the GetProduct method of store.Store
func (m *MockStore) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

// ListProducts mocks the ListProducts method of store.Store
func (m *MockStore) ListProducts(ctx context.Context, q models.ProductQuery) ([]models.Product, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

// AvgPriceByDepartment mocks the AvgPriceByDepartment method of store.Store
func (m *MockStore) AvgPriceByDepartment(ctx context.Context) ([]models.AvgPriceByDepartment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AvgPriceByDepartment), args.Error(1)
}

// TotalStockByCategory mocks the TotalStockByCategory method of store.Store
func (m *MockStore) TotalStockByCategory(ctx context.Context) ([]models.TotalStockByCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TotalStockByCategory), args.Error(1)
}

// CountProductsByDepartment mocks the CountProductsByDepartment method of store.Store
func (m *MockStore) CountProductsByDepartment(ctx context.Context) ([]models.CountProductsByDepartment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CountProductsByDepartment), args.Error(1)
}

// TotalValueByDepartment mocks the TotalValueByDepartment method of store.Store
func (m *MockStore) TotalValueByDepartment(ctx context.Context) ([]models.TotalValueByDepartment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TotalValueByDepartment), args.Error(1)
}

// WithTx mocks the WithTx method of store.Store
func (m *MockStore) WithTx(ctx context.Context, fn func(ctx context.Context, tx store.Tx) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, m.Tx)
}

// Ping mocks the Ping method of store.Store
func (m *MockStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close mocks the Close method of store.Store
func (m *MockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockTx is a mock implementation of store.Tx
type MockTx struct {
	mock.Mock
}

// DepartmentExists mocks the DepartmentExists method of store.Tx
func (m *MockTx) DepartmentExists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// CategoryExists mocks the CategoryExists method of store.Tx
func (m *MockTx) CategoryExists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// DepartmentNameTaken mocks the DepartmentNameTaken method of store.Tx
func (m *MockTx) DepartmentNameTaken(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

// CategoryNameTaken mocks the CategoryNameTaken method of store.Tx
func (m *MockTx) CategoryNameTaken(ctx context.Context, departmentID int64, name string) (bool, error) {
	args := m.Called(ctx, departmentID, name)
	return args.Bool(0), args.Error(1)
}

// ProductNameTaken mocks the ProductNameTaken method of store.Tx
func (m *MockTx) ProductNameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

// InsertDepartment mocks the InsertDepartment method of store.Tx
func (m *MockTx) InsertDepartment(ctx context.Context, in models.DepartmentCreate) (*models.Department, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Department), args.Error(1)
}

// InsertCategory mocks the InsertCategory method of store.Tx
func (m *MockTx) InsertCategory(ctx context.Context, in models.CategoryCreate) (*models.Category, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

// InsertProduct mocks the InsertProduct method of store.Tx
func (m *MockTx) InsertProduct(ctx context.Context, in models.ProductCreate) (*models.Product, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

// GetProduct mocks the GetProduct method of store.Tx
func (m *MockTx) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

// UpdateProduct mocks the UpdateProduct method of store.Tx
func (m *MockTx) UpdateProduct(ctx context.Context, p *models.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// DeleteProduct mocks the DeleteProduct method of store.Tx
func (m *MockTx) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// DeleteCategory mocks the DeleteCategory method of store.Tx
func (m *MockTx) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// DeleteDepartment mocks the DeleteDepartment method of store.Tx
func (m *MockTx) DeleteDepartment(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
