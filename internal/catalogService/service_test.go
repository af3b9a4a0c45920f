package catalogService

import (
	"context"
	"errors"
	"testing"
	"time"

	"Product_Catalog/internal/cache"
	"Product_Catalog/internal/cache/catalogCache"
	"Product_Catalog/internal/logger"
	"Product_Catalog/internal/mocks"
	"Product_Catalog/internal/models"
	"Product_Catalog/internal/store"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testCacheConfig = catalogCache.Config{ListTTL: 60 * time.Second, SummaryTTL: 120 * time.Second}

type fixture struct {
	service CatalogService
	store   store.Store
	backend *cache.MemoryCache
}

func setup(t *testing.T) *fixture {
	t.Helper()

	st, err := store.Open(context.Background(), "sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	backend := cache.NewMemoryCacheWithClock(clockwork.NewRealClock(), 0)
	t.Cleanup(func() { _ = backend.Close() })

	log := logger.NewZerologLogger(zerolog.Nop())
	return &fixture{
		service: NewService(st, catalogCache.New(backend, testCacheConfig, log), log),
		store:   st,
		backend: backend,
	}
}

func ptr[T any](v T) *T {
	return &v
}

func (f *fixture) department(t *testing.T, name string) *models.Department {
	t.Helper()
	d, err := f.service.CreateDepartment(context.Background(), models.DepartmentCreate{Name: name})
	require.NoError(t, err)
	return d
}

func (f *fixture) category(t *testing.T, name string, departmentID int64) *models.Category {
	t.Helper()
	c, err := f.service.CreateCategory(context.Background(), models.CategoryCreate{Name: name, DepartmentID: departmentID})
	require.NoError(t, err)
	return c
}

func (f *fixture) product(t *testing.T, name string, price float64, stock int64, categoryID int64) *models.Product {
	t.Helper()
	p, err := f.service.CreateProduct(context.Background(), models.ProductCreate{
		Name:       name,
		Price:      ptr(price),
		Stock:      stock,
		CategoryID: categoryID,
	})
	require.NoError(t, err)
	return p
}

// seed creates Men/Shirt and Women/Dress with three products
func (f *fixture) seed(t *testing.T) (men, women *models.Department, shirt, dress *models.Category) {
	t.Helper()
	men = f.department(t, "Men")
	women = f.department(t, "Women")
	shirt = f.category(t, "Shirt", men.ID)
	dress = f.category(t, "Dress", women.ID)

	f.product(t, "Oxford White Shirt", 149.90, 20, shirt.ID)
	f.product(t, "Linen Shirt", 89.90, 5, shirt.ID)
	f.product(t, "Summer Dress", 199.00, 3, dress.ID)
	return men, women, shirt, dress
}

func names(products []models.Product) []string {
	result := make([]string, 0, len(products))
	for _, p := range products {
		result = append(result, p.Name)
	}
	return result
}

func TestCreateProduct_ReturnsCategoryAndDepartment(t *testing.T) {
	f := setup(t)

	men := f.department(t, "Men")
	shirt := f.category(t, "Shirt", men.ID)
	assert.Equal(t, int64(1), men.ID)
	assert.Equal(t, int64(1), shirt.ID)
	require.NotNil(t, shirt.Department)
	assert.Equal(t, "Men", shirt.Department.Name)

	p := f.product(t, "Oxford White Shirt", 149.90, 20, shirt.ID)

	require.NotNil(t, p.Category)
	require.NotNil(t, p.Category.Department)
	assert.Equal(t, int64(1), p.Category.ID)
	assert.Equal(t, int64(1), p.Category.Department.ID)
	assert.Equal(t, "Men", p.Category.Department.Name)
	assert.InDelta(t, 149.90, p.Price, 1e-9)
	assert.Equal(t, int64(20), p.Stock)
}

func TestCreateProduct_InvalidCategoryIsRejected(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.service.CreateProduct(ctx, models.ProductCreate{
		Name:       "Orphan",
		Price:      ptr(10.0),
		CategoryID: 999999,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidReference)

	products, err := f.service.ListProducts(ctx, models.ProductQuery{})
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestCreateProduct_Validation(t *testing.T) {
	f := setup(t)
	men := f.department(t, "Men")
	shirt := f.category(t, "Shirt", men.ID)

	tests := []struct {
		name  string
		input models.ProductCreate
	}{
		{"negative price", models.ProductCreate{Name: "A", Price: ptr(-1.0), CategoryID: shirt.ID}},
		{"negative stock", models.ProductCreate{Name: "A", Price: ptr(1.0), Stock: -1, CategoryID: shirt.ID}},
		{"missing price", models.ProductCreate{Name: "A", CategoryID: shirt.ID}},
		{"missing name", models.ProductCreate{Price: ptr(1.0), CategoryID: shirt.ID}},
		{"missing category", models.ProductCreate{Name: "A", Price: ptr(1.0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.CreateProduct(context.Background(), tt.input)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
}

func TestCreate_DuplicateNames(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	men, _, shirt, _ := f.seed(t)

	_, err := f.service.CreateDepartment(ctx, models.DepartmentCreate{Name: "Men"})
	assert.ErrorIs(t, err, models.ErrDuplicate)

	_, err = f.service.CreateCategory(ctx, models.CategoryCreate{Name: "Shirt", DepartmentID: men.ID})
	assert.ErrorIs(t, err, models.ErrDuplicate)

	_, err = f.service.CreateProduct(ctx, models.ProductCreate{Name: "Linen Shirt", Price: ptr(1.0), CategoryID: shirt.ID})
	assert.ErrorIs(t, err, models.ErrDuplicate)
}

func TestCreateCategory_UnknownDepartment(t *testing.T) {
	f := setup(t)

	_, err := f.service.CreateCategory(context.Background(), models.CategoryCreate{Name: "Shirt", DepartmentID: 42})

	assert.ErrorIs(t, err, models.ErrInvalidReference)
}

func TestCountByDepartment_ReflectsWrites(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	men := f.department(t, "Men")
	women := f.department(t, "Women")
	shirt := f.category(t, "Shirt", men.ID)
	dress := f.category(t, "Dress", women.ID)
	f.product(t, "Oxford White Shirt", 149.90, 20, shirt.ID)
	f.product(t, "Summer Dress", 199.00, 3, dress.ID)

	counts, err := f.service.CountProductsByDepartment(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.CountProductsByDepartment{
		{DepartmentID: men.ID, DepartmentName: "Men", ProductCount: 1},
		{DepartmentID: women.ID, DepartmentName: "Women", ProductCount: 1},
	}, counts)

	f.product(t, "Linen Shirt", 89.90, 5, shirt.ID)

	counts, err = f.service.CountProductsByDepartment(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[0].ProductCount)
	assert.Equal(t, int64(1), counts[1].ProductCount)
}

func TestReports_ServedFromCacheUntilWrite(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	_, _, shirt, _ := f.seed(t)

	before, err := f.service.TotalStockByCategory(ctx)
	require.NoError(t, err)

	// A write that bypasses the service does not invalidate
	require.NoError(t, f.store.WithTx(ctx, func(ctx context.Context, tx store.Tx) error {
		_, err := tx.InsertProduct(ctx, models.ProductCreate{Name: "Silk Shirt", Price: ptr(300.0), Stock: 100, CategoryID: shirt.ID})
		return err
	}))

	cached, err := f.service.TotalStockByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, cached)

	// Any service write drops the summary namespace
	f.product(t, "Flannel Shirt", 59.90, 1, shirt.ID)

	after, err := f.service.TotalStockByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(126), after[0].TotalStock)
}

func TestReports_Aggregates(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	men, women, shirt, dress := f.seed(t)
	empty := f.department(t, "Kids")
	f.category(t, "Toys", empty.ID)

	avg, err := f.service.AvgPriceByDepartment(ctx)
	require.NoError(t, err)
	require.Len(t, avg, 2)
	assert.Equal(t, men.ID, avg[0].DepartmentID)
	assert.InDelta(t, (149.90+89.90)/2, avg[0].AvgPrice, 1e-9)
	assert.Equal(t, women.ID, avg[1].DepartmentID)
	assert.InDelta(t, 199.00, avg[1].AvgPrice, 1e-9)

	stock, err := f.service.TotalStockByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.TotalStockByCategory{
		{CategoryID: shirt.ID, CategoryName: "Shirt", DepartmentID: men.ID, DepartmentName: "Men", TotalStock: 25},
		{CategoryID: dress.ID, CategoryName: "Dress", DepartmentID: women.ID, DepartmentName: "Women", TotalStock: 3},
	}, stock)

	value, err := f.service.TotalValueByDepartment(ctx)
	require.NoError(t, err)
	require.Len(t, value, 2, "departments without products are absent")
	assert.InDelta(t, 149.90*20+89.90*5, value[0].TotalValue, 1e-6)
	assert.InDelta(t, 199.00*3, value[1].TotalValue, 1e-6)

	counts, err := f.service.CountProductsByDepartment(ctx)
	require.NoError(t, err)
	for _, row := range counts {
		assert.NotEqual(t, empty.ID, row.DepartmentID)
	}
}

func TestListProducts_NameFilterIsCaseInsensitive(t *testing.T) {
	f := setup(t)
	f.seed(t)

	products, err := f.service.ListProducts(context.Background(), models.ProductQuery{Name: ptr("shirt")})

	require.NoError(t, err)
	assert.Equal(t, []string{"Oxford White Shirt", "Linen Shirt"}, names(products))
}

func TestListProducts_NameFilterFoldsNonASCII(t *testing.T) {
	f := setup(t)
	d := f.department(t, "Hombre")
	c := f.category(t, "Camisas", d.ID)
	f.product(t, "Camisa Ébano", 59.90, 4, c.ID)
	f.product(t, "Straße Shirt", 39.90, 2, c.ID)

	tests := map[string]string{
		"ébano":   "Camisa Ébano",
		"ÉBANO":   "Camisa Ébano",
		"Ébano":   "Camisa Ébano",
		"STRASSE": "Straße Shirt",
		"straße":  "Straße Shirt",
	}

	for filter, expected := range tests {
		t.Run(filter, func(t *testing.T) {
			products, err := f.service.ListProducts(context.Background(), models.ProductQuery{Limit: 10, Name: ptr(filter)})

			require.NoError(t, err)
			assert.Equal(t, []string{expected}, names(products))
		})
	}
}

func TestListProducts_NameFilterEscapesWildcards(t *testing.T) {
	f := setup(t)
	f.seed(t)

	products, err := f.service.ListProducts(context.Background(), models.ProductQuery{Name: ptr("%")})

	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestListProducts_PriceRangeAndDepartment(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	men, _, _, _ := f.seed(t)

	products, err := f.service.ListProducts(ctx, models.ProductQuery{MinPrice: ptr(100.0), MaxPrice: ptr(200.0)})
	require.NoError(t, err)
	assert.Equal(t, []string{"Oxford White Shirt", "Summer Dress"}, names(products))
	for _, p := range products {
		assert.GreaterOrEqual(t, p.Price, 100.0)
		assert.LessOrEqual(t, p.Price, 200.0)
	}

	products, err = f.service.ListProducts(ctx, models.ProductQuery{
		MinPrice:     ptr(100.0),
		MaxPrice:     ptr(200.0),
		DepartmentID: ptr(men.ID),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Oxford White Shirt"}, names(products))
	assert.Equal(t, men.ID, products[0].Category.Department.ID)
}

func TestListProducts_CategoryFilter(t *testing.T) {
	f := setup(t)
	_, _, _, dress := f.seed(t)

	products, err := f.service.ListProducts(context.Background(), models.ProductQuery{CategoryID: ptr(dress.ID)})

	require.NoError(t, err)
	assert.Equal(t, []string{"Summer Dress"}, names(products))
}

func TestListProducts_Sorting(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.seed(t)

	tests := []struct {
		name     string
		sortBy   models.SortField
		order    models.SortOrder
		expected []string
	}{
		{"default is id ascending", "", "", []string{"Oxford White Shirt", "Linen Shirt", "Summer Dress"}},
		{"unknown field falls back to id", "colour", "", []string{"Oxford White Shirt", "Linen Shirt", "Summer Dress"}},
		{"unknown field honours desc", "colour", models.SortDesc, []string{"Summer Dress", "Linen Shirt", "Oxford White Shirt"}},
		{"price descending", models.SortByPrice, models.SortDesc, []string{"Summer Dress", "Oxford White Shirt", "Linen Shirt"}},
		{"name ascending", models.SortByName, models.SortAsc, []string{"Linen Shirt", "Oxford White Shirt", "Summer Dress"}},
		{"anything but desc is ascending", models.SortByStock, "DESC", []string{"Summer Dress", "Linen Shirt", "Oxford White Shirt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := f.service.ListProducts(ctx, models.ProductQuery{SortBy: tt.sortBy, Order: tt.order})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, names(products))
		})
	}
}

func TestListProducts_Pagination(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.seed(t)

	page, err := f.service.ListProducts(ctx, models.ProductQuery{Skip: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"Linen Shirt"}, names(page))

	page, err = f.service.ListProducts(ctx, models.ProductQuery{Skip: 10, Limit: 5})
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestListProducts_InvalidPagination(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.service.ListProducts(ctx, models.ProductQuery{Skip: -1})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = f.service.ListProducts(ctx, models.ProductQuery{Limit: models.MaxPageLimit + 1})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = f.service.ListProducts(ctx, models.ProductQuery{Limit: -5})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestListProducts_EquivalentQueriesShareOneEntry(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.seed(t)

	_, err := f.service.ListProducts(ctx, models.ProductQuery{SortBy: "unknown", Order: "up"})
	require.NoError(t, err)
	_, err = f.service.ListProducts(ctx, models.ProductQuery{Limit: models.DefaultPageLimit, SortBy: models.SortByID, Order: models.SortAsc})
	require.NoError(t, err)

	assert.Equal(t, 1, f.backend.Size())
}

func TestUpdateProduct_PartialStock(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	_, _, shirt, _ := f.seed(t)

	stock, err := f.service.TotalStockByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(25), stock[0].TotalStock)

	original, err := f.service.GetProduct(ctx, 1)
	require.NoError(t, err)

	updated, err := f.service.UpdateProduct(ctx, 1, models.ProductUpdate{Stock: ptr(int64(7))})
	require.NoError(t, err)

	assert.Equal(t, int64(7), updated.Stock)
	assert.Equal(t, original.Name, updated.Name)
	assert.Equal(t, original.Price, updated.Price)
	assert.Equal(t, shirt.ID, updated.CategoryID)
	assert.Equal(t, original.Description, updated.Description)

	stock, err = f.service.TotalStockByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(12), stock[0].TotalStock)

	products, err := f.service.ListProducts(ctx, models.ProductQuery{Name: ptr("oxford")})
	require.NoError(t, err)
	assert.Equal(t, int64(7), products[0].Stock)
}

func TestUpdateProduct_MovesCategory(t *testing.T) {
	f := setup(t)
	_, women, _, dress := f.seed(t)

	updated, err := f.service.UpdateProduct(context.Background(), 1, models.ProductUpdate{CategoryID: ptr(dress.ID)})

	require.NoError(t, err)
	assert.Equal(t, dress.ID, updated.Category.ID)
	assert.Equal(t, women.ID, updated.Category.Department.ID)
}

func TestUpdateProduct_Errors(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.seed(t)

	_, err := f.service.UpdateProduct(ctx, 404, models.ProductUpdate{Stock: ptr(int64(1))})
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = f.service.UpdateProduct(ctx, 1, models.ProductUpdate{CategoryID: ptr(int64(999999))})
	assert.ErrorIs(t, err, models.ErrInvalidReference)

	_, err = f.service.UpdateProduct(ctx, 1, models.ProductUpdate{Name: ptr("Linen Shirt")})
	assert.ErrorIs(t, err, models.ErrDuplicate)

	_, err = f.service.UpdateProduct(ctx, 1, models.ProductUpdate{Price: ptr(-0.01)})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = f.service.UpdateProduct(ctx, 1, models.ProductUpdate{Name: ptr("")})
	assert.ErrorIs(t, err, models.ErrValidation)

	unchanged, err := f.service.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Oxford White Shirt", unchanged.Name)
	assert.Equal(t, int64(20), unchanged.Stock)
}

func TestUpdateProduct_KeepsOwnName(t *testing.T) {
	f := setup(t)
	f.seed(t)

	updated, err := f.service.UpdateProduct(context.Background(), 1, models.ProductUpdate{
		Name:  ptr("Oxford White Shirt"),
		Price: ptr(129.90),
	})

	require.NoError(t, err)
	assert.InDelta(t, 129.90, updated.Price, 1e-9)
}

func TestUpdateProduct_Description(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.seed(t)

	updated, err := f.service.UpdateProduct(ctx, 1, models.ProductUpdate{Description: models.SetString("Slim fit")})
	require.NoError(t, err)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "Slim fit", *updated.Description)

	updated, err = f.service.UpdateProduct(ctx, 1, models.ProductUpdate{Stock: ptr(int64(9))})
	require.NoError(t, err)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "Slim fit", *updated.Description)

	updated, err = f.service.UpdateProduct(ctx, 1, models.ProductUpdate{Description: models.Null()})
	require.NoError(t, err)
	assert.Nil(t, updated.Description)

	stored, err := f.service.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, stored.Description)
}

func TestDeleteProduct(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.seed(t)

	counts, err := f.service.CountProductsByDepartment(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[0].ProductCount)

	deleted, err := f.service.DeleteProduct(ctx, 1)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = f.service.DeleteProduct(ctx, 1)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = f.service.GetProduct(ctx, 1)
	assert.ErrorIs(t, err, models.ErrNotFound)

	counts, err = f.service.CountProductsByDepartment(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[0].ProductCount)
}

func TestDeleteDepartment_RemovesCategoriesAndProducts(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	men, women, shirt, _ := f.seed(t)

	deleted, err := f.service.DeleteDepartment(ctx, men.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = f.service.GetCategory(ctx, shirt.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	products, err := f.service.ListProducts(ctx, models.ProductQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Summer Dress"}, names(products))

	counts, err := f.service.CountProductsByDepartment(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.CountProductsByDepartment{
		{DepartmentID: women.ID, DepartmentName: "Women", ProductCount: 1},
	}, counts)
}

func TestDeleteCategory_RemovesProducts(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	men, _, shirt, _ := f.seed(t)

	deleted, err := f.service.DeleteCategory(ctx, shirt.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	products, err := f.service.ListProducts(ctx, models.ProductQuery{DepartmentID: ptr(men.ID)})
	require.NoError(t, err)
	assert.Empty(t, products)

	deleted, err = f.service.DeleteCategory(ctx, shirt.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestListCategories(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	_, women, _, dress := f.seed(t)

	all, err := f.service.ListCategories(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byDepartment, err := f.service.ListCategories(ctx, ptr(women.ID))
	require.NoError(t, err)
	require.Len(t, byDepartment, 1)
	assert.Equal(t, dress.ID, byDepartment[0].ID)
	assert.Equal(t, "Women", byDepartment[0].Department.Name)

	departments, err := f.service.ListDepartments(ctx)
	require.NoError(t, err)
	assert.Len(t, departments, 2)

	_, err = f.service.GetDepartment(ctx, 99)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestWrite_CancelledContextPersistsNothing(t *testing.T) {
	f := setup(t)
	men := f.department(t, "Men")
	shirt := f.category(t, "Shirt", men.ID)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.service.CreateProduct(ctx, models.ProductCreate{Name: "Ghost", Price: ptr(1.0), CategoryID: shirt.ID})
	assert.ErrorIs(t, err, context.Canceled)

	products, err := f.service.ListProducts(context.Background(), models.ProductQuery{})
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestWrite_StoreFailureKeepsCacheAndReportsOperationFailed(t *testing.T) {
	mockStore := &mocks.MockStore{Tx: &mocks.MockTx{}}
	backend := cache.NewMemoryCacheWithClock(clockwork.NewRealClock(), 0)
	defer backend.Close()
	log := logger.NewZerologLogger(zerolog.Nop())
	service := NewService(mockStore, catalogCache.New(backend, testCacheConfig, log), log)
	ctx := context.Background()

	rows := []models.CountProductsByDepartment{{DepartmentID: 1, DepartmentName: "Men", ProductCount: 1}}
	mockStore.On("CountProductsByDepartment", mock.Anything).Return(rows, nil).Once()
	_, err := service.CountProductsByDepartment(ctx)
	require.NoError(t, err)

	mockStore.On("WithTx", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()
	_, err = service.CreateDepartment(ctx, models.DepartmentCreate{Name: "Women"})

	assert.ErrorIs(t, err, models.ErrOperationFailed)
	assert.Equal(t, 1, backend.Size(), "a rolled back write does not invalidate")
	mockStore.AssertExpectations(t)
}

func TestWrite_InvalidatesAfterCommit(t *testing.T) {
	mockStore := &mocks.MockStore{Tx: &mocks.MockTx{}}
	backend := new(mocks.MockCache)
	log := logger.NewZerologLogger(zerolog.Nop())
	service := NewService(mockStore, catalogCache.New(backend, testCacheConfig, log), log)
	ctx := context.Background()

	in := models.DepartmentCreate{Name: "Men"}
	mockStore.On("WithTx", mock.Anything, mock.Anything).Return(nil)
	mockStore.Tx.On("DepartmentNameTaken", mock.Anything, "Men").Return(false, nil)
	mockStore.Tx.On("InsertDepartment", mock.Anything, in).Return(&models.Department{ID: 1, Name: "Men"}, nil)
	backend.On("DeletePrefix", mock.Anything, string(catalogCache.NamespaceList)).Return(3, nil).Once()
	backend.On("DeletePrefix", mock.Anything, string(catalogCache.NamespaceSummary)).Return(1, nil).Once()

	d, err := service.CreateDepartment(ctx, in)

	require.NoError(t, err)
	assert.Equal(t, int64(1), d.ID)
	backend.AssertExpectations(t)
	mockStore.Tx.AssertExpectations(t)
}

func TestReport_StoreFailureIsNotCached(t *testing.T) {
	mockStore := &mocks.MockStore{Tx: &mocks.MockTx{}}
	backend := cache.NewMemoryCacheWithClock(clockwork.NewRealClock(), 0)
	defer backend.Close()
	log := logger.NewZerologLogger(zerolog.Nop())
	service := NewService(mockStore, catalogCache.New(backend, testCacheConfig, log), log)

	mockStore.On("AvgPriceByDepartment", mock.Anything).Return(nil, errors.New("connection reset")).Once()

	_, err := service.AvgPriceByDepartment(context.Background())

	assert.ErrorIs(t, err, models.ErrOperationFailed)
	assert.Equal(t, 0, backend.Size())
}
