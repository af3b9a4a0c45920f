package catalogService

import (
	"context"
	"fmt"

	"Product_Catalog/internal/logger"
	"Product_Catalog/internal/models"
	"Product_Catalog/internal/store"
)

// Departments and categories are small tables read by primary key or in
// full, so their reads go straight to the store.

// ListDepartments returns every department ordered by id
func (s *Service) ListDepartments(ctx context.Context) ([]models.Department, error) {
	departments, err := s.store.ListDepartments(ctx)
	if err != nil {
		return nil, storeError("department", err)
	}
	return departments, nil
}

// GetDepartment returns the department with id
func (s *Service) GetDepartment(ctx context.Context, id int64) (*models.Department, error) {
	d, err := s.store.GetDepartment(ctx, id)
	if err != nil {
		return nil, storeError("department", err)
	}
	return d, nil
}

// CreateDepartment inserts a department with a unique name
func (s *Service) CreateDepartment(ctx context.Context, in models.DepartmentCreate) (*models.Department, error) {
	if err := models.Validate("department", in); err != nil {
		return nil, err
	}

	var created *models.Department
	err := s.write(ctx, logger.OpCreateDepartment, "department", func(ctx context.Context, tx store.Tx) error {
		taken, err := tx.DepartmentNameTaken(ctx, in.Name)
		if err != nil {
			return err
		}
		if taken {
			return duplicate("department", in.Name)
		}

		created, err = tx.InsertDepartment(ctx, in)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogSuccess(ctx, logger.OpCreateDepartment, created.Name, "Department created", map[string]interface{}{
		"id": created.ID,
	})
	return created, nil
}

// DeleteDepartment removes the department together with its categories and their products
func (s *Service) DeleteDepartment(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := s.write(ctx, logger.OpDeleteDepartment, "department", func(ctx context.Context, tx store.Tx) error {
		var err error
		deleted, err = tx.DeleteDepartment(ctx, id)
		return err
	})
	if err != nil {
		return false, err
	}

	if deleted {
		s.logger.LogSuccess(ctx, logger.OpDeleteDepartment, fmt.Sprint(id), "Department deleted", nil)
	}
	return deleted, nil
}

// ListCategories returns every category, or those of departmentID when it is set
func (s *Service) ListCategories(ctx context.Context, departmentID *int64) ([]models.Category, error) {
	categories, err := s.store.ListCategories(ctx, departmentID)
	if err != nil {
		return nil, storeError("category", err)
	}
	return categories, nil
}

// GetCategory returns the category with id and its department
func (s *Service) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	c, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return nil, storeError("category", err)
	}
	return c, nil
}

// CreateCategory inserts a category under an existing department
func (s *Service) CreateCategory(ctx context.Context, in models.CategoryCreate) (*models.Category, error) {
	if err := models.Validate("category", in); err != nil {
		return nil, err
	}

	var created *models.Category
	err := s.write(ctx, logger.OpCreateCategory, "category", func(ctx context.Context, tx store.Tx) error {
		exists, err := tx.DepartmentExists(ctx, in.DepartmentID)
		if err != nil {
			return err
		}
		if !exists {
			return invalidReference("department", in.DepartmentID)
		}

		taken, err := tx.CategoryNameTaken(ctx, in.DepartmentID, in.Name)
		if err != nil {
			return err
		}
		if taken {
			return duplicate("category", in.Name)
		}

		created, err = tx.InsertCategory(ctx, in)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogSuccess(ctx, logger.OpCreateCategory, created.Name, "Category created", map[string]interface{}{
		"id":            created.ID,
		"department_id": created.DepartmentID,
	})
	return created, nil
}

// DeleteCategory removes the category and its products
func (s *Service) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := s.write(ctx, logger.OpDeleteCategory, "category", func(ctx context.Context, tx store.Tx) error {
		var err error
		deleted, err = tx.DeleteCategory(ctx, id)
		return err
	})
	if err != nil {
		return false, err
	}

	if deleted {
		s.logger.LogSuccess(ctx, logger.OpDeleteCategory, fmt.Sprint(id), "Category deleted", nil)
	}
	return deleted, nil
}
