package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"Product_Catalog/internal/models"
)

const selectCategory = `
	SELECT c.id, c.name, c.department_id, d.id, d.name
	FROM categories c
	JOIN departments d ON d.id = c.department_id`

func scanCategory(row interface{ Scan(...interface{}) error }) (*models.Category, error) {
	c := &models.Category{Department: &models.Department{}}
	if err := row.Scan(&c.ID, &c.Name, &c.DepartmentID, &c.Department.ID, &c.Department.Name); err != nil {
		return nil, err
	}
	return c, nil
}

// ListCategories returns categories with their department attached, ordered by id
func (q queries) ListCategories(ctx context.Context, departmentID *int64) ([]models.Category, error) {
	query := selectCategory
	var args []interface{}
	if departmentID != nil {
		query += ` WHERE c.department_id = ?`
		args = append(args, *departmentID)
	}
	query += ` ORDER BY c.id`

	rows, err := q.q.QueryContext(ctx, q.dialect.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]models.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

// GetCategory returns the category with id and its department, or models.ErrNotFound
func (q queries) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	c, err := scanCategory(q.q.QueryRowContext(ctx, q.dialect.rebind(selectCategory+` WHERE c.id = ?`), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("category", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return c, nil
}

// CategoryExists reports whether a category with id exists
func (t *sqlTx) CategoryExists(ctx context.Context, id int64) (bool, error) {
	return t.exists(ctx, `SELECT EXISTS (SELECT 1 FROM categories WHERE id = ?)`, id)
}

// CategoryNameTaken reports whether the department already has a category called name
func (t *sqlTx) CategoryNameTaken(ctx context.Context, departmentID int64, name string) (bool, error) {
	return t.exists(ctx, `SELECT EXISTS (SELECT 1 FROM categories WHERE department_id = ? AND name = ?)`, departmentID, name)
}

// InsertCategory creates a category and returns it with its department attached
func (t *sqlTx) InsertCategory(ctx context.Context, in models.CategoryCreate) (*models.Category, error) {
	var id int64
	err := t.q.QueryRowContext(ctx, t.dialect.rebind(`INSERT INTO categories (name, department_id) VALUES (?, ?) RETURNING id`),
		in.Name, in.DepartmentID).Scan(&id)
	if err != nil {
		return nil, writeError("category", in.Name, "insert", err)
	}
	return t.GetCategory(ctx, id)
}

// DeleteCategory removes the category and its products
func (t *sqlTx) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	if _, err := t.q.ExecContext(ctx, t.dialect.rebind(`DELETE FROM products WHERE category_id = ?`), id); err != nil {
		return false, fmt.Errorf("failed to delete category products: %w", err)
	}

	deleted, err := t.execAffected(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete category: %w", err)
	}
	return deleted, nil
}
