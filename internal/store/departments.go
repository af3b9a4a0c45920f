package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"Product_Catalog/internal/models"
)

// ListDepartments returns every department ordered by id
func (q queries) ListDepartments(ctx context.Context) ([]models.Department, error) {
	rows, err := q.q.QueryContext(ctx, `SELECT id, name FROM departments ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	departments := make([]models.Department, 0)
	for rows.Next() {
		var d models.Department
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

// GetDepartment returns the department with id or models.ErrNotFound
func (q queries) GetDepartment(ctx context.Context, id int64) (*models.Department, error) {
	var d models.Department
	err := q.q.QueryRowContext(ctx, q.dialect.rebind(`SELECT id, name FROM departments WHERE id = ?`), id).
		Scan(&d.ID, &d.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("department", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	return &d, nil
}

// DepartmentExists reports whether a department with id exists
func (t *sqlTx) DepartmentExists(ctx context.Context, id int64) (bool, error) {
	return t.exists(ctx, `SELECT EXISTS (SELECT 1 FROM departments WHERE id = ?)`, id)
}

// DepartmentNameTaken reports whether a department already uses name
func (t *sqlTx) DepartmentNameTaken(ctx context.Context, name string) (bool, error) {
	return t.exists(ctx, `SELECT EXISTS (SELECT 1 FROM departments WHERE name = ?)`, name)
}

// InsertDepartment creates a department and returns it with its generated id
func (t *sqlTx) InsertDepartment(ctx context.Context, in models.DepartmentCreate) (*models.Department, error) {
	d := &models.Department{Name: in.Name}
	err := t.q.QueryRowContext(ctx, t.dialect.rebind(`INSERT INTO departments (name) VALUES (?) RETURNING id`), in.Name).
		Scan(&d.ID)
	if err != nil {
		return nil, writeError("department", in.Name, "insert", err)
	}
	return d, nil
}

// DeleteDepartment removes the department, its categories and their products
func (t *sqlTx) DeleteDepartment(ctx context.Context, id int64) (bool, error) {
	if _, err := t.q.ExecContext(ctx, t.dialect.rebind(
		`DELETE FROM products WHERE category_id IN (SELECT id FROM categories WHERE department_id = ?)`), id); err != nil {
		return false, fmt.Errorf("failed to delete department products: %w", err)
	}
	if _, err := t.q.ExecContext(ctx, t.dialect.rebind(`DELETE FROM categories WHERE department_id = ?`), id); err != nil {
		return false, fmt.Errorf("failed to delete department categories: %w", err)
	}

	deleted, err := t.execAffected(ctx, `DELETE FROM departments WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete department: %w", err)
	}
	return deleted, nil
}
