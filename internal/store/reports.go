package store

import (
	"context"
	"fmt"
	"time"

	"Product_Catalog/internal/models"
)

// The reports join from products, so departments and categories without products never appear.

// AvgPriceByDepartment returns the mean product price per department ordered by department id
func (q queries) AvgPriceByDepartment(ctx context.Context) ([]models.AvgPriceByDepartment, error) {
	defer observe("avg_price_by_department", time.Now())

	rows, err := q.q.QueryContext(ctx, `
		SELECT d.id, d.name, AVG(p.price)
		FROM products p
		JOIN categories c ON c.id = p.category_id
		JOIN departments d ON d.id = c.department_id
		GROUP BY d.id, d.name
		ORDER BY d.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to compute average price by department: %w", err)
	}
	defer rows.Close()

	result := make([]models.AvgPriceByDepartment, 0)
	for rows.Next() {
		var r models.AvgPriceByDepartment
		if err := rows.Scan(&r.DepartmentID, &r.DepartmentName, &r.AvgPrice); err != nil {
			return nil, fmt.Errorf("failed to scan average price row: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// TotalStockByCategory returns the summed stock per category ordered by department then category id
func (q queries) TotalStockByCategory(ctx context.Context) ([]models.TotalStockByCategory, error) {
	defer observe("total_stock_by_category", time.Now())

	rows, err := q.q.QueryContext(ctx, `
		SELECT c.id, c.name, d.id, d.name, CAST(COALESCE(SUM(p.stock), 0) AS BIGINT)
		FROM products p
		JOIN categories c ON c.id = p.category_id
		JOIN departments d ON d.id = c.department_id
		GROUP BY c.id, c.name, d.id, d.name
		ORDER BY d.id, c.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to compute total stock by category: %w", err)
	}
	defer rows.Close()

	result := make([]models.TotalStockByCategory, 0)
	for rows.Next() {
		var r models.TotalStockByCategory
		if err := rows.Scan(&r.CategoryID, &r.CategoryName, &r.DepartmentID, &r.DepartmentName, &r.TotalStock); err != nil {
			return nil, fmt.Errorf("failed to scan total stock row: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// CountProductsByDepartment returns the number of products per department ordered by department id
func (q queries) CountProductsByDepartment(ctx context.Context) ([]models.CountProductsByDepartment, error) {
	defer observe("count_products_by_department", time.Now())

	rows, err := q.q.QueryContext(ctx, `
		SELECT d.id, d.name, COUNT(p.id)
		FROM products p
		JOIN categories c ON c.id = p.category_id
		JOIN departments d ON d.id = c.department_id
		GROUP BY d.id, d.name
		ORDER BY d.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to count products by department: %w", err)
	}
	defer rows.Close()

	result := make([]models.CountProductsByDepartment, 0)
	for rows.Next() {
		var r models.CountProductsByDepartment
		if err := rows.Scan(&r.DepartmentID, &r.DepartmentName, &r.ProductCount); err != nil {
			return nil, fmt.Errorf("failed to scan product count row: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// TotalValueByDepartment returns sum(price * stock) per department ordered by department id
func (q queries) TotalValueByDepartment(ctx context.Context) ([]models.TotalValueByDepartment, error) {
	defer observe("total_value_by_department", time.Now())

	rows, err := q.q.QueryContext(ctx, `
		SELECT d.id, d.name, COALESCE(SUM(p.price * p.stock), 0)
		FROM products p
		JOIN categories c ON c.id = p.category_id
		JOIN departments d ON d.id = c.department_id
		GROUP BY d.id, d.name
		ORDER BY d.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to compute total value by department: %w", err)
	}
	defer rows.Close()

	result := make([]models.TotalValueByDepartment, 0)
	for rows.Next() {
		var r models.TotalValueByDepartment
		if err := rows.Scan(&r.DepartmentID, &r.DepartmentName, &r.TotalValue); err != nil {
			return nil, fmt.Errorf("failed to scan total value row: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
