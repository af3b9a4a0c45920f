package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"Product_Catalog/internal/metrics"
	"Product_Catalog/internal/models"
)

const selectProduct = `
	SELECT p.id, p.name, p.description, p.price, p.stock, p.category_id,
		c.id, c.name, c.department_id, d.id, d.name
	FROM products p
	JOIN categories c ON c.id = p.category_id
	JOIN departments d ON d.id = c.department_id`

// sortColumns maps every sortable field to its column
var sortColumns = map[models.SortField]string{
	models.SortByID:          "p.id",
	models.SortByName:        "p.name",
	models.SortByDescription: "p.description",
	models.SortByPrice:       "p.price",
	models.SortByStock:       "p.stock",
	models.SortByCategoryID:  "p.category_id",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func scanProduct(row interface{ Scan(...interface{}) error }) (*models.Product, error) {
	p := &models.Product{Category: &models.Category{Department: &models.Department{}}}
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.CategoryID,
		&p.Category.ID, &p.Category.Name, &p.Category.DepartmentID,
		&p.Category.Department.ID, &p.Category.Department.Name,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// buildListQuery renders the filtered, sorted, paginated product listing
func buildListQuery(d dialect, q models.ProductQuery) (string, []interface{}) {
	var where []string
	var args []interface{}

	bind := func(clause string, arg interface{}) {
		args = append(args, arg)
		where = append(where, strings.Replace(clause, "?", d.placeholder(len(args)), 1))
	}

	if q.Name != nil {
		bind(d.fold("p.name")+" LIKE "+d.fold("?")+` ESCAPE '\'`, "%"+likeEscaper.Replace(*q.Name)+"%")
	}
	if q.MinPrice != nil {
		bind("p.price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		bind("p.price <= ?", *q.MaxPrice)
	}
	if q.CategoryID != nil {
		bind("p.category_id = ?", *q.CategoryID)
	}
	if q.DepartmentID != nil {
		bind("c.department_id = ?", *q.DepartmentID)
	}

	var b strings.Builder
	b.WriteString(selectProduct)
	if len(where) > 0 {
		b.WriteString("\n\tWHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}

	column, ok := sortColumns[q.SortBy]
	if !ok {
		column = sortColumns[models.SortByID]
	}
	direction := "ASC NULLS FIRST"
	if q.Order == models.SortDesc {
		direction = "DESC NULLS LAST"
	}

	b.WriteString("\n\tORDER BY ")
	b.WriteString(column + " " + direction)
	if column != sortColumns[models.SortByID] {
		b.WriteString(", p.id ASC")
	}

	args = append(args, q.Limit)
	b.WriteString("\n\tLIMIT " + d.placeholder(len(args)))
	args = append(args, q.Skip)
	b.WriteString(" OFFSET " + d.placeholder(len(args)))

	return b.String(), args
}

// ListProducts returns one page of products with category and department attached
func (q queries) ListProducts(ctx context.Context, query models.ProductQuery) ([]models.Product, error) {
	defer observe("list_products", time.Now())

	stmt, args := buildListQuery(q.dialect, query)
	rows, err := q.q.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := make([]models.Product, 0, query.Limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// GetProduct returns the product with id and its relations, or models.ErrNotFound
func (q queries) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	p, err := scanProduct(q.q.QueryRowContext(ctx, q.dialect.rebind(selectProduct+` WHERE p.id = ?`), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("product", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

// ProductNameTaken reports whether another product already uses name
func (t *sqlTx) ProductNameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	return t.exists(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE name = ? AND id <> ?)`, name, excludeID)
}

// InsertProduct creates a product and returns it with its relations attached
func (t *sqlTx) InsertProduct(ctx context.Context, in models.ProductCreate) (*models.Product, error) {
	var id int64
	err := t.q.QueryRowContext(ctx, t.dialect.rebind(
		`INSERT INTO products (name, description, price, stock, category_id) VALUES (?, ?, ?, ?, ?) RETURNING id`),
		in.Name, in.Description, *in.Price, in.Stock, in.CategoryID).Scan(&id)
	if err != nil {
		return nil, writeError("product", in.Name, "insert", err)
	}
	return t.GetProduct(ctx, id)
}

// UpdateProduct writes every mutable column of p
func (t *sqlTx) UpdateProduct(ctx context.Context, p *models.Product) error {
	updated, err := t.execAffected(ctx,
		`UPDATE products SET name = ?, description = ?, price = ?, stock = ?, category_id = ? WHERE id = ?`,
		p.Name, p.Description, p.Price, p.Stock, p.CategoryID, p.ID)
	if err != nil {
		return writeError("product", p.Name, "update", err)
	}
	if !updated {
		return models.NotFound("product", p.ID)
	}
	return nil
}

// DeleteProduct removes the product with id
func (t *sqlTx) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	deleted, err := t.execAffected(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete product: %w", err)
	}
	return deleted, nil
}

func observe(query string, start time.Time) {
	metrics.RecordStoreQuery(query, time.Since(start))
}
