package store

import (
	"strconv"
	"strings"
)

// dialect isolates the SQL differences between the supported databases
type dialect struct {
	name       string
	driverName string
	schema     []string
	// placeholder returns the bind parameter for the n-th argument (1-based)
	placeholder func(n int) string
	// fold wraps a SQL expression so text compares without regard to case
	fold func(expr string) string
}

var postgresDialect = dialect{
	name:       "postgres",
	driverName: "pgx",
	placeholder: func(n int) string {
		return "$" + strconv.Itoa(n)
	},
	fold: func(expr string) string {
		return "LOWER(" + expr + ")"
	},
	schema: []string{
		`CREATE TABLE IF NOT EXISTS departments (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(50) NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(50) NOT NULL,
			department_id BIGINT NOT NULL REFERENCES departments(id) ON DELETE CASCADE,
			UNIQUE (department_id, name)
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL UNIQUE,
			description TEXT,
			price DOUBLE PRECISION NOT NULL CHECK (price >= 0),
			stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
			category_id BIGINT NOT NULL REFERENCES categories(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_categories_department_id ON categories(department_id)`,
		`CREATE INDEX IF NOT EXISTS idx_products_category_id ON products(category_id)`,
	},
}

var sqliteDialect = dialect{
	name:       "sqlite",
	driverName: "sqlite",
	placeholder: func(int) string {
		return "?"
	},
	// Built-in LOWER only folds ASCII in SQLite
	fold: func(expr string) string {
		return foldFunction + "(" + expr + ")"
	},
	schema: []string{
		`PRAGMA foreign_keys = ON`,
		`CREATE TABLE IF NOT EXISTS departments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name VARCHAR(50) NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name VARCHAR(50) NOT NULL,
			department_id INTEGER NOT NULL REFERENCES departments(id) ON DELETE CASCADE,
			UNIQUE (department_id, name)
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name VARCHAR(100) NOT NULL UNIQUE,
			description TEXT,
			price REAL NOT NULL CHECK (price >= 0),
			stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
			category_id INTEGER NOT NULL REFERENCES categories(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_categories_department_id ON categories(department_id)`,
		`CREATE INDEX IF NOT EXISTS idx_products_category_id ON products(category_id)`,
	},
}

// dialectFor resolves a configured driver name
func dialectFor(driver string) (dialect, bool) {
	switch driver {
	case "postgres", "pgx":
		return postgresDialect, true
	case "sqlite", "sqlite3":
		return sqliteDialect, true
	default:
		return dialect{}, false
	}
}

// rebind rewrites ? markers into the dialect's placeholders.
// Queries passed here must not contain a literal question mark.
func (d dialect) rebind(query string) string {
	if d.name != postgresDialect.name {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString(d.placeholder(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
