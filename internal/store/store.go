package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Register the database/sql drivers; sqlite.go imports the sqlite driver
	_ "github.com/jackc/pgx/v5/stdlib"
)

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// queries holds the SQL shared by the store and its transactions
type queries struct {
	q       querier
	dialect dialect
}

// sqlStore implements Store over database/sql
type sqlStore struct {
	queries
	db *sql.DB
}

// sqlTx implements Tx over a database/sql transaction
type sqlTx struct {
	queries
}

// Open connects to the configured database and creates the schema
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	d, ok := dialectFor(driver)
	if !ok {
		return nil, fmt.Errorf("unknown db driver %q: only 'postgres' and 'sqlite' are supported", driver)
	}

	if d.name == sqliteDialect.name {
		if err := registerSQLiteFunctions(); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(d.driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if d.name == sqliteDialect.name {
		// One connection: SQLite serializes writers and :memory: databases are per connection
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
		db.SetConnMaxIdleTime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &sqlStore{
		queries: queries{q: db, dialect: d},
		db:      db,
	}

	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// migrate creates the catalog tables if they don't exist
func (s *sqlStore) migrate(ctx context.Context) error {
	for _, stmt := range s.dialect.schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// WithTx runs fn inside a transaction. Any error, panic or cancellation rolls back.
func (s *sqlStore) WithTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(ctx, &sqlTx{queries: queries{q: tx, dialect: s.dialect}}); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true

	return nil
}

// Ping checks if the database connection is alive
func (s *sqlStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database
func (s *sqlStore) Close() error {
	return s.db.Close()
}

// exists runs a SELECT EXISTS query
func (q queries) exists(ctx context.Context, query string, args ...interface{}) (bool, error) {
	var found bool
	if err := q.q.QueryRowContext(ctx, q.dialect.rebind(query), args...).Scan(&found); err != nil {
		return false, err
	}
	return found, nil
}

// execAffected runs a statement and reports whether it touched any row
func (q queries) execAffected(ctx context.Context, query string, args ...interface{}) (bool, error) {
	result, err := q.q.ExecContext(ctx, q.dialect.rebind(query), args...)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
