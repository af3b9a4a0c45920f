package store

import (
	"errors"
	"fmt"

	"Product_Catalog/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the SQLSTATE Postgres reports for a unique index conflict
const pgUniqueViolation = "23505"

// isUniqueViolation recognizes a unique constraint failure from either driver
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return isSQLiteUniqueViolation(err)
}

// writeError turns a lost race on a unique name into ErrDuplicate
func writeError(entity, name, action string, err error) error {
	if isUniqueViolation(err) {
		return models.NewEntityError(entity, 0, "name "+name+" is already taken", models.ErrDuplicate)
	}
	return fmt.Errorf("failed to %s %s: %w", action, entity, err)
}
