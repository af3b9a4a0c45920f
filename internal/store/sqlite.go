package store

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// foldFunction is a Unicode case-folding SQL function available on every sqlite connection
const foldFunction = "catalog_fold"

var (
	registerOnce sync.Once
	registerErr  error
)

// registerSQLiteFunctions installs the custom functions; it must run before connections are opened
func registerSQLiteFunctions() error {
	registerOnce.Do(func() {
		if err := sqlite.RegisterDeterministicScalarFunction(foldFunction, 1, foldValue); err != nil {
			registerErr = fmt.Errorf("failed to register %s: %w", foldFunction, err)
		}
	})
	return registerErr
}

func foldValue(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return foldString(v), nil
	case []byte:
		return foldString(string(v)), nil
	default:
		return v, nil
	}
}

// foldString applies full case folding, so "Straße" and "STRASSE" compare equal
func foldString(s string) string {
	// A Caser holds state and is not safe to share between connections
	return cases.Fold().String(s)
}

func isSQLiteUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		// Without extended result codes only the message tells the constraints apart
		return strings.Contains(sqliteErr.Error(), "UNIQUE constraint failed")
	default:
		return false
	}
}
