// Package sqlite opens registry stores backed by the pure Go SQLite driver.
package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"modelregistry/internal/infra/persistence/rows"
	"modelregistry/internal/infra/persistence/sqlstore"
)

const (
	driverName  = "sqlite"
	defaultPath = "modelregistry.db"
	// MemoryPath opens a private in-memory database.
	MemoryPath = ":memory:"

	pragmas = "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"

	// foldFunc is the Unicode lowercasing function registered on the driver.
	// The built-in LOWER only maps ASCII.
	foldFunc = "fold_case"
)

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(foldFunc, 1, foldCase)
}

func foldCase(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// Open opens (creating if needed) the database at path and wraps it in a
// sqlstore.Store. MemoryPath yields a database that lives as long as the store.
func Open(ctx context.Context, path string, opts ...sqlstore.Option) (*sqlstore.Store, error) {
	db, err := OpenDB(ctx, path)
	if err != nil {
		return nil, err
	}
	return sqlstore.New(db, Dialect{}, opts...), nil
}

// OpenDB opens and pings the raw pool. Writes are serialised through a
// single connection.
func OpenDB(ctx context.Context, path string) (*sql.DB, error) {
	dsn, err := dataSource(path)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if dsn == MemoryPath {
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}
	return db, nil
}

func dataSource(path string) (string, error) {
	switch path {
	case "":
		path = defaultPath
	case MemoryPath:
		return MemoryPath, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("create dirs: %w", err)
		}
	}
	return "file:" + path + "?" + pragmas, nil
}

// Dialect renders statements for SQLite.
type Dialect struct{}

var _ sqlstore.Dialect = Dialect{}

// Name implements sqlstore.Dialect.
func (Dialect) Name() string { return "sqlite" }

// Rebind implements sqlstore.Dialect; SQLite accepts ? natively.
func (Dialect) Rebind(query string) string { return query }

// TimeValue stores timestamps as fixed-width UTC text so that they sort lexically.
func (Dialect) TimeValue(t time.Time) any { return rows.FormatTime(t) }

// TagsAnyFilter implements sqlstore.Dialect.
func (Dialect) TagsAnyFilter(column string, n int) string {
	return fmt.Sprintf("EXISTS (SELECT 1 FROM json_each(%s) WHERE json_each.value IN (%s))", column, marks(n))
}

// FoldCase implements sqlstore.Dialect.
func (Dialect) FoldCase(expr string) string { return foldFunc + "(" + expr + ")" }

// HistoryTableDDL implements sqlstore.Dialect.
func (Dialect) HistoryTableDDL() string {
	return `CREATE TABLE IF NOT EXISTS _migration_history (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TEXT NOT NULL
	)`
}

// IsConflict implements sqlstore.Dialect.
func (Dialect) IsConflict(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), "UNIQUE")
}

// IsAlreadyExists implements sqlstore.Dialect.
func (Dialect) IsAlreadyExists(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	msg := se.Error()
	return strings.Contains(msg, "duplicate column name") || strings.Contains(msg, "already exists")
}

func marks(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
