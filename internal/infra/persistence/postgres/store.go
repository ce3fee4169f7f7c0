// Package postgres opens registry stores backed by PostgreSQL through the
// pgx database/sql driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"modelregistry/internal/infra/persistence/sqlstore"
)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/modelregistry?sslmode=disable"
)

const (
	codeUniqueViolation = "23505"
	codeDuplicateColumn = "42701"
	codeDuplicateTable  = "42P07"
	codeDuplicateObject = "42710"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// PoolOptions bounds the connection pool. Zero values keep database/sql defaults.
type PoolOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Open connects to dsn (defaultDSN when empty), pings it and wraps the pool
// in a sqlstore.Store.
func Open(ctx context.Context, dsn string, pool PoolOptions, opts ...sqlstore.Option) (*sqlstore.Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if pool.MaxOpenConns > 0 {
		db.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		db.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return sqlstore.New(db, Dialect{}, opts...), nil
}

// Dialect renders statements for PostgreSQL.
type Dialect struct{}

var _ sqlstore.Dialect = Dialect{}

// Name implements sqlstore.Dialect.
func (Dialect) Name() string { return "postgres" }

// Rebind rewrites ? placeholders as $n.
func (Dialect) Rebind(query string) string { return sqlstore.RebindDollar(query) }

// TimeValue passes timestamps through; pgx encodes them as timestamptz.
func (Dialect) TimeValue(t time.Time) any { return t.UTC() }

// TagsAnyFilter implements sqlstore.Dialect.
func (Dialect) TagsAnyFilter(column string, n int) string {
	marks := strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
	return fmt.Sprintf("EXISTS (SELECT 1 FROM jsonb_array_elements_text(%s) AS t(v) WHERE t.v IN (%s))", column, marks)
}

// FoldCase implements sqlstore.Dialect; LOWER follows the database collation.
func (Dialect) FoldCase(expr string) string { return "LOWER(" + expr + ")" }

// HistoryTableDDL implements sqlstore.Dialect.
func (Dialect) HistoryTableDDL() string {
	return `CREATE TABLE IF NOT EXISTS _migration_history (
		version BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TIMESTAMPTZ NOT NULL
	)`
}

// IsConflict implements sqlstore.Dialect.
func (Dialect) IsConflict(err error) bool {
	return hasCode(err, codeUniqueViolation)
}

// IsAlreadyExists implements sqlstore.Dialect.
func (Dialect) IsAlreadyExists(err error) bool {
	return hasCode(err, codeDuplicateColumn, codeDuplicateTable, codeDuplicateObject)
}

func hasCode(err error, codes ...string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	for _, c := range codes {
		if pgErr.Code == c {
			return true
		}
	}
	return false
}

// OverrideSQLOpen swaps the sqlOpen function for tests and returns a restore function.
func OverrideSQLOpen(fn func(driverName, dataSourceName string) (*sql.DB, error)) func() {
	openMu.Lock()
	defer openMu.Unlock()
	prev := sqlOpen
	sqlOpen = fn
	return func() {
		openMu.Lock()
		defer openMu.Unlock()
		sqlOpen = prev
	}
}
