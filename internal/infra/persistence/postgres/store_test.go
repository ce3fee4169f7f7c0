package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modelregistry/internal/infra/persistence/postgres/testutil"
	"modelregistry/internal/infra/persistence/sqlstore"
)

func openStub(t *testing.T) (*sqlstore.Store, *testutil.StubConn) {
	t.Helper()
	db, conn := testutil.NewStubDB()
	restore := OverrideSQLOpen(func(driver, dsn string) (*sql.DB, error) {
		assert.Equal(t, defaultDriver, driver)
		assert.Equal(t, defaultDSN, dsn)
		return db, nil
	})
	t.Cleanup(restore)
	store, err := Open(context.Background(), "", PoolOptions{MaxOpenConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, conn
}

func TestOpenUsesDefaultDSNAndWrapsPool(t *testing.T) {
	store, _ := openStub(t)
	assert.Equal(t, "postgres", store.Dialect().Name())
	require.NoError(t, store.Ping(context.Background()))
}

func TestOpenReportsOpenError(t *testing.T) {
	restore := OverrideSQLOpen(func(string, string) (*sql.DB, error) { return nil, errors.New("no driver") })
	defer restore()
	_, err := Open(context.Background(), "postgres://example", PoolOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open postgres")
}

func TestOpenReportsPingError(t *testing.T) {
	db, conn := testutil.NewStubDB()
	conn.FailPing = true
	restore := OverrideSQLOpen(func(string, string) (*sql.DB, error) { return db, nil })
	defer restore()
	_, err := Open(context.Background(), "", PoolOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping postgres")
}

func TestMigrateRebindsAndRunsGuardedStatementsOutsideTransaction(t *testing.T) {
	store, conn := openStub(t)
	conn.Scalars["MAX(version)"] = int64(0)

	applied, err := store.Migrate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, applied)
	assert.Equal(t, 5, conn.Commits)

	var history, guarded int
	for _, e := range conn.Execs {
		assert.NotContains(t, e.Query, "?", e.Query)
		if strings.HasPrefix(e.Query, "INSERT INTO _migration_history") {
			history++
			assert.True(t, e.InTx)
			assert.Equal(t, "INSERT INTO _migration_history (version, name, applied_at) VALUES ($1, $2, $3)", e.Query)
			assert.Equal(t, int64(history), e.Args[0])
		}
		if strings.Contains(e.Query, "ADD COLUMN") {
			guarded++
			assert.False(t, e.InTx, e.Query)
		}
	}
	assert.Equal(t, 5, history)
	assert.Equal(t, 2, guarded)
}

func TestMigrateSkipsAppliedVersions(t *testing.T) {
	store, conn := openStub(t)
	conn.Scalars["MAX(version)"] = int64(5)

	applied, err := store.Migrate(context.Background())
	require.NoError(t, err)
	assert.Zero(t, applied)
	assert.Zero(t, conn.Commits)
}

func TestMigrateToleratesDuplicateColumn(t *testing.T) {
	store, conn := openStub(t)
	conn.Scalars["MAX(version)"] = int64(4)
	conn.FailOn["ADD COLUMN"] = &pgconn.PgError{Code: codeDuplicateColumn, Message: "column exists"}

	applied, err := store.Migrate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, applied)
}

func TestMigrateRollsBackFailedVersion(t *testing.T) {
	store, conn := openStub(t)
	conn.Scalars["MAX(version)"] = int64(1)
	conn.FailOn["CREATE TABLE IF NOT EXISTS model_repositories"] = errors.New("disk full")

	applied, err := store.Migrate(context.Background())
	require.Error(t, err)
	assert.Zero(t, applied)
	assert.Equal(t, 1, conn.Rollbacks)
	assert.Contains(t, err.Error(), "migration 2")
}

func TestRepositoryStatementsUseDollarPlaceholders(t *testing.T) {
	store, conn := openStub(t)
	ctx := context.Background()

	ok, err := store.Installed().MarkUsed(ctx, "0d9d2f3c-1b1a-4f7e-9d65-0a5e7c9b2a11")
	require.NoError(t, err)
	assert.True(t, ok)

	require.Len(t, conn.Execs, 1)
	e := conn.Execs[0]
	assert.Equal(t, "UPDATE installed_models SET usage_count = usage_count + 1, last_used = $1, updated_at = $2 WHERE model_id = $3", e.Query)
	ts, isTime := e.Args[0].(time.Time)
	require.True(t, isTime)
	assert.Equal(t, time.UTC, ts.Location())
}

func TestDialectTagsAnyFilter(t *testing.T) {
	got := Dialect{}.TagsAnyFilter("models.tags", 2)
	assert.Equal(t, "EXISTS (SELECT 1 FROM jsonb_array_elements_text(models.tags) AS t(v) WHERE t.v IN (?, ?))", got)
}

func TestDialectClassifiesErrors(t *testing.T) {
	d := Dialect{}
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: codeUniqueViolation})
	assert.True(t, d.IsConflict(unique))
	assert.False(t, d.IsAlreadyExists(unique))

	for _, code := range []string{codeDuplicateColumn, codeDuplicateTable, codeDuplicateObject} {
		err := &pgconn.PgError{Code: code}
		assert.True(t, d.IsAlreadyExists(err), code)
		assert.False(t, d.IsConflict(err), code)
	}
	assert.False(t, d.IsConflict(errors.New("plain")))
	assert.False(t, d.IsAlreadyExists(nil))
}
