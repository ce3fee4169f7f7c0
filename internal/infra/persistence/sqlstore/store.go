// Package sqlstore executes the registry's parameterized SQL against a
// database/sql pool. It is dialect-neutral: statements are written with ?
// placeholders and the Dialect rewrites them, renders timestamps and
// classifies driver errors. Repositories exchange records from package rows
// and never see domain types.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"modelregistry/internal/entitymodel/sqlbundle"
	"modelregistry/internal/infra/persistence/rows"
)

// Dialect captures what differs between the supported SQL engines.
type Dialect interface {
	// Name is the migration bundle name, "postgres" or "sqlite".
	Name() string
	// Rebind rewrites ? placeholders into the engine's native form.
	Rebind(query string) string
	// TimeValue renders a timestamp as a statement argument.
	TimeValue(t time.Time) any
	// TagsAnyFilter returns a predicate true when the JSON array in column
	// contains any of n ? parameters.
	TagsAnyFilter(column string, n int) string
	// FoldCase lowercases a text expression with full Unicode case mapping,
	// matching strings.ToLower on the Go side.
	FoldCase(expr string) string
	// HistoryTableDDL creates the migration history table.
	HistoryTableDDL() string
	// IsConflict reports a unique or primary key violation.
	IsConflict(err error) bool
	// IsAlreadyExists reports a duplicate table, column or index error.
	IsAlreadyExists(err error) bool
}

// Store owns a connection pool and the dialect used to talk to it.
type Store struct {
	db      *sql.DB
	dialect Dialect
	log     zerolog.Logger
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger installs a structured logger. The default discards output.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithClock overrides the time source used for updated_at stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New wraps an open pool. The Store takes ownership of db and closes it in Close.
func New(db *sql.DB, dialect Dialect, opts ...Option) *Store {
	s := &Store{
		db:      db,
		dialect: dialect,
		log:     zerolog.Nop(),
		now:     func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With().Str("component", "sqlstore").Str("dialect", dialect.Name()).Logger()
	return s
}

// DB exposes the underlying pool for integration hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Dialect returns the store's dialect.
func (s *Store) Dialect() Dialect { return s.dialect }

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return &StorageError{Op: "ping", Err: err}
	}
	return nil
}

// Close releases the pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// VerifySchema checks every fixed record reader against the live schema.
func (s *Store) VerifySchema(ctx context.Context) error {
	for _, t := range rows.Tables() {
		rs, err := s.db.QueryContext(ctx, s.dialect.Rebind(t.ProbeSQL()))
		if err != nil {
			return &StorageError{Op: "verify_schema", Table: t.Name, Err: err}
		}
		if err := rs.Close(); err != nil {
			return &StorageError{Op: "verify_schema", Table: t.Name, Err: err}
		}
	}
	return nil
}

// Models returns the models repository.
func (s *Store) Models() *ModelRepository { return &ModelRepository{s: s} }

// Installed returns the installed_models repository.
func (s *Store) Installed() *InstalledRepository { return &InstalledRepository{s: s} }

// Available returns the available_models repository.
func (s *Store) Available() *AvailableRepository { return &AvailableRepository{s: s} }

// Runtimes returns the runtime repository.
func (s *Store) Runtimes() *RuntimeRepository { return &RuntimeRepository{s: s} }

// Sources returns the model source repository.
func (s *Store) Sources() *SourceRepository { return &SourceRepository{s: s} }

// Monitoring returns the metrics, alert and configuration repository.
func (s *Store) Monitoring() *MonitoringRepository { return &MonitoringRepository{s: s} }

// Tasks returns the task queue repository.
func (s *Store) Tasks() *TaskRepository { return &TaskRepository{s: s} }

// Sessions returns the session and API usage repository.
func (s *Store) Sessions() *SessionRepository { return &SessionRepository{s: s} }

func (s *Store) args(in []any) []any {
	out := make([]any, len(in))
	for i, v := range in {
		if t, ok := v.(time.Time); ok {
			out[i] = s.dialect.TimeValue(t)
			continue
		}
		out[i] = v
	}
	return out
}

func (s *Store) wrap(op, table string, err error) error {
	return &StorageError{Op: op, Table: table, Err: err, conflict: s.dialect.IsConflict(err)}
}

func (s *Store) finish(op string, start time.Time, err error) {
	switch {
	case err == nil:
		observe(op, start, statusOK)
	case s.dialect.IsConflict(err):
		observe(op, start, statusConflict)
	default:
		observe(op, start, statusError)
	}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) execOn(ctx context.Context, db execer, op, table, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	res, err := db.ExecContext(ctx, s.dialect.Rebind(query), s.args(args)...)
	s.finish(op, start, err)
	if err != nil {
		return nil, s.wrap(op, table, err)
	}
	return res, nil
}

// inTx runs fn in one transaction, committing only when fn succeeds.
func (s *Store) inTx(ctx context.Context, op, table string, fn func(tx execer) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return s.wrap(op, table, err)
	}
	defer func() { _ = tx.Rollback() }()
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return s.wrap(op, table, err)
	}
	return nil
}

func (s *Store) exec(ctx context.Context, op, table, query string, args ...any) (sql.Result, error) {
	return s.execOn(ctx, s.db, op, table, query, args...)
}

// execAffected runs a statement and reports whether it touched any row.
func (s *Store) execAffected(ctx context.Context, op, table, query string, args ...any) (bool, error) {
	res, err := s.exec(ctx, op, table, query, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, s.wrap(op, table, err)
	}
	return n > 0, nil
}

// record is satisfied by pointers to the types in package rows.
type record[T any] interface {
	*T
	Scan(rows.Scanner) error
}

// getOne returns nil when no row matches.
func getOne[T any, P record[T]](ctx context.Context, s *Store, op, table, query string, args ...any) (*T, error) {
	start := time.Now()
	var out T
	err := P(&out).Scan(s.db.QueryRowContext(ctx, s.dialect.Rebind(query), s.args(args)...))
	if errors.Is(err, sql.ErrNoRows) {
		s.finish(op, start, nil)
		return nil, nil
	}
	s.finish(op, start, err)
	if err != nil {
		return nil, s.wrap(op, table, err)
	}
	return &out, nil
}

func list[T any, P record[T]](ctx context.Context, s *Store, op, table, query string, args ...any) ([]T, error) {
	return scanAll(ctx, s, op, table, query, func(sc rows.Scanner) (T, error) {
		var v T
		err := P(&v).Scan(sc)
		return v, err
	}, args...)
}

func scanAll[T any](ctx context.Context, s *Store, op, table, query string, scan func(rows.Scanner) (T, error), args ...any) ([]T, error) {
	start := time.Now()
	rs, err := s.db.QueryContext(ctx, s.dialect.Rebind(query), s.args(args)...)
	if err != nil {
		s.finish(op, start, err)
		return nil, s.wrap(op, table, err)
	}
	defer func() { _ = rs.Close() }()
	out := []T{}
	for rs.Next() {
		v, err := scan(rs)
		if err != nil {
			s.finish(op, start, err)
			return nil, s.wrap(op, table, err)
		}
		out = append(out, v)
	}
	err = rs.Err()
	s.finish(op, start, err)
	if err != nil {
		return nil, s.wrap(op, table, err)
	}
	return out, nil
}

func (s *Store) count(ctx context.Context, op, table, query string, args ...any) (int64, error) {
	start := time.Now()
	var n int64
	err := s.db.QueryRowContext(ctx, s.dialect.Rebind(query), s.args(args)...).Scan(&n)
	s.finish(op, start, err)
	if err != nil {
		return 0, s.wrap(op, table, err)
	}
	return n, nil
}

func (s *Store) insert(ctx context.Context, op string, t rows.Table, args []any) error {
	_, err := s.exec(ctx, op, t.Name, t.InsertSQL(), args...)
	return err
}

// RebindDollar rewrites ? placeholders as $1..$n, leaving quoted text alone.
func RebindDollar(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	var quote byte
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '?':
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// EscapeLike escapes LIKE wildcards so they match literally under ESCAPE '\'.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func placeholderList(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func limitOr(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	return limit
}

// Migrations returns the dialect's ordered migration bundle.
func (s *Store) Migrations() ([]sqlbundle.Migration, error) {
	migrations, err := sqlbundle.Migrations(s.dialect.Name())
	if err != nil {
		return nil, fmt.Errorf("load migrations: %w", err)
	}
	return migrations, nil
}
