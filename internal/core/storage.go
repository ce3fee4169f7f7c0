package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"modelregistry/internal/config"
	"modelregistry/internal/infra/persistence/postgres"
	"modelregistry/internal/infra/persistence/sqlite"
	"modelregistry/internal/infra/persistence/sqlstore"
)

// OpenStore opens the backend named by cfg.Driver. The memory driver is an
// in-memory SQLite database that lives as long as the returned store.
func OpenStore(ctx context.Context, cfg config.Storage, log zerolog.Logger) (*sqlstore.Store, error) {
	opts := []sqlstore.Option{sqlstore.WithLogger(log)}
	switch cfg.Driver {
	case config.DriverMemory:
		return sqlite.Open(ctx, sqlite.MemoryPath, opts...)
	case config.DriverSQLite, "":
		return sqlite.Open(ctx, cfg.SQLitePath, opts...)
	case config.DriverPostgres:
		return postgres.Open(ctx, cfg.PostgresDSN, postgres.PoolOptions{
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime.Std(),
		}, opts...)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// OpenService opens the configured store, applies pending migrations and
// returns a service over it. Close the store when done.
func OpenService(ctx context.Context, cfg config.Config, log zerolog.Logger) (*Service, error) {
	store, err := OpenStore(ctx, cfg.Storage, log)
	if err != nil {
		return nil, err
	}
	if _, err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	if err := store.VerifySchema(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return NewService(store, WithLogger(log), WithSearchLimit(cfg.Search.DefaultLimit)), nil
}
