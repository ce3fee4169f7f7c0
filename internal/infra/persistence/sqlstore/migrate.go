package sqlstore

import (
	"context"
	"fmt"
	"time"

	"modelregistry/internal/entitymodel/sqlbundle"
)

const historyTable = "_migration_history"

// SchemaVersion returns the highest applied migration version, 0 when none.
func (s *Store) SchemaVersion(ctx context.Context) (int64, error) {
	if _, err := s.exec(ctx, "migrate_history", historyTable, s.dialect.HistoryTableDDL()); err != nil {
		return 0, err
	}
	return s.count(ctx, "schema_version", historyTable, "SELECT COALESCE(MAX(version), 0) FROM "+historyTable)
}

// Migrate applies every bundled migration newer than the recorded version,
// in order, and returns how many were applied. Each version's statements and
// its history row commit together. Additive ADD COLUMN statements run first,
// outside the transaction, and an "already exists" failure there is ignored.
func (s *Store) Migrate(ctx context.Context) (int, error) {
	migrations, err := s.Migrations()
	if err != nil {
		return 0, err
	}
	current, err := s.SchemaVersion(ctx)
	if err != nil {
		return 0, err
	}
	applied := 0
	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		if err := s.apply(ctx, m); err != nil {
			return applied, err
		}
		applied++
		s.log.Info().Int64("version", m.Version).Str("name", m.Name).Msg("applied migration")
	}
	if applied == 0 {
		s.log.Debug().Int64("version", current).Msg("schema up to date")
	}
	return applied, nil
}

func (s *Store) apply(ctx context.Context, m sqlbundle.Migration) error {
	op := fmt.Sprintf("migrate_%03d", m.Version)
	var body []string
	for _, stmt := range m.Statements {
		if !sqlbundle.IsGuarded(stmt) {
			body = append(body, stmt)
			continue
		}
		if _, err := s.exec(ctx, op, historyTable, stmt); err != nil {
			if s.dialect.IsAlreadyExists(err) {
				s.log.Debug().Int64("version", m.Version).Err(err).Msg("skipping statement already applied")
				continue
			}
			return fmt.Errorf("migration %d %s: %w", m.Version, m.Name, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return s.wrap(op, historyTable, err)
	}
	defer func() { _ = tx.Rollback() }()
	for _, stmt := range body {
		if _, err := s.execOn(ctx, tx, op, historyTable, stmt); err != nil {
			return fmt.Errorf("migration %d %s: %w", m.Version, m.Name, err)
		}
	}
	if _, err := s.execOn(ctx, tx, op, historyTable,
		"INSERT INTO "+historyTable+" (version, name, applied_at) VALUES (?, ?, ?)",
		m.Version, m.Name, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("record migration %d: %w", m.Version, err)
	}
	if err := tx.Commit(); err != nil {
		return s.wrap(op, historyTable, err)
	}
	return nil
}
