// Package sqlbundle turns the embedded migration scripts into ordered,
// executable migrations for the persistence adapters.
package sqlbundle

import (
	"bufio"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	sqldocs "modelregistry/docs/schema/sql"
)

// Dialect names accepted by Migrations.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Migration is one numbered schema script.
type Migration struct {
	Version    int64
	Name       string
	Statements []string
}

// Migrations returns the migrations for dialect in ascending version order.
func Migrations(dialect string) ([]Migration, error) {
	switch dialect {
	case DialectPostgres:
		return load(sqldocs.Postgres, DialectPostgres)
	case DialectSQLite:
		return load(sqldocs.SQLite, DialectSQLite)
	default:
		return nil, fmt.Errorf("sqlbundle: unknown dialect %q", dialect)
	}
}

func load(fsys fs.FS, dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("sqlbundle: read %s: %w", dir, err)
	}
	migrations := make([]Migration, 0, len(entries))
	seen := make(map[int64]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".sql" {
			continue
		}
		version, name, err := ParseFileName(entry.Name())
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[version]; dup {
			return nil, fmt.Errorf("sqlbundle: version %d declared by %s and %s", version, prev, entry.Name())
		}
		seen[version] = entry.Name()
		body, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("sqlbundle: read %s: %w", entry.Name(), err)
		}
		migrations = append(migrations, Migration{
			Version:    version,
			Name:       name,
			Statements: SplitStatements(string(body)),
		})
	}
	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Version < migrations[j].Version })
	return migrations, nil
}

// ParseFileName splits "NNN_some_name.sql" into its version and name.
func ParseFileName(file string) (int64, string, error) {
	base := strings.TrimSuffix(file, path.Ext(file))
	num, name, ok := strings.Cut(base, "_")
	if !ok || name == "" {
		return 0, "", fmt.Errorf("sqlbundle: migration %q must be named NNN_name.sql", file)
	}
	version, err := strconv.ParseInt(num, 10, 64)
	if err != nil || version <= 0 {
		return 0, "", fmt.Errorf("sqlbundle: migration %q has invalid version %q", file, num)
	}
	return version, name, nil
}

// SplitStatements splits a semicolon-terminated DDL script into executable statements.
// It drops blank lines and single-line comments that start with "--".
func SplitStatements(ddl string) []string {
	scanner := bufio.NewScanner(strings.NewReader(ddl))
	var stmts []string
	var current strings.Builder

	flush := func() {
		stmt := strings.TrimSpace(current.String())
		if stmt != "" {
			stmts = append(stmts, stmt)
		}
		current.Reset()
	}

	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteByte('\n')
		if strings.HasSuffix(trimmed, ";") {
			flush()
		}
	}

	if tail := strings.TrimSpace(current.String()); tail != "" {
		stmts = append(stmts, tail)
	}

	return stmts
}

// IsGuarded reports whether stmt is an additive column change that older
// databases may already have applied.
func IsGuarded(stmt string) bool {
	upper := strings.ToUpper(strings.Join(strings.Fields(stmt), " "))
	return strings.HasPrefix(upper, "ALTER TABLE") && strings.Contains(upper, " ADD COLUMN ")
}
