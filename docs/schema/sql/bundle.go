// Package sqldocs exposes the versioned migration scripts directly from the docs tree.
package sqldocs

import "embed"

// Postgres holds the numbered Postgres migrations under postgres/.
//
//go:embed postgres/*.sql
var Postgres embed.FS

// SQLite holds the numbered SQLite migrations under sqlite/.
//
//go:embed sqlite/*.sql
var SQLite embed.FS
