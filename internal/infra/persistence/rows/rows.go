// Package rows holds the storage-shaped records that mirror each table column
// for column. Identifiers are canonical UUID text, enums are their exact
// discriminant text, nested data is JSON text and unsigned counters are
// signed integers. Every record scans positionally from a fixed column list.
package rows

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// Table describes one table and the fixed column order its record scans in.
type Table struct {
	Name    string
	Columns []string
}

// ColumnList renders the columns, optionally qualified by alias.
func (t Table) ColumnList(alias string) string {
	if alias == "" {
		return strings.Join(t.Columns, ", ")
	}
	qualified := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		qualified[i] = alias + "." + c
	}
	return strings.Join(qualified, ", ")
}

// SelectSQL returns "SELECT <cols> FROM <table>" with the given suffix appended.
func (t Table) SelectSQL(suffix string) string {
	q := "SELECT " + t.ColumnList("") + " FROM " + t.Name
	if suffix != "" {
		q += " " + suffix
	}
	return q
}

// InsertSQL returns an INSERT covering every column, with ? placeholders.
func (t Table) InsertSQL() string {
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", t.Name, t.ColumnList(""), placeholders(len(t.Columns)))
}

// UpdateSQL returns a full-row UPDATE keyed by the first column. Columns
// listed in skip keep their stored value. Arguments are the record's Args
// minus the key and skipped columns, followed by the key.
func (t Table) UpdateSQL(skip ...string) string {
	sets := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns[1:] {
		if contains(skip, c) {
			continue
		}
		sets = append(sets, c+" = ?")
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?", t.Name, strings.Join(sets, ", "), t.Columns[0])
}

// UpdateArgs reorders args (in column order) to match UpdateSQL(skip...).
func (t Table) UpdateArgs(args []any, skip ...string) []any {
	out := make([]any, 0, len(args))
	for i, c := range t.Columns[1:] {
		if contains(skip, c) {
			continue
		}
		out = append(out, args[i+1])
	}
	return append(out, args[0])
}

// ProbeSQL selects every column while matching no rows. It fails when a
// column the record expects is missing from the live schema.
func (t Table) ProbeSQL() string {
	return t.SelectSQL("WHERE 1 = 0")
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Tables lists every table with a fixed record reader.
func Tables() []Table {
	return []Table{
		ModelTable,
		InstalledModelTable,
		AvailableModelTable,
		RuntimeConfigTable,
		ModelRuntimeTable,
		RuntimeMetricsTable,
		RuntimeEventTable,
		SourceTable,
		RepositoryModelTable,
		SyncResultTable,
		GlobalConfigTable,
		SystemMetricsTable,
		ApplicationMetricsTable,
		ModelMetricsTable,
		AlertEventTable,
		UserSessionTable,
		APIUsageTable,
		TaskTable,
		DownloadTaskTable,
	}
}

// TextTimeLayout is the fixed-width UTC layout used by the text-only dialect.
// Fixed width keeps lexical order equal to chronological order.
const TextTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

var readLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// FormatTime renders t for the text-only dialect.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TextTimeLayout)
}

// ParseTime accepts every timestamp shape either dialect may return.
func ParseTime(v any) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return x.UTC(), nil
	case string:
		return parseTimeText(x)
	case []byte:
		return parseTimeText(string(x))
	default:
		return time.Time{}, fmt.Errorf("rows: unsupported timestamp type %T", v)
	}
}

func parseTimeText(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range readLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("rows: unparseable timestamp %q", s)
}

type timeDest struct{ dst *time.Time }

func (d timeDest) Scan(src any) error {
	if src == nil {
		return fmt.Errorf("rows: NULL in non-nullable timestamp column")
	}
	t, err := ParseTime(src)
	if err != nil {
		return err
	}
	*d.dst = t
	return nil
}

type nullTimeDest struct{ dst **time.Time }

func (d nullTimeDest) Scan(src any) error {
	if src == nil {
		*d.dst = nil
		return nil
	}
	if s, ok := src.(string); ok && s == "" {
		*d.dst = nil
		return nil
	}
	t, err := ParseTime(src)
	if err != nil {
		return err
	}
	*d.dst = &t
	return nil
}

// Time returns a scan destination that writes a required timestamp into dst.
func Time(dst *time.Time) sql.Scanner { return timeDest{dst: dst} }

// NullTime returns a scan destination for an optional timestamp.
func NullTime(dst **time.Time) sql.Scanner { return nullTimeDest{dst: dst} }

// TimeArg returns an optional timestamp as a statement argument, nil when absent.
func TimeArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
