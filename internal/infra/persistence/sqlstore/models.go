package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"modelregistry/internal/infra/persistence/rows"
)

// DefaultSearchLimit caps Search when the caller passes no limit.
const DefaultSearchLimit = 50

// DefaultPageLimit is the page size ListPage uses when none is given.
const DefaultPageLimit = 20

// ModelRepository reads and writes the models table.
type ModelRepository struct {
	s *Store
}

var mt = rows.ModelTable

// Create inserts r and returns it unchanged. A duplicate id or name fails
// with a StorageError matching ErrConflict.
func (m *ModelRepository) Create(ctx context.Context, r rows.Model) (rows.Model, error) {
	if err := m.s.insert(ctx, "models_create", mt, r.Args()); err != nil {
		return rows.Model{}, err
	}
	return r, nil
}

// Get returns nil when no model has id.
func (m *ModelRepository) Get(ctx context.Context, id string) (*rows.Model, error) {
	return getOne[rows.Model](ctx, m.s, "models_get", mt.Name, mt.SelectSQL("WHERE id = ?"), id)
}

// GetByName returns nil when no model is called name.
func (m *ModelRepository) GetByName(ctx context.Context, name string) (*rows.Model, error) {
	return getOne[rows.Model](ctx, m.s, "models_get_by_name", mt.Name, mt.SelectSQL("WHERE name = ?"), name)
}

// Update replaces every column except created_at and stamps updated_at.
// Updating a missing id is not an error.
func (m *ModelRepository) Update(ctx context.Context, r rows.Model) (rows.Model, error) {
	r.UpdatedAt = m.s.now()
	_, err := m.s.exec(ctx, "models_update", mt.Name, mt.UpdateSQL("created_at"), mt.UpdateArgs(r.Args(), "created_at")...)
	if err != nil {
		return rows.Model{}, err
	}
	return r, nil
}

// Delete reports whether a row was removed.
func (m *ModelRepository) Delete(ctx context.Context, id string) (bool, error) {
	return m.s.execAffected(ctx, "models_delete", mt.Name, "DELETE FROM models WHERE id = ?", id)
}

// IncrementDownloadCount bumps the download counter, reporting whether the model exists.
func (m *ModelRepository) IncrementDownloadCount(ctx context.Context, id string) (bool, error) {
	return m.s.execAffected(ctx, "models_increment_downloads", mt.Name,
		"UPDATE models SET download_count = download_count + 1, updated_at = ? WHERE id = ?", m.s.now(), id)
}

// Search matches query case-insensitively as a literal substring of name,
// display_name or description, newest first. A limit <= 0 means DefaultSearchLimit.
func (m *ModelRepository) Search(ctx context.Context, query string, limit int) ([]rows.Model, error) {
	pattern := "%" + EscapeLike(strings.ToLower(query)) + "%"
	return list[rows.Model](ctx, m.s, "models_search", mt.Name,
		mt.SelectSQL(`WHERE `+m.searchPredicate()+` ORDER BY created_at DESC, id LIMIT ?`),
		pattern, pattern, pattern, limitOr(limit, DefaultSearchLimit))
}

func (m *ModelRepository) searchPredicate() string {
	fold := m.s.dialect.FoldCase
	return fmt.Sprintf(`(%s LIKE ? ESCAPE '\' OR %s LIKE ? ESCAPE '\' OR %s LIKE ? ESCAPE '\')`,
		fold("name"), fold("display_name"), fold("COALESCE(description, '')"))
}

// ListByType returns models of one type, newest first.
func (m *ModelRepository) ListByType(ctx context.Context, modelType string) ([]rows.Model, error) {
	return list[rows.Model](ctx, m.s, "models_list_by_type", mt.Name,
		mt.SelectSQL("WHERE model_type = ? ORDER BY created_at DESC, id"), modelType)
}

// ListByProvider returns one provider's models, newest first.
func (m *ModelRepository) ListByProvider(ctx context.Context, provider string) ([]rows.Model, error) {
	return list[rows.Model](ctx, m.s, "models_list_by_provider", mt.Name,
		mt.SelectSQL("WHERE provider = ? ORDER BY created_at DESC, id"), provider)
}

// ListOfficial returns official models, newest first.
func (m *ModelRepository) ListOfficial(ctx context.Context) ([]rows.Model, error) {
	return list[rows.Model](ctx, m.s, "models_list_official", mt.Name,
		mt.SelectSQL("WHERE is_official = ? ORDER BY created_at DESC, id"), true)
}

// All returns every model, newest first.
func (m *ModelRepository) All(ctx context.Context) ([]rows.Model, error) {
	return list[rows.Model](ctx, m.s, "models_all", mt.Name, mt.SelectSQL("ORDER BY created_at DESC, id"))
}

// Count returns the number of models.
func (m *ModelRepository) Count(ctx context.Context) (int64, error) {
	return m.s.count(ctx, "models_count", mt.Name, "SELECT COUNT(*) FROM models")
}

// WithInstallInfo returns every model paired with its installation, if any,
// in a single LEFT JOIN.
func (m *ModelRepository) WithInstallInfo(ctx context.Context) ([]rows.ModelWithInstall, error) {
	q := "SELECT " + rows.ModelWithInstallColumns() +
		" FROM models m LEFT JOIN installed_models i ON i.model_id = m.id ORDER BY m.created_at DESC, m.id"
	return scanAll(ctx, m.s, "models_with_install_info", mt.Name, q, rows.ScanModelWithInstall)
}

// Installed returns only installed models joined with their installation,
// most recently installed first.
func (m *ModelRepository) Installed(ctx context.Context) ([]rows.ModelWithInstall, error) {
	q := "SELECT " + rows.ModelWithInstallColumns() +
		" FROM models m INNER JOIN installed_models i ON i.model_id = m.id ORDER BY i.installed_at DESC, m.id"
	return scanAll(ctx, m.s, "models_installed", mt.Name, q, rows.ScanModelWithInstall)
}

// SortColumn is an orderable models column.
type SortColumn string

// Orderable columns.
const (
	SortCreatedAt     SortColumn = "created_at"
	SortName          SortColumn = "name"
	SortFileSize      SortColumn = "file_size"
	SortDownloadCount SortColumn = "download_count"
)

// ModelQuery filters, orders and pages ListPage.
type ModelQuery struct {
	Search        string
	ModelType     string
	Provider      string
	Official      *bool
	Tags          []string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	SortBy        SortColumn
	Ascending     bool
	Offset        int
	Limit         int
}

// ModelPage is one page of ListPage results.
type ModelPage struct {
	Items []rows.Model
	Total int64
}

// ListPage returns the models matching q and the total match count.
func (m *ModelRepository) ListPage(ctx context.Context, q ModelQuery) (ModelPage, error) {
	where, args := m.filter(q)
	total, err := m.s.count(ctx, "models_list_count", mt.Name, "SELECT COUNT(*) FROM models"+where, args...)
	if err != nil {
		return ModelPage{}, err
	}
	order := "DESC"
	if q.Ascending {
		order = "ASC"
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	suffix := fmt.Sprintf("%s ORDER BY %s %s, id LIMIT ? OFFSET ?", where, sortColumn(q.SortBy), order)
	items, err := list[rows.Model](ctx, m.s, "models_list_page", mt.Name, mt.SelectSQL(strings.TrimSpace(suffix)),
		append(args, limitOr(q.Limit, DefaultPageLimit), offset)...)
	if err != nil {
		return ModelPage{}, err
	}
	return ModelPage{Items: items, Total: total}, nil
}

func sortColumn(c SortColumn) string {
	switch c {
	case SortName, SortFileSize, SortDownloadCount:
		return string(c)
	default:
		return string(SortCreatedAt)
	}
}

func (m *ModelRepository) filter(q ModelQuery) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if q.Search != "" {
		p := "%" + EscapeLike(strings.ToLower(q.Search)) + "%"
		conds = append(conds, m.searchPredicate())
		args = append(args, p, p, p)
	}
	if q.ModelType != "" {
		conds = append(conds, "model_type = ?")
		args = append(args, q.ModelType)
	}
	if q.Provider != "" {
		conds = append(conds, "provider = ?")
		args = append(args, q.Provider)
	}
	if q.Official != nil {
		conds = append(conds, "is_official = ?")
		args = append(args, *q.Official)
	}
	if len(q.Tags) > 0 {
		conds = append(conds, m.s.dialect.TagsAnyFilter("models.tags", len(q.Tags)))
		for _, t := range q.Tags {
			args = append(args, t)
		}
	}
	if q.CreatedAfter != nil {
		conds = append(conds, "created_at >= ?")
		args = append(args, q.CreatedAfter.UTC())
	}
	if q.CreatedBefore != nil {
		conds = append(conds, "created_at < ?")
		args = append(args, q.CreatedBefore.UTC())
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
