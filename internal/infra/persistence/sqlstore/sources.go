package sqlstore

import (
	"context"
	"strings"

	"modelregistry/internal/infra/persistence/rows"
)

// SourceRepository reads and writes model sources, their listings and
// synchronisation history.
type SourceRepository struct {
	s *Store
}

var (
	st  = rows.SourceTable
	rmd = rows.RepositoryModelTable
	srt = rows.SyncResultTable
)

// Create inserts a source. Names are unique.
func (r *SourceRepository) Create(ctx context.Context, src rows.Source) (rows.Source, error) {
	if err := r.s.insert(ctx, "source_create", st, src.Args()); err != nil {
		return rows.Source{}, err
	}
	return src, nil
}

// Get returns nil when no source has id.
func (r *SourceRepository) Get(ctx context.Context, id string) (*rows.Source, error) {
	return getOne[rows.Source](ctx, r.s, "source_get", st.Name, st.SelectSQL("WHERE id = ?"), id)
}

// List returns every source by ascending priority.
func (r *SourceRepository) List(ctx context.Context) ([]rows.Source, error) {
	return list[rows.Source](ctx, r.s, "source_list", st.Name, st.SelectSQL("ORDER BY priority, name"))
}

// Update replaces every column except created_at and stamps updated_at.
func (r *SourceRepository) Update(ctx context.Context, src rows.Source) (rows.Source, error) {
	src.UpdatedAt = r.s.now()
	_, err := r.s.exec(ctx, "source_update", st.Name, st.UpdateSQL("created_at"), st.UpdateArgs(src.Args(), "created_at")...)
	if err != nil {
		return rows.Source{}, err
	}
	return src, nil
}

// Delete reports whether a source was removed. Listings and sync history cascade.
func (r *SourceRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.s.execAffected(ctx, "source_delete", st.Name, "DELETE FROM model_repositories WHERE id = ?", id)
}

// UpsertModel inserts a listing or, when (repository_id, repo_model_id)
// already exists, overwrites it in the same statement. created_at and id of
// an existing listing are kept.
func (r *SourceRepository) UpsertModel(ctx context.Context, m rows.RepositoryModel) error {
	sets := make([]string, 0, len(rmd.Columns))
	for _, c := range rmd.Columns {
		switch c {
		case "id", "repository_id", "repo_model_id", "created_at":
			continue
		}
		sets = append(sets, c+" = excluded."+c)
	}
	q := rmd.InsertSQL() + " ON CONFLICT (repository_id, repo_model_id) DO UPDATE SET " + strings.Join(sets, ", ")
	_, err := r.s.exec(ctx, "source_upsert_model", rmd.Name, q, m.Args()...)
	return err
}

// Models returns the listings of one source.
func (r *SourceRepository) Models(ctx context.Context, repositoryID string) ([]rows.RepositoryModel, error) {
	return list[rows.RepositoryModel](ctx, r.s, "source_models", rmd.Name,
		rmd.SelectSQL("WHERE repository_id = ? ORDER BY repo_model_id"), repositoryID)
}

// RecordSync appends a sync result and updates the source's sync status and
// last_sync.
func (r *SourceRepository) RecordSync(ctx context.Context, res rows.SyncResult) error {
	if err := r.s.insert(ctx, "source_record_sync", srt, res.Args()); err != nil {
		return err
	}
	last := res.StartedAt
	if res.CompletedAt != nil {
		last = *res.CompletedAt
	}
	_, err := r.s.exec(ctx, "source_mark_synced", st.Name,
		"UPDATE model_repositories SET sync_status = ?, last_sync = ?, updated_at = ? WHERE id = ?",
		res.Status, last, r.s.now(), res.RepositoryID)
	return err
}

// SyncHistory returns the latest sync results for one source, newest first.
func (r *SourceRepository) SyncHistory(ctx context.Context, repositoryID string, limit int) ([]rows.SyncResult, error) {
	return list[rows.SyncResult](ctx, r.s, "source_sync_history", srt.Name,
		srt.SelectSQL("WHERE repository_id = ? ORDER BY started_at DESC, id LIMIT ?"), repositoryID, limitOr(limit, DefaultSearchLimit))
}
