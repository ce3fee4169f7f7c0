package sqlstore

import (
	"context"

	"modelregistry/internal/infra/persistence/rows"
)

// InstalledRepository reads and writes installed_models.
type InstalledRepository struct {
	s *Store
}

var it = rows.InstalledModelTable

// Create inserts r. A second installation of the same model fails with a
// StorageError matching ErrConflict.
func (i *InstalledRepository) Create(ctx context.Context, r rows.InstalledModel) (rows.InstalledModel, error) {
	if err := i.s.insert(ctx, "installed_create", it, r.Args()); err != nil {
		return rows.InstalledModel{}, err
	}
	return r, nil
}

// Install inserts r and raises the model's is_installed flag in one
// transaction. Nothing is written when either statement fails.
func (i *InstalledRepository) Install(ctx context.Context, r rows.InstalledModel) (rows.InstalledModel, error) {
	err := i.s.inTx(ctx, "installed_install", it.Name, func(tx execer) error {
		if _, err := i.s.execOn(ctx, tx, "installed_install", it.Name, it.InsertSQL(), r.Args()...); err != nil {
			return err
		}
		_, err := i.s.execOn(ctx, tx, "available_set_installed", at.Name, setInstalledSQL, true, i.s.now(), r.ModelID)
		return err
	})
	if err != nil {
		return rows.InstalledModel{}, err
	}
	return r, nil
}

// Uninstall removes the installation of modelID and clears its is_installed
// flag in one transaction, reporting whether an installation existed.
func (i *InstalledRepository) Uninstall(ctx context.Context, modelID string) (bool, error) {
	var removed bool
	err := i.s.inTx(ctx, "installed_uninstall", it.Name, func(tx execer) error {
		res, err := i.s.execOn(ctx, tx, "installed_uninstall", it.Name, "DELETE FROM installed_models WHERE model_id = ?", modelID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return i.s.wrap("installed_uninstall", it.Name, err)
		}
		if removed = n > 0; !removed {
			return nil
		}
		_, err = i.s.execOn(ctx, tx, "available_set_installed", at.Name, setInstalledSQL, false, i.s.now(), modelID)
		return err
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// Get returns nil when no installation has id.
func (i *InstalledRepository) Get(ctx context.Context, id string) (*rows.InstalledModel, error) {
	return getOne[rows.InstalledModel](ctx, i.s, "installed_get", it.Name, it.SelectSQL("WHERE id = ?"), id)
}

// ByModelID returns nil when modelID is not installed.
func (i *InstalledRepository) ByModelID(ctx context.Context, modelID string) (*rows.InstalledModel, error) {
	return getOne[rows.InstalledModel](ctx, i.s, "installed_by_model", it.Name, it.SelectSQL("WHERE model_id = ?"), modelID)
}

// All returns every installation, most recently installed first.
func (i *InstalledRepository) All(ctx context.Context) ([]rows.InstalledModel, error) {
	return list[rows.InstalledModel](ctx, i.s, "installed_all", it.Name, it.SelectSQL("ORDER BY installed_at DESC, id"))
}

// ByStatus returns installations in one status.
func (i *InstalledRepository) ByStatus(ctx context.Context, status string) ([]rows.InstalledModel, error) {
	return list[rows.InstalledModel](ctx, i.s, "installed_by_status", it.Name,
		it.SelectSQL("WHERE status = ? ORDER BY installed_at DESC, id"), status)
}

// Count returns the number of installations.
func (i *InstalledRepository) Count(ctx context.Context) (int64, error) {
	return i.s.count(ctx, "installed_count", it.Name, "SELECT COUNT(*) FROM installed_models")
}

// Update replaces every column except created_at and stamps updated_at.
func (i *InstalledRepository) Update(ctx context.Context, r rows.InstalledModel) (rows.InstalledModel, error) {
	r.UpdatedAt = i.s.now()
	_, err := i.s.exec(ctx, "installed_update", it.Name, it.UpdateSQL("created_at"), it.UpdateArgs(r.Args(), "created_at")...)
	if err != nil {
		return rows.InstalledModel{}, err
	}
	return r, nil
}

// Delete reports whether a row was removed.
func (i *InstalledRepository) Delete(ctx context.Context, id string) (bool, error) {
	return i.s.execAffected(ctx, "installed_delete", it.Name, "DELETE FROM installed_models WHERE id = ?", id)
}

// DeleteByModelID removes the installation of modelID.
func (i *InstalledRepository) DeleteByModelID(ctx context.Context, modelID string) (bool, error) {
	return i.s.execAffected(ctx, "installed_delete_by_model", it.Name, "DELETE FROM installed_models WHERE model_id = ?", modelID)
}

// MarkUsed increments usage_count and stamps last_used for modelID.
func (i *InstalledRepository) MarkUsed(ctx context.Context, modelID string) (bool, error) {
	now := i.s.now()
	return i.s.execAffected(ctx, "installed_mark_used", it.Name,
		"UPDATE installed_models SET usage_count = usage_count + 1, last_used = ?, updated_at = ? WHERE model_id = ?",
		now, now, modelID)
}

// AvailableRepository reads and writes available_models.
type AvailableRepository struct {
	s *Store
}

var at = rows.AvailableModelTable

const setInstalledSQL = "UPDATE available_models SET is_installed = ?, last_updated = ? WHERE model_id = ?"

// Create inserts r; one row per model.
func (a *AvailableRepository) Create(ctx context.Context, r rows.AvailableModel) (rows.AvailableModel, error) {
	if err := a.s.insert(ctx, "available_create", at, r.Args()); err != nil {
		return rows.AvailableModel{}, err
	}
	return r, nil
}

// ByModelID returns nil when modelID is not published.
func (a *AvailableRepository) ByModelID(ctx context.Context, modelID string) (*rows.AvailableModel, error) {
	return getOne[rows.AvailableModel](ctx, a.s, "available_by_model", at.Name, at.SelectSQL("WHERE model_id = ?"), modelID)
}

// List returns published models, most recently updated first.
func (a *AvailableRepository) List(ctx context.Context) ([]rows.AvailableModel, error) {
	return list[rows.AvailableModel](ctx, a.s, "available_list", at.Name, at.SelectSQL("ORDER BY last_updated DESC, id"))
}

// SetInstalled flips the is_installed flag for modelID.
func (a *AvailableRepository) SetInstalled(ctx context.Context, modelID string, installed bool) (bool, error) {
	return a.s.execAffected(ctx, "available_set_installed", at.Name, setInstalledSQL, installed, a.s.now(), modelID)
}
