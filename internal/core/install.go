package core

import (
	"context"

	"github.com/google/uuid"

	"modelregistry/internal/infra/persistence/convert"
	"modelregistry/internal/infra/persistence/rows"
	"modelregistry/internal/infra/persistence/sqlstore"
	"modelregistry/pkg/domain"
)

// InstallModel records a stopped installation of an existing, not yet
// installed model.
func (s *Service) InstallModel(ctx context.Context, modelID uuid.UUID, installPath string) (domain.InstalledModel, error) {
	model, err := s.store.Models().Get(ctx, modelID.String())
	if err != nil {
		return domain.InstalledModel{}, err
	}
	if model == nil {
		return domain.InstalledModel{}, s.reject(ErrModelNotFound, modelID, "", nil)
	}
	existing, err := s.store.Installed().ByModelID(ctx, modelID.String())
	if err != nil {
		return domain.InstalledModel{}, err
	}
	if existing != nil {
		return domain.InstalledModel{}, s.reject(ErrModelAlreadyInstalled, modelID, model.Name, nil)
	}
	row, err := convert.InstalledToRow(domain.NewInstalledModel(modelID, installPath))
	if err != nil {
		return domain.InstalledModel{}, err
	}
	created, err := s.store.Installed().Install(ctx, row)
	if err != nil {
		if sqlstore.IsConflict(err) {
			return domain.InstalledModel{}, s.reject(ErrModelAlreadyInstalled, modelID, model.Name, err)
		}
		return domain.InstalledModel{}, err
	}
	return convert.InstalledFromRow(created)
}

// UninstallModel removes the installation of modelID.
func (s *Service) UninstallModel(ctx context.Context, modelID uuid.UUID) error {
	ok, err := s.store.Installed().Uninstall(ctx, modelID.String())
	if err != nil {
		return err
	}
	if !ok {
		return s.reject(ErrModelNotInstalled, modelID, "", nil)
	}
	return nil
}

// UpdateInstalledModel replaces the installation record of im.ModelID. The
// stored id and creation time are kept.
func (s *Service) UpdateInstalledModel(ctx context.Context, im domain.InstalledModel) (domain.InstalledModel, error) {
	existing, err := s.store.Installed().ByModelID(ctx, im.ModelID.String())
	if err != nil {
		return domain.InstalledModel{}, err
	}
	if existing == nil {
		return domain.InstalledModel{}, s.reject(ErrModelNotInstalled, im.ModelID, "", nil)
	}
	row, err := convert.InstalledToRow(im)
	if err != nil {
		return domain.InstalledModel{}, err
	}
	row.ID = existing.ID
	row.CreatedAt = existing.CreatedAt
	updated, err := s.store.Installed().Update(ctx, row)
	if err != nil {
		return domain.InstalledModel{}, err
	}
	return convert.InstalledFromRow(updated)
}

// UpdateUsage increments the usage counter of an installed model and stamps
// its last-used time in one statement.
func (s *Service) UpdateUsage(ctx context.Context, modelID uuid.UUID) error {
	ok, err := s.store.Installed().MarkUsed(ctx, modelID.String())
	if err != nil {
		return err
	}
	if !ok {
		return s.reject(ErrModelNotInstalled, modelID, "", nil)
	}
	return nil
}

// InstalledModels returns every installed model with its installation, most
// recently installed first, from a single join.
func (s *Service) InstalledModels(ctx context.Context) ([]domain.ModelWithInstall, error) {
	return joined(s.store.Models().Installed(ctx))
}

// ModelsWithInstallInfo returns every model, installed or not, with its
// installation when present.
func (s *Service) ModelsWithInstallInfo(ctx context.Context) ([]domain.ModelWithInstall, error) {
	return joined(s.store.Models().WithInstallInfo(ctx))
}

// InstalledByStatus lists installations in one status.
func (s *Service) InstalledByStatus(ctx context.Context, status domain.ModelStatus) ([]domain.InstalledModel, error) {
	in, err := s.store.Installed().ByStatus(ctx, string(status))
	if err != nil {
		return nil, err
	}
	return convert.InstalledFromRows(in)
}

func joined(in []rows.ModelWithInstall, err error) ([]domain.ModelWithInstall, error) {
	if err != nil {
		return nil, err
	}
	out := make([]domain.ModelWithInstall, 0, len(in))
	for _, r := range in {
		m, err := convert.ModelWithInstallFromRow(r)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
