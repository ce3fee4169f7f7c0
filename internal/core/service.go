// Package core enforces the registry's cross-entity rules on top of the
// storage repositories: unique names, one installation per model, and no
// deleting a model that is still installed.
package core

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"modelregistry/internal/infra/persistence/convert"
	"modelregistry/internal/infra/persistence/rows"
	"modelregistry/internal/infra/persistence/sqlstore"
	"modelregistry/pkg/domain"
)

// Service composes repository reads and writes into guarded operations.
// Guards are a read followed by a write; the storage uniqueness constraints
// turn a lost race into the same rule error.
type Service struct {
	store       *sqlstore.Store
	log         zerolog.Logger
	searchLimit int
}

// Option configures a Service.
type Option func(*Service)

// WithLogger installs a logger for rule rejections. The default discards output.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithSearchLimit sets the result cap used when Search receives limit <= 0.
func WithSearchLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.searchLimit = n
		}
	}
}

// NewService wraps an open store. The caller keeps ownership of store.
func NewService(store *sqlstore.Store, opts ...Option) *Service {
	s := &Service{store: store, log: zerolog.Nop(), searchLimit: domain.DefaultSearchLimit}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With().Str("component", "core").Logger()
	return s
}

// Store returns the underlying store.
func (s *Service) Store() *sqlstore.Store { return s.store }

// CreateModel inserts m after checking that its name is free.
func (s *Service) CreateModel(ctx context.Context, m domain.Model) (domain.Model, error) {
	if err := m.Validate(); err != nil {
		return domain.Model{}, err
	}
	existing, err := s.store.Models().GetByName(ctx, m.Name)
	if err != nil {
		return domain.Model{}, err
	}
	if existing != nil {
		return domain.Model{}, s.reject(ErrModelAlreadyExists, m.ID, m.Name, nil)
	}
	row, err := convert.ModelToRow(m)
	if err != nil {
		return domain.Model{}, err
	}
	created, err := s.store.Models().Create(ctx, row)
	if err != nil {
		if sqlstore.IsConflict(err) {
			return domain.Model{}, s.reject(ErrModelAlreadyExists, m.ID, m.Name, err)
		}
		return domain.Model{}, err
	}
	return convert.ModelFromRow(created)
}

// UpdateModel replaces a stored model and refreshes its updated_at.
func (s *Service) UpdateModel(ctx context.Context, m domain.Model) (domain.Model, error) {
	if err := m.Validate(); err != nil {
		return domain.Model{}, err
	}
	existing, err := s.store.Models().Get(ctx, m.ID.String())
	if err != nil {
		return domain.Model{}, err
	}
	if existing == nil {
		return domain.Model{}, s.reject(ErrModelNotFound, m.ID, m.Name, nil)
	}
	m.Touch()
	row, err := convert.ModelToRow(m)
	if err != nil {
		return domain.Model{}, err
	}
	row.CreatedAt = existing.CreatedAt
	updated, err := s.store.Models().Update(ctx, row)
	if err != nil {
		if sqlstore.IsConflict(err) {
			return domain.Model{}, s.reject(ErrModelAlreadyExists, m.ID, m.Name, err)
		}
		return domain.Model{}, err
	}
	return convert.ModelFromRow(updated)
}

// GetModel returns nil when no model has id.
func (s *Service) GetModel(ctx context.Context, id uuid.UUID) (*domain.Model, error) {
	row, err := s.store.Models().Get(ctx, id.String())
	return optModel(row, err)
}

// GetModelByName returns nil when no model has name.
func (s *Service) GetModelByName(ctx context.Context, name string) (*domain.Model, error) {
	row, err := s.store.Models().GetByName(ctx, name)
	return optModel(row, err)
}

func optModel(row *rows.Model, err error) (*domain.Model, error) {
	if err != nil || row == nil {
		return nil, err
	}
	m, err := convert.ModelFromRow(*row)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// DeleteModel removes a model that has no installation. It reports whether a
// row was removed.
func (s *Service) DeleteModel(ctx context.Context, id uuid.UUID) (bool, error) {
	inst, err := s.store.Installed().ByModelID(ctx, id.String())
	if err != nil {
		return false, err
	}
	if inst != nil {
		return false, s.reject(ErrModelHasInstalledInstances, id, "", nil)
	}
	return s.store.Models().Delete(ctx, id.String())
}

// ListModels returns one filtered, ordered page of models.
func (s *Service) ListModels(ctx context.Context, opts domain.QueryOptions) (domain.Page[domain.Model], error) {
	opts = opts.Normalized()
	q := sqlstore.ModelQuery{
		Search:        opts.Filter.Search,
		Provider:      opts.Filter.Provider,
		Official:      opts.Filter.Official,
		Tags:          opts.Filter.Tags,
		CreatedAfter:  opts.Filter.CreatedAfter,
		CreatedBefore: opts.Filter.CreatedBefore,
		SortBy:        sqlstore.SortColumn(opts.SortBy),
		Ascending:     opts.Ascending,
		Offset:        opts.Offset,
		Limit:         opts.Limit,
	}
	if opts.Filter.ModelType != nil {
		q.ModelType = string(*opts.Filter.ModelType)
	}
	page, err := s.store.Models().ListPage(ctx, q)
	if err != nil {
		return domain.Page[domain.Model]{}, err
	}
	items, err := convert.ModelsFromRows(page.Items)
	if err != nil {
		return domain.Page[domain.Model]{}, err
	}
	return domain.NewPage(items, page.Total, opts.Offset, opts.Limit), nil
}

// Search matches query case-insensitively against name, display name and
// description, newest first.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]domain.Model, error) {
	if limit <= 0 {
		limit = s.searchLimit
	}
	return s.models(s.store.Models().Search(ctx, query, limit))
}

// ModelsByType lists models of one type.
func (s *Service) ModelsByType(ctx context.Context, t domain.ModelType) ([]domain.Model, error) {
	return s.models(s.store.Models().ListByType(ctx, string(t)))
}

// ModelsByProvider lists models from one provider.
func (s *Service) ModelsByProvider(ctx context.Context, provider string) ([]domain.Model, error) {
	return s.models(s.store.Models().ListByProvider(ctx, provider))
}

// OfficialModels lists models flagged official.
func (s *Service) OfficialModels(ctx context.Context) ([]domain.Model, error) {
	return s.models(s.store.Models().ListOfficial(ctx))
}

// AllModels lists every model, newest first.
func (s *Service) AllModels(ctx context.Context) ([]domain.Model, error) {
	return s.models(s.store.Models().All(ctx))
}

func (s *Service) models(in []rows.Model, err error) ([]domain.Model, error) {
	if err != nil {
		return nil, err
	}
	return convert.ModelsFromRows(in)
}

// IncrementDownloadCount bumps the download counter of an existing model.
func (s *Service) IncrementDownloadCount(ctx context.Context, id uuid.UUID) error {
	ok, err := s.store.Models().IncrementDownloadCount(ctx, id.String())
	if err != nil {
		return err
	}
	if !ok {
		return s.reject(ErrModelNotFound, id, "", nil)
	}
	return nil
}

// IsRuleError reports whether err is a business-rule rejection.
func IsRuleError(err error) bool {
	var re *RuleError
	return errors.As(err, &re)
}
