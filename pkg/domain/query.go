package domain

import "time"

// Pagination defaults.
const (
	DefaultPageLimit   = 20
	DefaultSearchLimit = 50
)

// SortField names an orderable model column.
type SortField string

// Orderable fields.
const (
	SortCreatedAt     SortField = "created_at"
	SortName          SortField = "name"
	SortFileSize      SortField = "file_size"
	SortDownloadCount SortField = "download_count"
)

// ModelFilter narrows a model listing. Zero values disable a filter.
type ModelFilter struct {
	Search        string
	ModelType     *ModelType
	Provider      string
	Official      *bool
	Tags          []string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// QueryOptions combines filtering, ordering and pagination for ListModels.
type QueryOptions struct {
	Offset    int
	Limit     int
	Filter    ModelFilter
	SortBy    SortField
	Ascending bool
}

// Normalized fills defaults and clamps negative values.
func (o QueryOptions) Normalized() QueryOptions {
	if o.Offset < 0 {
		o.Offset = 0
	}
	if o.Limit <= 0 {
		o.Limit = DefaultPageLimit
	}
	switch o.SortBy {
	case SortCreatedAt, SortName, SortFileSize, SortDownloadCount:
	default:
		o.SortBy = SortCreatedAt
	}
	return o
}

// Page is one slice of a paginated listing.
type Page[T any] struct {
	Items      []T
	TotalCount int64
	HasMore    bool
}

// NewPage computes HasMore from the window and total.
func NewPage[T any](items []T, total int64, offset, limit int) Page[T] {
	return Page[T]{
		Items:      items,
		TotalCount: total,
		HasMore:    int64(offset+limit) < total,
	}
}
