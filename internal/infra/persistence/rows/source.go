package rows

import "time"

// Source mirrors the model_repositories table.
type Source struct {
	ID          string
	Name        string
	URL         string
	RepoType    string
	Enabled     bool
	AuthConfig  *string
	LastSync    *time.Time
	SyncStatus  string
	Description *string
	Tags        string
	Priority    int32
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SourceTable lists the model_repositories columns in field order.
var SourceTable = Table{
	Name: "model_repositories",
	Columns: []string{
		"id", "name", "url", "repo_type", "enabled", "auth_config", "last_sync",
		"sync_status", "description", "tags", "priority", "created_at", "updated_at",
	},
}

// Scan reads one row selected with SourceTable's column list.
func (r *Source) Scan(s Scanner) error {
	return s.Scan(
		&r.ID, &r.Name, &r.URL, &r.RepoType, &r.Enabled, &r.AuthConfig, NullTime(&r.LastSync),
		&r.SyncStatus, &r.Description, &r.Tags, &r.Priority, Time(&r.CreatedAt), Time(&r.UpdatedAt),
	)
}

// Args returns the statement arguments in column order.
func (r *Source) Args() []any {
	return []any{
		r.ID, r.Name, r.URL, r.RepoType, r.Enabled, r.AuthConfig, TimeArg(r.LastSync),
		r.SyncStatus, r.Description, r.Tags, r.Priority, r.CreatedAt, r.UpdatedAt,
	}
}

// RepositoryModel mirrors the repository_models table.
type RepositoryModel struct {
	ID                string
	RepositoryID      string
	ModelID           string
	RepoModelID       string
	RepoPath          string
	DownloadURLs      string
	Files             string
	Dependencies      string
	InstallationNotes *string
	UsageExamples     string
	LicenseText       *string
	ModelCard         *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// RepositoryModelTable lists the repository_models columns in field order.
var RepositoryModelTable = Table{
	Name: "repository_models",
	Columns: []string{
		"id", "repository_id", "model_id", "repo_model_id", "repo_path",
		"download_urls", "files", "dependencies", "installation_notes",
		"usage_examples", "license_text", "model_card", "created_at", "updated_at",
	},
}

// Scan reads one row selected with RepositoryModelTable's column list.
func (r *RepositoryModel) Scan(s Scanner) error {
	return s.Scan(
		&r.ID, &r.RepositoryID, &r.ModelID, &r.RepoModelID, &r.RepoPath,
		&r.DownloadURLs, &r.Files, &r.Dependencies, &r.InstallationNotes,
		&r.UsageExamples, &r.LicenseText, &r.ModelCard, Time(&r.CreatedAt), Time(&r.UpdatedAt),
	)
}

// Args returns the statement arguments in column order.
func (r *RepositoryModel) Args() []any {
	return []any{
		r.ID, r.RepositoryID, r.ModelID, r.RepoModelID, r.RepoPath,
		r.DownloadURLs, r.Files, r.Dependencies, r.InstallationNotes,
		r.UsageExamples, r.LicenseText, r.ModelCard, r.CreatedAt, r.UpdatedAt,
	}
}

// SyncResult mirrors the sync_results table.
type SyncResult struct {
	ID            string
	RepositoryID  string
	StartedAt     time.Time
	CompletedAt   *time.Time
	Status        string
	ModelsAdded   int32
	ModelsUpdated int32
	ModelsRemoved int32
	ErrorMessage  *string
	LogEntries    string
}

// SyncResultTable lists the sync_results columns in field order.
var SyncResultTable = Table{
	Name: "sync_results",
	Columns: []string{
		"id", "repository_id", "started_at", "completed_at", "status",
		"models_added", "models_updated", "models_removed", "error_message", "log_entries",
	},
}

// Scan reads one row selected with SyncResultTable's column list.
func (r *SyncResult) Scan(s Scanner) error {
	return s.Scan(
		&r.ID, &r.RepositoryID, Time(&r.StartedAt), NullTime(&r.CompletedAt), &r.Status,
		&r.ModelsAdded, &r.ModelsUpdated, &r.ModelsRemoved, &r.ErrorMessage, &r.LogEntries,
	)
}

// Args returns the statement arguments in column order.
func (r *SyncResult) Args() []any {
	return []any{
		r.ID, r.RepositoryID, r.StartedAt, TimeArg(r.CompletedAt), r.Status,
		r.ModelsAdded, r.ModelsUpdated, r.ModelsRemoved, r.ErrorMessage, r.LogEntries,
	}
}
