package rows

import "time"

// Model mirrors the models table.
type Model struct {
	ID            string
	Name          string
	DisplayName   string
	Description   *string
	Version       string
	ModelType     string
	SizeCategory  string
	FileSize      int64
	Provider      string
	License       *string
	Tags          string
	Languages     string
	FilePath      *string
	Checksum      *string
	DownloadURL   *string
	Config        string
	Rating        *float64
	DownloadCount int64
	IsOfficial    bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ModelTable lists the models columns in Model field order.
var ModelTable = Table{
	Name: "models",
	Columns: []string{
		"id", "name", "display_name", "description", "version", "model_type",
		"size_category", "file_size", "provider", "license", "tags", "languages",
		"file_path", "checksum", "download_url", "config", "rating",
		"download_count", "is_official", "created_at", "updated_at",
	},
}

func (r *Model) dest() []any {
	return []any{
		&r.ID, &r.Name, &r.DisplayName, &r.Description, &r.Version, &r.ModelType,
		&r.SizeCategory, &r.FileSize, &r.Provider, &r.License, &r.Tags, &r.Languages,
		&r.FilePath, &r.Checksum, &r.DownloadURL, &r.Config, &r.Rating,
		&r.DownloadCount, &r.IsOfficial, Time(&r.CreatedAt), Time(&r.UpdatedAt),
	}
}

// Scan reads one row selected with ModelTable's column list.
func (r *Model) Scan(s Scanner) error { return s.Scan(r.dest()...) }

// Args returns the statement arguments in column order.
func (r *Model) Args() []any {
	return []any{
		r.ID, r.Name, r.DisplayName, r.Description, r.Version, r.ModelType,
		r.SizeCategory, r.FileSize, r.Provider, r.License, r.Tags, r.Languages,
		r.FilePath, r.Checksum, r.DownloadURL, r.Config, r.Rating,
		r.DownloadCount, r.IsOfficial, r.CreatedAt, r.UpdatedAt,
	}
}

// InstalledModel mirrors the installed_models table.
type InstalledModel struct {
	ID          string
	ModelID     string
	InstallPath string
	InstalledAt time.Time
	Status      string
	Port        *int32
	ProcessID   *int32
	LastUsed    *time.Time
	UsageCount  int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InstalledModelTable lists the installed_models columns in field order.
var InstalledModelTable = Table{
	Name: "installed_models",
	Columns: []string{
		"id", "model_id", "install_path", "installed_at", "status", "port",
		"process_id", "last_used", "usage_count", "created_at", "updated_at",
	},
}

func (r *InstalledModel) dest() []any {
	return []any{
		&r.ID, &r.ModelID, &r.InstallPath, Time(&r.InstalledAt), &r.Status, &r.Port,
		&r.ProcessID, NullTime(&r.LastUsed), &r.UsageCount, Time(&r.CreatedAt), Time(&r.UpdatedAt),
	}
}

// Scan reads one row selected with InstalledModelTable's column list.
func (r *InstalledModel) Scan(s Scanner) error { return s.Scan(r.dest()...) }

// Args returns the statement arguments in column order.
func (r *InstalledModel) Args() []any {
	return []any{
		r.ID, r.ModelID, r.InstallPath, r.InstalledAt, r.Status, r.Port,
		r.ProcessID, TimeArg(r.LastUsed), r.UsageCount, r.CreatedAt, r.UpdatedAt,
	}
}

// ModelWithInstall is one row of the models LEFT JOIN installed_models read.
type ModelWithInstall struct {
	Model     Model
	Installed *InstalledModel
}

// ModelWithInstallColumns is the select list for ScanModelWithInstall, with
// models aliased m and installed_models aliased i.
func ModelWithInstallColumns() string {
	return ModelTable.ColumnList("m") + ", " + InstalledModelTable.ColumnList("i")
}

// ScanModelWithInstall reads one joined row. The installation is nil when the
// joined columns are NULL.
func ScanModelWithInstall(s Scanner) (ModelWithInstall, error) {
	var (
		out                                     ModelWithInstall
		id, modelID, installPath, status        *string
		port, processID                         *int32
		usageCount                              *int64
		installedAt, lastUsed, created, updated *time.Time
	)
	dest := append(out.Model.dest(),
		&id, &modelID, &installPath, NullTime(&installedAt), &status, &port,
		&processID, NullTime(&lastUsed), &usageCount, NullTime(&created), NullTime(&updated),
	)
	if err := s.Scan(dest...); err != nil {
		return ModelWithInstall{}, err
	}
	if id == nil {
		return out, nil
	}
	inst := &InstalledModel{
		ID:        *id,
		Port:      port,
		ProcessID: processID,
		LastUsed:  lastUsed,
	}
	if modelID != nil {
		inst.ModelID = *modelID
	}
	if installPath != nil {
		inst.InstallPath = *installPath
	}
	if status != nil {
		inst.Status = *status
	}
	if usageCount != nil {
		inst.UsageCount = *usageCount
	}
	if installedAt != nil {
		inst.InstalledAt = *installedAt
	}
	if created != nil {
		inst.CreatedAt = *created
	}
	if updated != nil {
		inst.UpdatedAt = *updated
	}
	out.Installed = inst
	return out, nil
}

// AvailableModel mirrors the available_models table.
type AvailableModel struct {
	ID                 string
	ModelID            string
	IsInstalled        bool
	PublishedAt        time.Time
	LastUpdated        time.Time
	SystemRequirements string
}

// AvailableModelTable lists the available_models columns in field order.
var AvailableModelTable = Table{
	Name:    "available_models",
	Columns: []string{"id", "model_id", "is_installed", "published_at", "last_updated", "system_requirements"},
}

// Scan reads one row selected with AvailableModelTable's column list.
func (r *AvailableModel) Scan(s Scanner) error {
	return s.Scan(&r.ID, &r.ModelID, &r.IsInstalled, Time(&r.PublishedAt), Time(&r.LastUpdated), &r.SystemRequirements)
}

// Args returns the statement arguments in column order.
func (r *AvailableModel) Args() []any {
	return []any{r.ID, r.ModelID, r.IsInstalled, r.PublishedAt, r.LastUpdated, r.SystemRequirements}
}
