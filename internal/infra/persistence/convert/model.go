package convert

import (
	"modelregistry/internal/infra/persistence/rows"
	"modelregistry/pkg/domain"
)

// ModelToRow converts m for storage. The size category is recomputed from
// the file size; whatever m carries is ignored.
func ModelToRow(m domain.Model) (rows.Model, error) {
	modelType, err := checkEnum("model_type", m.ModelType, domain.ParseModelType)
	if err != nil {
		return rows.Model{}, err
	}
	fileSize, err := u64("file_size", m.FileSize)
	if err != nil {
		return rows.Model{}, err
	}
	downloads, err := u64("download_count", m.DownloadCount)
	if err != nil {
		return rows.Model{}, err
	}
	tags, err := encodeList("tags", m.Tags)
	if err != nil {
		return rows.Model{}, err
	}
	languages, err := encodeList("languages", m.Languages)
	if err != nil {
		return rows.Model{}, err
	}
	config, err := encodeMap("config", m.Config)
	if err != nil {
		return rows.Model{}, err
	}
	return rows.Model{
		ID:            m.ID.String(),
		Name:          m.Name,
		DisplayName:   m.DisplayName,
		Description:   m.Description,
		Version:       m.Version,
		ModelType:     modelType,
		SizeCategory:  string(domain.ClassifySize(m.FileSize)),
		FileSize:      fileSize,
		Provider:      m.Provider,
		License:       m.License,
		Tags:          tags,
		Languages:     languages,
		FilePath:      m.FilePath,
		Checksum:      m.Checksum,
		DownloadURL:   m.DownloadURL,
		Config:        config,
		Rating:        m.Rating,
		DownloadCount: downloads,
		IsOfficial:    m.IsOfficial,
		CreatedAt:     m.CreatedAt.UTC(),
		UpdatedAt:     m.UpdatedAt.UTC(),
	}, nil
}

// ModelFromRow converts a stored record back to a domain model.
func ModelFromRow(r rows.Model) (domain.Model, error) {
	id, err := parseID("id", r.ID)
	if err != nil {
		return domain.Model{}, err
	}
	modelType, err := parseEnum("model_type", r.ModelType, domain.ParseModelType)
	if err != nil {
		return domain.Model{}, err
	}
	size, err := parseEnum("size_category", r.SizeCategory, domain.ParseSizeCategory)
	if err != nil {
		return domain.Model{}, err
	}
	fileSize, err := toU64("file_size", r.FileSize)
	if err != nil {
		return domain.Model{}, err
	}
	downloads, err := toU64("download_count", r.DownloadCount)
	if err != nil {
		return domain.Model{}, err
	}
	tags, err := decodeList[string]("tags", r.Tags)
	if err != nil {
		return domain.Model{}, err
	}
	languages, err := decodeList[string]("languages", r.Languages)
	if err != nil {
		return domain.Model{}, err
	}
	config, err := decodeMap[any]("config", r.Config)
	if err != nil {
		return domain.Model{}, err
	}
	return domain.Model{
		ID:            id,
		Name:          r.Name,
		DisplayName:   r.DisplayName,
		Description:   optString(r.Description),
		Version:       r.Version,
		ModelType:     modelType,
		SizeCategory:  size,
		FileSize:      fileSize,
		Provider:      r.Provider,
		License:       optString(r.License),
		Tags:          tags,
		Languages:     languages,
		FilePath:      optString(r.FilePath),
		Checksum:      optString(r.Checksum),
		DownloadURL:   optString(r.DownloadURL),
		Config:        config,
		Rating:        r.Rating,
		DownloadCount: downloads,
		IsOfficial:    r.IsOfficial,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}, nil
}

// ModelsFromRows converts a slice, stopping at the first failure.
func ModelsFromRows(in []rows.Model) ([]domain.Model, error) {
	out := make([]domain.Model, 0, len(in))
	for _, r := range in {
		m, err := ModelFromRow(r)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// InstalledToRow converts an installation record for storage.
func InstalledToRow(m domain.InstalledModel) (rows.InstalledModel, error) {
	status, err := checkEnum("status", m.Status, domain.ParseModelStatus)
	if err != nil {
		return rows.InstalledModel{}, err
	}
	processID, err := optU32("process_id", m.ProcessID)
	if err != nil {
		return rows.InstalledModel{}, err
	}
	usage, err := u64("usage_count", m.UsageCount)
	if err != nil {
		return rows.InstalledModel{}, err
	}
	return rows.InstalledModel{
		ID:          m.ID.String(),
		ModelID:     m.ModelID.String(),
		InstallPath: m.InstallPath,
		InstalledAt: m.InstalledAt.UTC(),
		Status:      status,
		Port:        optU16(m.Port),
		ProcessID:   processID,
		LastUsed:    utcPtr(m.LastUsed),
		UsageCount:  usage,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}, nil
}

// InstalledFromRow converts a stored installation record.
func InstalledFromRow(r rows.InstalledModel) (domain.InstalledModel, error) {
	id, err := parseID("id", r.ID)
	if err != nil {
		return domain.InstalledModel{}, err
	}
	modelID, err := parseID("model_id", r.ModelID)
	if err != nil {
		return domain.InstalledModel{}, err
	}
	status, err := parseEnum("status", r.Status, domain.ParseModelStatus)
	if err != nil {
		return domain.InstalledModel{}, err
	}
	port, err := toOptU16("port", r.Port)
	if err != nil {
		return domain.InstalledModel{}, err
	}
	processID, err := toOptU32("process_id", r.ProcessID)
	if err != nil {
		return domain.InstalledModel{}, err
	}
	usage, err := toU64("usage_count", r.UsageCount)
	if err != nil {
		return domain.InstalledModel{}, err
	}
	return domain.InstalledModel{
		ID:          id,
		ModelID:     modelID,
		InstallPath: r.InstallPath,
		InstalledAt: r.InstalledAt,
		Status:      status,
		Port:        port,
		ProcessID:   processID,
		LastUsed:    r.LastUsed,
		UsageCount:  usage,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}

// InstalledFromRows converts a slice, stopping at the first failure.
func InstalledFromRows(in []rows.InstalledModel) ([]domain.InstalledModel, error) {
	out := make([]domain.InstalledModel, 0, len(in))
	for _, r := range in {
		m, err := InstalledFromRow(r)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// ModelWithInstallFromRow converts one joined row.
func ModelWithInstallFromRow(r rows.ModelWithInstall) (domain.ModelWithInstall, error) {
	m, err := ModelFromRow(r.Model)
	if err != nil {
		return domain.ModelWithInstall{}, err
	}
	out := domain.ModelWithInstall{Model: m}
	if r.Installed != nil {
		inst, err := InstalledFromRow(*r.Installed)
		if err != nil {
			return domain.ModelWithInstall{}, err
		}
		out.Installed = &inst
	}
	return out, nil
}

type systemRequirementsJSON struct {
	MinMemoryGB            float64  `json:"min_memory_gb"`
	RecommendedMemoryGB    float64  `json:"recommended_memory_gb"`
	MinDiskSpaceGB         float64  `json:"min_disk_space_gb"`
	RequiresGPU            bool     `json:"requires_gpu"`
	SupportedOS            []string `json:"supported_os"`
	SupportedArchitectures []string `json:"supported_architectures"`
}

// AvailableToRow converts an available-model record for storage.
func AvailableToRow(m domain.AvailableModel) (rows.AvailableModel, error) {
	req := m.SystemRequirements
	wire := systemRequirementsJSON{
		MinMemoryGB:            req.MinMemoryGB,
		RecommendedMemoryGB:    req.RecommendedMemoryGB,
		MinDiskSpaceGB:         req.MinDiskSpaceGB,
		RequiresGPU:            req.RequiresGPU,
		SupportedOS:            nonNil(req.SupportedOS),
		SupportedArchitectures: nonNil(req.SupportedArchitectures),
	}
	text, err := encode("system_requirements", wire)
	if err != nil {
		return rows.AvailableModel{}, err
	}
	return rows.AvailableModel{
		ID:                 m.ID.String(),
		ModelID:            m.ModelID.String(),
		IsInstalled:        m.IsInstalled,
		PublishedAt:        m.PublishedAt.UTC(),
		LastUpdated:        m.LastUpdated.UTC(),
		SystemRequirements: text,
	}, nil
}

// AvailableFromRow converts a stored available-model record.
func AvailableFromRow(r rows.AvailableModel) (domain.AvailableModel, error) {
	id, err := parseID("id", r.ID)
	if err != nil {
		return domain.AvailableModel{}, err
	}
	modelID, err := parseID("model_id", r.ModelID)
	if err != nil {
		return domain.AvailableModel{}, err
	}
	var wire systemRequirementsJSON
	if err := decodeObject("system_requirements", r.SystemRequirements, &wire); err != nil {
		return domain.AvailableModel{}, err
	}
	return domain.AvailableModel{
		ID:          id,
		ModelID:     modelID,
		IsInstalled: r.IsInstalled,
		PublishedAt: r.PublishedAt,
		LastUpdated: r.LastUpdated,
		SystemRequirements: domain.SystemRequirements{
			MinMemoryGB:            wire.MinMemoryGB,
			RecommendedMemoryGB:    wire.RecommendedMemoryGB,
			MinDiskSpaceGB:         wire.MinDiskSpaceGB,
			RequiresGPU:            wire.RequiresGPU,
			SupportedOS:            nonNil(wire.SupportedOS),
			SupportedArchitectures: nonNil(wire.SupportedArchitectures),
		},
	}, nil
}

func nonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}
