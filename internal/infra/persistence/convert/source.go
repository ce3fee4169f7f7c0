package convert

import (
	"modelregistry/internal/infra/persistence/rows"
	"modelregistry/pkg/domain"
)

type sourceAuthJSON struct {
	AuthType    string            `json:"auth_type"`
	Username    *string           `json:"username,omitempty"`
	Token       *string           `json:"token,omitempty"`
	APIKey      *string           `json:"api_key,omitempty"`
	ExtraParams map[string]string `json:"extra_params"`
}

type downloadURLJSON struct {
	Filename          string  `json:"filename"`
	URL               string  `json:"url"`
	Size              uint64  `json:"size"`
	Checksum          *string `json:"checksum,omitempty"`
	ChecksumAlgorithm *string `json:"checksum_algorithm,omitempty"`
	IsPrimary         bool    `json:"is_primary"`
}

type modelFileJSON struct {
	Filename    string  `json:"filename"`
	Size        uint64  `json:"size"`
	FileType    string  `json:"file_type"`
	Checksum    *string `json:"checksum,omitempty"`
	Required    bool    `json:"required"`
	Description *string `json:"description,omitempty"`
}

// SourceToRow converts a model source for storage. A nil Auth is stored as NULL.
func SourceToRow(s domain.Source) (rows.Source, error) {
	repoType, err := checkEnum("repo_type", s.Type, domain.ParseSourceType)
	if err != nil {
		return rows.Source{}, err
	}
	syncStatus, err := checkEnum("sync_status", s.SyncStatus, domain.ParseSyncStatus)
	if err != nil {
		return rows.Source{}, err
	}
	tags, err := encodeList("tags", s.Tags)
	if err != nil {
		return rows.Source{}, err
	}
	r := rows.Source{
		ID:          s.ID.String(),
		Name:        s.Name,
		URL:         s.URL,
		RepoType:    repoType,
		Enabled:     s.Enabled,
		LastSync:    utcPtr(s.LastSync),
		SyncStatus:  syncStatus,
		Description: s.Description,
		Tags:        tags,
		Priority:    s.Priority,
		CreatedAt:   s.CreatedAt.UTC(),
		UpdatedAt:   s.UpdatedAt.UTC(),
	}
	if s.Auth != nil {
		authType, err := checkEnum("auth_config.auth_type", s.Auth.AuthType, domain.ParseAuthType)
		if err != nil {
			return rows.Source{}, err
		}
		extra := s.Auth.ExtraParams
		if extra == nil {
			extra = map[string]string{}
		}
		text, err := encode("auth_config", sourceAuthJSON{
			AuthType:    authType,
			Username:    s.Auth.Username,
			Token:       s.Auth.Token,
			APIKey:      s.Auth.APIKey,
			ExtraParams: extra,
		})
		if err != nil {
			return rows.Source{}, err
		}
		r.AuthConfig = &text
	}
	return r, nil
}

// SourceFromRow converts a stored model source.
func SourceFromRow(r rows.Source) (domain.Source, error) {
	var (
		s   domain.Source
		err error
	)
	if s.ID, err = parseID("id", r.ID); err != nil {
		return domain.Source{}, err
	}
	if s.Type, err = parseEnum("repo_type", r.RepoType, domain.ParseSourceType); err != nil {
		return domain.Source{}, err
	}
	if s.SyncStatus, err = parseEnum("sync_status", r.SyncStatus, domain.ParseSyncStatus); err != nil {
		return domain.Source{}, err
	}
	if s.Tags, err = decodeList[string]("tags", r.Tags); err != nil {
		return domain.Source{}, err
	}
	if text := optString(r.AuthConfig); text != nil && !isEmptyJSON(*text) {
		var wire sourceAuthJSON
		if err := decodeObject("auth_config", *text, &wire); err != nil {
			return domain.Source{}, err
		}
		authType, err := parseEnum("auth_config.auth_type", wire.AuthType, domain.ParseAuthType)
		if err != nil {
			return domain.Source{}, err
		}
		if wire.ExtraParams == nil {
			wire.ExtraParams = map[string]string{}
		}
		s.Auth = &domain.SourceAuth{
			AuthType:    authType,
			Username:    wire.Username,
			Token:       wire.Token,
			APIKey:      wire.APIKey,
			ExtraParams: wire.ExtraParams,
		}
	}
	s.Name = r.Name
	s.URL = r.URL
	s.Enabled = r.Enabled
	s.LastSync = r.LastSync
	s.Description = optString(r.Description)
	s.Priority = r.Priority
	s.CreatedAt = r.CreatedAt
	s.UpdatedAt = r.UpdatedAt
	return s, nil
}

// RepositoryModelToRow converts a source listing for storage.
func RepositoryModelToRow(m domain.RepositoryModel) (rows.RepositoryModel, error) {
	urls := make([]downloadURLJSON, 0, len(m.DownloadURLs))
	for _, u := range m.DownloadURLs {
		urls = append(urls, downloadURLJSON(u))
	}
	files := make([]modelFileJSON, 0, len(m.Files))
	for _, f := range m.Files {
		fileType, err := checkEnum("files.file_type", f.FileType, domain.ParseModelFileType)
		if err != nil {
			return rows.RepositoryModel{}, err
		}
		files = append(files, modelFileJSON{
			Filename:    f.Filename,
			Size:        f.Size,
			FileType:    fileType,
			Checksum:    f.Checksum,
			Required:    f.Required,
			Description: f.Description,
		})
	}
	r := rows.RepositoryModel{
		ID:                m.ID.String(),
		RepositoryID:      m.RepositoryID.String(),
		ModelID:           m.ModelID.String(),
		RepoModelID:       m.RepoModelID,
		RepoPath:          m.RepoPath,
		InstallationNotes: m.InstallationNotes,
		LicenseText:       m.LicenseText,
		ModelCard:         m.ModelCard,
		CreatedAt:         m.CreatedAt.UTC(),
		UpdatedAt:         m.UpdatedAt.UTC(),
	}
	var err error
	if r.DownloadURLs, err = encodeList("download_urls", urls); err != nil {
		return rows.RepositoryModel{}, err
	}
	if r.Files, err = encodeList("files", files); err != nil {
		return rows.RepositoryModel{}, err
	}
	if r.Dependencies, err = encodeList("dependencies", m.Dependencies); err != nil {
		return rows.RepositoryModel{}, err
	}
	if r.UsageExamples, err = encodeList("usage_examples", m.UsageExamples); err != nil {
		return rows.RepositoryModel{}, err
	}
	return r, nil
}

// RepositoryModelFromRow converts a stored source listing.
func RepositoryModelFromRow(r rows.RepositoryModel) (domain.RepositoryModel, error) {
	var (
		m   domain.RepositoryModel
		err error
	)
	if m.ID, err = parseID("id", r.ID); err != nil {
		return domain.RepositoryModel{}, err
	}
	if m.RepositoryID, err = parseID("repository_id", r.RepositoryID); err != nil {
		return domain.RepositoryModel{}, err
	}
	if m.ModelID, err = parseID("model_id", r.ModelID); err != nil {
		return domain.RepositoryModel{}, err
	}
	urls, err := decodeList[downloadURLJSON]("download_urls", r.DownloadURLs)
	if err != nil {
		return domain.RepositoryModel{}, err
	}
	m.DownloadURLs = make([]domain.DownloadURL, 0, len(urls))
	for _, u := range urls {
		m.DownloadURLs = append(m.DownloadURLs, domain.DownloadURL(u))
	}
	files, err := decodeList[modelFileJSON]("files", r.Files)
	if err != nil {
		return domain.RepositoryModel{}, err
	}
	m.Files = make([]domain.ModelFile, 0, len(files))
	for _, f := range files {
		fileType, err := parseEnum("files.file_type", f.FileType, domain.ParseModelFileType)
		if err != nil {
			return domain.RepositoryModel{}, err
		}
		m.Files = append(m.Files, domain.ModelFile{
			Filename:    f.Filename,
			Size:        f.Size,
			FileType:    fileType,
			Checksum:    f.Checksum,
			Required:    f.Required,
			Description: f.Description,
		})
	}
	if m.Dependencies, err = decodeList[string]("dependencies", r.Dependencies); err != nil {
		return domain.RepositoryModel{}, err
	}
	if m.UsageExamples, err = decodeList[string]("usage_examples", r.UsageExamples); err != nil {
		return domain.RepositoryModel{}, err
	}
	m.RepoModelID = r.RepoModelID
	m.RepoPath = r.RepoPath
	m.InstallationNotes = optString(r.InstallationNotes)
	m.LicenseText = optString(r.LicenseText)
	m.ModelCard = optString(r.ModelCard)
	m.CreatedAt = r.CreatedAt
	m.UpdatedAt = r.UpdatedAt
	return m, nil
}

// SyncResultToRow converts a synchronisation outcome for storage.
func SyncResultToRow(s domain.SyncResult) (rows.SyncResult, error) {
	status, err := checkEnum("status", s.Status, domain.ParseSyncStatus)
	if err != nil {
		return rows.SyncResult{}, err
	}
	r := rows.SyncResult{
		ID:           s.ID.String(),
		RepositoryID: s.RepositoryID.String(),
		StartedAt:    s.StartedAt.UTC(),
		CompletedAt:  utcPtr(s.CompletedAt),
		Status:       status,
		ErrorMessage: s.ErrorMessage,
	}
	if r.ModelsAdded, err = u32("models_added", s.ModelsAdded); err != nil {
		return rows.SyncResult{}, err
	}
	if r.ModelsUpdated, err = u32("models_updated", s.ModelsUpdated); err != nil {
		return rows.SyncResult{}, err
	}
	if r.ModelsRemoved, err = u32("models_removed", s.ModelsRemoved); err != nil {
		return rows.SyncResult{}, err
	}
	if r.LogEntries, err = encodeList("log_entries", s.LogEntries); err != nil {
		return rows.SyncResult{}, err
	}
	return r, nil
}

// SyncResultFromRow converts a stored synchronisation outcome.
func SyncResultFromRow(r rows.SyncResult) (domain.SyncResult, error) {
	var (
		s   domain.SyncResult
		err error
	)
	if s.ID, err = parseID("id", r.ID); err != nil {
		return domain.SyncResult{}, err
	}
	if s.RepositoryID, err = parseID("repository_id", r.RepositoryID); err != nil {
		return domain.SyncResult{}, err
	}
	if s.Status, err = parseEnum("status", r.Status, domain.ParseSyncStatus); err != nil {
		return domain.SyncResult{}, err
	}
	if s.ModelsAdded, err = toU32("models_added", r.ModelsAdded); err != nil {
		return domain.SyncResult{}, err
	}
	if s.ModelsUpdated, err = toU32("models_updated", r.ModelsUpdated); err != nil {
		return domain.SyncResult{}, err
	}
	if s.ModelsRemoved, err = toU32("models_removed", r.ModelsRemoved); err != nil {
		return domain.SyncResult{}, err
	}
	if s.LogEntries, err = decodeList[string]("log_entries", r.LogEntries); err != nil {
		return domain.SyncResult{}, err
	}
	s.StartedAt = r.StartedAt
	s.CompletedAt = r.CompletedAt
	s.ErrorMessage = optString(r.ErrorMessage)
	return s, nil
}
