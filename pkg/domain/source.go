package domain

import (
	"time"

	"github.com/google/uuid"
)

// SourceType identifies the protocol of a remote model repository.
type SourceType string

// Remote repository types.
const (
	SourceHuggingFace SourceType = "HuggingFace"
	SourceModelScope  SourceType = "ModelScope"
	SourceOllama      SourceType = "Ollama"
	SourceGit         SourceType = "Git"
	SourceHTTP        SourceType = "Http"
	SourceLocal       SourceType = "Local"
	SourceCustom      SourceType = "Custom"
)

// SourceTypes lists all remote repository types.
func SourceTypes() []SourceType {
	return []SourceType{SourceHuggingFace, SourceModelScope, SourceOllama, SourceGit, SourceHTTP, SourceLocal, SourceCustom}
}

// ParseSourceType maps stored text back to a SourceType.
func ParseSourceType(s string) (SourceType, bool) { return parseEnum(s, SourceTypes()) }

// SyncStatus is the outcome of the latest synchronisation with a source.
type SyncStatus string

// Sync statuses.
const (
	SyncNever   SyncStatus = "Never"
	SyncRunning SyncStatus = "Syncing"
	SyncSuccess SyncStatus = "Success"
	SyncFailed  SyncStatus = "Failed"
	SyncPartial SyncStatus = "Partial"
)

// SyncStatuses lists all sync statuses.
func SyncStatuses() []SyncStatus {
	return []SyncStatus{SyncNever, SyncRunning, SyncSuccess, SyncFailed, SyncPartial}
}

// ParseSyncStatus maps stored text back to a SyncStatus.
func ParseSyncStatus(s string) (SyncStatus, bool) { return parseEnum(s, SyncStatuses()) }

// AuthType selects how credentials are presented to a source.
type AuthType string

// Auth types.
const (
	AuthNone   AuthType = "None"
	AuthToken  AuthType = "Token"
	AuthAPIKey AuthType = "ApiKey"
	AuthBasic  AuthType = "Basic"
	AuthOAuth  AuthType = "OAuth"
)

// AuthTypes lists all auth types.
func AuthTypes() []AuthType { return []AuthType{AuthNone, AuthToken, AuthAPIKey, AuthBasic, AuthOAuth} }

// ParseAuthType maps stored text back to an AuthType.
func ParseAuthType(s string) (AuthType, bool) { return parseEnum(s, AuthTypes()) }

// SourceAuth carries credentials for a source.
type SourceAuth struct {
	AuthType    AuthType
	Username    *string
	Token       *string
	APIKey      *string
	ExtraParams map[string]string
}

// Source is a remote model repository the registry synchronises from.
type Source struct {
	ID          uuid.UUID
	Name        string
	URL         string
	Type        SourceType
	Enabled     bool
	Auth        *SourceAuth
	LastSync    *time.Time
	SyncStatus  SyncStatus
	Description *string
	Tags        []string
	Priority    int32
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ModelFileType classifies files shipped with a repository model.
type ModelFileType string

// Model file types.
const (
	FileWeights   ModelFileType = "Weights"
	FileConfig    ModelFileType = "Config"
	FileTokenizer ModelFileType = "Tokenizer"
	FileVocab     ModelFileType = "Vocabulary"
	FileReadme    ModelFileType = "Readme"
	FileLicense   ModelFileType = "License"
	FileOther     ModelFileType = "Other"
)

// ModelFileTypes lists all model file types.
func ModelFileTypes() []ModelFileType {
	return []ModelFileType{FileWeights, FileConfig, FileTokenizer, FileVocab, FileReadme, FileLicense, FileOther}
}

// ParseModelFileType maps stored text back to a ModelFileType.
func ParseModelFileType(s string) (ModelFileType, bool) { return parseEnum(s, ModelFileTypes()) }

// DownloadURL is one downloadable artifact of a repository model.
type DownloadURL struct {
	Filename          string
	URL               string
	Size              uint64
	Checksum          *string
	ChecksumAlgorithm *string
	IsPrimary         bool
}

// ModelFile describes a file belonging to a repository model.
type ModelFile struct {
	Filename    string
	Size        uint64
	FileType    ModelFileType
	Checksum    *string
	Required    bool
	Description *string
}

// RepositoryModel links a registry model to its listing in a source.
type RepositoryModel struct {
	ID                uuid.UUID
	RepositoryID      uuid.UUID
	ModelID           uuid.UUID
	RepoModelID       string
	RepoPath          string
	DownloadURLs      []DownloadURL
	Files             []ModelFile
	Dependencies      []string
	InstallationNotes *string
	UsageExamples     []string
	LicenseText       *string
	ModelCard         *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// SyncResult records one synchronisation run against a source.
type SyncResult struct {
	ID            uuid.UUID
	RepositoryID  uuid.UUID
	StartedAt     time.Time
	CompletedAt   *time.Time
	Status        SyncStatus
	ModelsAdded   uint32
	ModelsUpdated uint32
	ModelsRemoved uint32
	ErrorMessage  *string
	LogEntries    []string
}
