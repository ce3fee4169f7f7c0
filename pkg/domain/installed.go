package domain

import (
	"time"

	"github.com/google/uuid"
)

// ModelStatus describes the lifecycle state of an installed model or runtime.
// Transitions are free-form; only membership in the closed set is enforced.
type ModelStatus string

// Supported statuses.
const (
	StatusRunning     ModelStatus = "Running"
	StatusStarting    ModelStatus = "Starting"
	StatusStopping    ModelStatus = "Stopping"
	StatusStopped     ModelStatus = "Stopped"
	StatusError       ModelStatus = "Error"
	StatusDownloading ModelStatus = "Downloading"
	StatusInstalling  ModelStatus = "Installing"
)

// ModelStatuses lists every status in declaration order.
func ModelStatuses() []ModelStatus {
	return []ModelStatus{
		StatusRunning,
		StatusStarting,
		StatusStopping,
		StatusStopped,
		StatusError,
		StatusDownloading,
		StatusInstalling,
	}
}

// ParseModelStatus maps stored text back to a ModelStatus.
func ParseModelStatus(s string) (ModelStatus, bool) {
	switch ModelStatus(s) {
	case StatusRunning:
		return StatusRunning, true
	case StatusStarting:
		return StatusStarting, true
	case StatusStopping:
		return StatusStopping, true
	case StatusStopped:
		return StatusStopped, true
	case StatusError:
		return StatusError, true
	case StatusDownloading:
		return StatusDownloading, true
	case StatusInstalling:
		return StatusInstalling, true
	default:
		return "", false
	}
}

// Valid reports whether s is one of the declared statuses.
func (s ModelStatus) Valid() bool {
	_, ok := ParseModelStatus(string(s))
	return ok
}

// InstalledModel is the at-most-one local installation record of a Model.
type InstalledModel struct {
	ID          uuid.UUID
	ModelID     uuid.UUID
	InstallPath string
	InstalledAt time.Time
	Status      ModelStatus
	Port        *uint16
	ProcessID   *uint32
	LastUsed    *time.Time
	UsageCount  uint64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewInstalledModel builds a stopped installation record for modelID.
func NewInstalledModel(modelID uuid.UUID, installPath string) InstalledModel {
	now := Now()
	return InstalledModel{
		ID:          uuid.New(),
		ModelID:     modelID,
		InstallPath: installPath,
		InstalledAt: now,
		Status:      StatusStopped,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// MarkUsed bumps the usage counter and stamps the last-used time.
func (m *InstalledModel) MarkUsed() {
	now := Now()
	m.LastUsed = &now
	m.UsageCount++
	m.UpdatedAt = now
}

// SetStatus records a status change.
func (m *InstalledModel) SetStatus(status ModelStatus) {
	m.Status = status
	m.UpdatedAt = Now()
}

// ModelWithInstall pairs a model with its installation, if any.
type ModelWithInstall struct {
	Model     Model
	Installed *InstalledModel
}

// SystemRequirements describes what a host needs to run an available model.
type SystemRequirements struct {
	MinMemoryGB            float64
	RecommendedMemoryGB    float64
	MinDiskSpaceGB         float64
	RequiresGPU            bool
	SupportedOS            []string
	SupportedArchitectures []string
}

// AvailableModel is a published model that may be installed.
type AvailableModel struct {
	ID                 uuid.UUID
	ModelID            uuid.UUID
	IsInstalled        bool
	PublishedAt        time.Time
	LastUpdated        time.Time
	SystemRequirements SystemRequirements
}
