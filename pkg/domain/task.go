package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the state of a queued background task.
type TaskStatus string

// Task statuses.
const (
	TaskPending   TaskStatus = "Pending"
	TaskRunning   TaskStatus = "Running"
	TaskCompleted TaskStatus = "Completed"
	TaskFailed    TaskStatus = "Failed"
)

// TaskStatuses lists all task statuses.
func TaskStatuses() []TaskStatus {
	return []TaskStatus{TaskPending, TaskRunning, TaskCompleted, TaskFailed}
}

// ParseTaskStatus maps stored text back to a TaskStatus.
func ParseTaskStatus(s string) (TaskStatus, bool) { return parseEnum(s, TaskStatuses()) }

// Task is a queued unit of background work with a structured payload.
type Task struct {
	ID           uuid.UUID
	TaskType     string
	Payload      map[string]any
	Status       TaskStatus
	Priority     int32
	CreatedAt    time.Time
	StartedAt    *time.Time
	CompletedAt  *time.Time
	ErrorMessage *string
	RetryCount   uint32
	MaxRetries   uint32
	ScheduledAt  *time.Time
}

// NewTask builds a pending task.
func NewTask(taskType string, payload map[string]any, priority int32) Task {
	if payload == nil {
		payload = map[string]any{}
	}
	return Task{
		ID:         uuid.New(),
		TaskType:   taskType,
		Payload:    payload,
		Status:     TaskPending,
		Priority:   priority,
		CreatedAt:  Now(),
		MaxRetries: 3,
	}
}

// DownloadStatus is the state of a model download.
type DownloadStatus string

// Download statuses.
const (
	DownloadPending     DownloadStatus = "Pending"
	DownloadDownloading DownloadStatus = "Downloading"
	DownloadCompleted   DownloadStatus = "Completed"
	DownloadFailed      DownloadStatus = "Failed"
	DownloadPaused      DownloadStatus = "Paused"
)

// DownloadStatuses lists all download statuses.
func DownloadStatuses() []DownloadStatus {
	return []DownloadStatus{DownloadPending, DownloadDownloading, DownloadCompleted, DownloadFailed, DownloadPaused}
}

// ParseDownloadStatus maps stored text back to a DownloadStatus.
func ParseDownloadStatus(s string) (DownloadStatus, bool) { return parseEnum(s, DownloadStatuses()) }

// DownloadTask tracks fetching a model artifact.
type DownloadTask struct {
	ID                     uuid.UUID
	ModelID                uuid.UUID
	URL                    string
	FilePath               string
	TotalSize              uint64
	DownloadedSize         uint64
	Status                 DownloadStatus
	ProgressPercent        float64
	DownloadSpeedBPS       uint64
	EstimatedTimeRemaining *uint32
	CreatedAt              time.Time
	StartedAt              *time.Time
	CompletedAt            *time.Time
	ErrorMessage           *string
}
