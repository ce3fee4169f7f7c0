package domain

import (
	"time"

	"github.com/google/uuid"
)

// RuntimeConfig holds inference parameters shared by one or more runtimes.
type RuntimeConfig struct {
	ID                    uuid.UUID
	Name                  string
	MaxContextLength      *uint32
	Temperature           *float64
	TopP                  *float64
	TopK                  *uint32
	MaxTokens             *uint32
	StopSequences         []string
	BatchSize             *uint32
	MaxConcurrentRequests *uint32
	GPUDeviceIDs          []uint32
	MemoryLimitMB         *uint64
	EnableStreaming       bool
	CustomParams          map[string]any
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// ModelRuntime is a running (or runnable) serving process for a model.
type ModelRuntime struct {
	ID              uuid.UUID
	ModelID         uuid.UUID
	RuntimeConfigID uuid.UUID
	Name            string
	Port            uint16
	ProcessID       *uint32
	StartedAt       *time.Time
	StoppedAt       *time.Time
	Status          ModelStatus
	HealthEndpoint  string
	APIEndpoint     string
	LogFile         *string
	Environment     map[string]string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RuntimeMetrics is a point-in-time sample for a runtime.
type RuntimeMetrics struct {
	ID                 uuid.UUID
	RuntimeID          uuid.UUID
	Timestamp          time.Time
	CPUUsagePercent    float64
	MemoryUsageMB      uint64
	GPUUsagePercent    *float64
	GPUMemoryUsageMB   *uint64
	ActiveConnections  uint32
	TotalRequests      uint64
	SuccessfulRequests uint64
	FailedRequests     uint64
	AvgResponseTimeMS  float64
	ThroughputRPS      float64
	QueueLength        uint32
}

// RuntimeEventType classifies runtime lifecycle events.
type RuntimeEventType string

// Runtime event types.
const (
	EventStarted           RuntimeEventType = "Started"
	EventStopped           RuntimeEventType = "Stopped"
	EventRestarted         RuntimeEventType = "Restarted"
	EventCrashed           RuntimeEventType = "Crashed"
	EventHealthCheckFailed RuntimeEventType = "HealthCheckFailed"
	EventConfigUpdated     RuntimeEventType = "ConfigUpdated"
	EventResourceWarning   RuntimeEventType = "ResourceWarning"
)

// RuntimeEventTypes lists all runtime event types.
func RuntimeEventTypes() []RuntimeEventType {
	return []RuntimeEventType{
		EventStarted, EventStopped, EventRestarted, EventCrashed,
		EventHealthCheckFailed, EventConfigUpdated, EventResourceWarning,
	}
}

// ParseRuntimeEventType maps stored text back to a RuntimeEventType.
func ParseRuntimeEventType(s string) (RuntimeEventType, bool) {
	return parseEnum(s, RuntimeEventTypes())
}

// EventSeverity grades runtime events.
type EventSeverity string

// Event severities.
const (
	SeverityInfo     EventSeverity = "Info"
	SeverityWarning  EventSeverity = "Warning"
	SeverityError    EventSeverity = "Error"
	SeverityCritical EventSeverity = "Critical"
)

// EventSeverities lists all severities, least severe first.
func EventSeverities() []EventSeverity {
	return []EventSeverity{SeverityInfo, SeverityWarning, SeverityError, SeverityCritical}
}

// ParseEventSeverity maps stored text back to an EventSeverity.
func ParseEventSeverity(s string) (EventSeverity, bool) {
	return parseEnum(s, EventSeverities())
}

// RuntimeEvent is an entry in a runtime's event log. Details is optional
// structured context.
type RuntimeEvent struct {
	ID        uuid.UUID
	RuntimeID uuid.UUID
	EventType RuntimeEventType
	Timestamp time.Time
	Message   string
	Details   map[string]any
	Severity  EventSeverity
}
