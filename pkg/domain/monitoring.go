package domain

import (
	"time"

	"github.com/google/uuid"
)

// HealthStatus summarises application health.
type HealthStatus string

// Health statuses.
const (
	HealthHealthy   HealthStatus = "Healthy"
	HealthDegraded  HealthStatus = "Degraded"
	HealthUnhealthy HealthStatus = "Unhealthy"
	HealthUnknown   HealthStatus = "Unknown"
)

// HealthStatuses lists all health statuses.
func HealthStatuses() []HealthStatus {
	return []HealthStatus{HealthHealthy, HealthDegraded, HealthUnhealthy, HealthUnknown}
}

// ParseHealthStatus maps stored text back to a HealthStatus.
func ParseHealthStatus(s string) (HealthStatus, bool) { return parseEnum(s, HealthStatuses()) }

// SystemMetrics is a host resource sample.
type SystemMetrics struct {
	ID                   uuid.UUID
	Timestamp            time.Time
	CPUUsagePercent      float64
	CPUCores             uint32
	MemoryTotalBytes     uint64
	MemoryUsedBytes      uint64
	MemoryUsagePercent   float64
	DiskTotalBytes       uint64
	DiskUsedBytes        uint64
	DiskUsagePercent     float64
	NetworkRxBytesPerSec uint64
	NetworkTxBytesPerSec uint64
	GPUUsagePercent      *float64
	GPUMemoryUsageMB     *uint64
	Load1m               float64
	Load5m               float64
	Load15m              float64
}

// ApplicationMetrics is a request-level sample of the serving application.
type ApplicationMetrics struct {
	ID                 uuid.UUID
	Timestamp          time.Time
	UptimeSeconds      uint64
	TotalRequests      uint64
	SuccessfulRequests uint64
	FailedRequests     uint64
	ActiveConnections  uint32
	AvgResponseTimeMS  float64
	P95ResponseTimeMS  float64
	P99ResponseTimeMS  float64
	CurrentQPS         float64
	PeakQPS            float64
	ErrorRatePercent   float64
	HealthStatus       HealthStatus
}

// ModelMetrics is a per-model inference sample.
type ModelMetrics struct {
	ID                  uuid.UUID
	ModelID             uuid.UUID
	RuntimeID           *uuid.UUID
	Timestamp           time.Time
	Status              ModelStatus
	TotalRequests       uint64
	SuccessfulRequests  uint64
	FailedRequests      uint64
	AvgInferenceTimeMS  float64
	TokensPerSecond     float64
	MemoryUsageBytes    uint64
	GPUMemoryUsageBytes *uint64
	CPUUsagePercent     float64
	GPUUsagePercent     *float64
	QueueLength         uint32
	LastRequestTime     *time.Time
}

// AlertType classifies alerts.
type AlertType string

// Alert types.
const (
	AlertCPU          AlertType = "Cpu"
	AlertMemory       AlertType = "Memory"
	AlertDisk         AlertType = "Disk"
	AlertGPU          AlertType = "Gpu"
	AlertModelError   AlertType = "ModelError"
	AlertResponseTime AlertType = "ResponseTime"
	AlertErrorRate    AlertType = "ErrorRate"
	AlertCustom       AlertType = "Custom"
)

// AlertTypes lists all alert types.
func AlertTypes() []AlertType {
	return []AlertType{AlertCPU, AlertMemory, AlertDisk, AlertGPU, AlertModelError, AlertResponseTime, AlertErrorRate, AlertCustom}
}

// ParseAlertType maps stored text back to an AlertType.
func ParseAlertType(s string) (AlertType, bool) { return parseEnum(s, AlertTypes()) }

// AlertSeverity grades alerts.
type AlertSeverity string

// Alert severities.
const (
	AlertInfo     AlertSeverity = "Info"
	AlertWarning  AlertSeverity = "Warning"
	AlertCritical AlertSeverity = "Critical"
)

// AlertSeverities lists all alert severities.
func AlertSeverities() []AlertSeverity { return []AlertSeverity{AlertInfo, AlertWarning, AlertCritical} }

// ParseAlertSeverity maps stored text back to an AlertSeverity.
func ParseAlertSeverity(s string) (AlertSeverity, bool) { return parseEnum(s, AlertSeverities()) }

// AlertStatus tracks alert handling.
type AlertStatus string

// Alert statuses.
const (
	AlertActive       AlertStatus = "Active"
	AlertAcknowledged AlertStatus = "Acknowledged"
	AlertResolved     AlertStatus = "Resolved"
)

// AlertStatuses lists all alert statuses.
func AlertStatuses() []AlertStatus { return []AlertStatus{AlertActive, AlertAcknowledged, AlertResolved} }

// ParseAlertStatus maps stored text back to an AlertStatus.
func ParseAlertStatus(s string) (AlertStatus, bool) { return parseEnum(s, AlertStatuses()) }

// AlertEvent is a threshold breach raised against a resource.
type AlertEvent struct {
	ID           uuid.UUID
	AlertType    AlertType
	Severity     AlertSeverity
	Title        string
	Description  string
	TriggeredAt  time.Time
	ResolvedAt   *time.Time
	Status       AlertStatus
	ResourceType string
	ResourceID   string
	ResourceName string
	Value        float64
	Threshold    float64
	Labels       map[string]string
	Metadata     map[string]string
}

// GlobalConfig is a versioned snapshot of application-wide settings.
type GlobalConfig struct {
	ID        uuid.UUID
	Version   string
	Data      map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}
