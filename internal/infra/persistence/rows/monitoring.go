package rows

import "time"

// GlobalConfig mirrors the global_configs table.
type GlobalConfig struct {
	ID         string
	Version    string
	ConfigData string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// GlobalConfigTable lists the global_configs columns in field order.
var GlobalConfigTable = Table{
	Name:    "global_configs",
	Columns: []string{"id", "version", "config_data", "created_at", "updated_at"},
}

// Scan reads one row selected with GlobalConfigTable's column list.
func (r *GlobalConfig) Scan(s Scanner) error {
	return s.Scan(&r.ID, &r.Version, &r.ConfigData, Time(&r.CreatedAt), Time(&r.UpdatedAt))
}

// Args returns the statement arguments in column order.
func (r *GlobalConfig) Args() []any {
	return []any{r.ID, r.Version, r.ConfigData, r.CreatedAt, r.UpdatedAt}
}

// SystemMetrics mirrors the system_metrics table.
type SystemMetrics struct {
	ID                   string
	Timestamp            time.Time
	CPUUsagePercent      float64
	CPUCores             int32
	MemoryTotalBytes     int64
	MemoryUsedBytes      int64
	MemoryUsagePercent   float64
	DiskTotalBytes       int64
	DiskUsedBytes        int64
	DiskUsagePercent     float64
	NetworkRxBytesPerSec int64
	NetworkTxBytesPerSec int64
	GPUUsagePercent      *float64
	GPUMemoryUsageMB     *int64
	Load1m               float64
	Load5m               float64
	Load15m              float64
}

// SystemMetricsTable lists the system_metrics columns in field order.
var SystemMetricsTable = Table{
	Name: "system_metrics",
	Columns: []string{
		"id", "timestamp", "cpu_usage_percent", "cpu_cores", "memory_total_bytes",
		"memory_used_bytes", "memory_usage_percent", "disk_total_bytes", "disk_used_bytes",
		"disk_usage_percent", "network_rx_bytes_per_sec", "network_tx_bytes_per_sec",
		"gpu_usage_percent", "gpu_memory_usage_mb", "load_1m", "load_5m", "load_15m",
	},
}

// Scan reads one row selected with SystemMetricsTable's column list.
func (r *SystemMetrics) Scan(s Scanner) error {
	return s.Scan(
		&r.ID, Time(&r.Timestamp), &r.CPUUsagePercent, &r.CPUCores, &r.MemoryTotalBytes,
		&r.MemoryUsedBytes, &r.MemoryUsagePercent, &r.DiskTotalBytes, &r.DiskUsedBytes,
		&r.DiskUsagePercent, &r.NetworkRxBytesPerSec, &r.NetworkTxBytesPerSec,
		&r.GPUUsagePercent, &r.GPUMemoryUsageMB, &r.Load1m, &r.Load5m, &r.Load15m,
	)
}

// Args returns the statement arguments in column order.
func (r *SystemMetrics) Args() []any {
	return []any{
		r.ID, r.Timestamp, r.CPUUsagePercent, r.CPUCores, r.MemoryTotalBytes,
		r.MemoryUsedBytes, r.MemoryUsagePercent, r.DiskTotalBytes, r.DiskUsedBytes,
		r.DiskUsagePercent, r.NetworkRxBytesPerSec, r.NetworkTxBytesPerSec,
		r.GPUUsagePercent, r.GPUMemoryUsageMB, r.Load1m, r.Load5m, r.Load15m,
	}
}

// ApplicationMetrics mirrors the application_metrics table.
type ApplicationMetrics struct {
	ID                 string
	Timestamp          time.Time
	UptimeSeconds      int64
	TotalRequests      int64
	SuccessfulRequests int64
	FailedRequests     int64
	ActiveConnections  int32
	AvgResponseTimeMS  float64
	P95ResponseTimeMS  float64
	P99ResponseTimeMS  float64
	CurrentQPS         float64
	PeakQPS            float64
	ErrorRatePercent   float64
	HealthStatus       string
}

// ApplicationMetricsTable lists the application_metrics columns in field order.
var ApplicationMetricsTable = Table{
	Name: "application_metrics",
	Columns: []string{
		"id", "timestamp", "uptime_seconds", "total_requests", "successful_requests",
		"failed_requests", "active_connections", "avg_response_time_ms",
		"p95_response_time_ms", "p99_response_time_ms", "current_qps", "peak_qps",
		"error_rate_percent", "health_status",
	},
}

// Scan reads one row selected with ApplicationMetricsTable's column list.
func (r *ApplicationMetrics) Scan(s Scanner) error {
	return s.Scan(
		&r.ID, Time(&r.Timestamp), &r.UptimeSeconds, &r.TotalRequests, &r.SuccessfulRequests,
		&r.FailedRequests, &r.ActiveConnections, &r.AvgResponseTimeMS,
		&r.P95ResponseTimeMS, &r.P99ResponseTimeMS, &r.CurrentQPS, &r.PeakQPS,
		&r.ErrorRatePercent, &r.HealthStatus,
	)
}

// Args returns the statement arguments in column order.
func (r *ApplicationMetrics) Args() []any {
	return []any{
		r.ID, r.Timestamp, r.UptimeSeconds, r.TotalRequests, r.SuccessfulRequests,
		r.FailedRequests, r.ActiveConnections, r.AvgResponseTimeMS,
		r.P95ResponseTimeMS, r.P99ResponseTimeMS, r.CurrentQPS, r.PeakQPS,
		r.ErrorRatePercent, r.HealthStatus,
	}
}

// ModelMetrics mirrors the model_metrics table.
type ModelMetrics struct {
	ID                  string
	ModelID             string
	RuntimeID           *string
	Timestamp           time.Time
	Status              string
	TotalRequests       int64
	SuccessfulRequests  int64
	FailedRequests      int64
	AvgInferenceTimeMS  float64
	TokensPerSecond     float64
	MemoryUsageBytes    int64
	GPUMemoryUsageBytes *int64
	CPUUsagePercent     float64
	GPUUsagePercent     *float64
	QueueLength         int32
	LastRequestTime     *time.Time
}

// ModelMetricsTable lists the model_metrics columns in field order.
var ModelMetricsTable = Table{
	Name: "model_metrics",
	Columns: []string{
		"id", "model_id", "runtime_id", "timestamp", "status", "total_requests",
		"successful_requests", "failed_requests", "avg_inference_time_ms",
		"tokens_per_second", "memory_usage_bytes", "gpu_memory_usage_bytes",
		"cpu_usage_percent", "gpu_usage_percent", "queue_length", "last_request_time",
	},
}

// Scan reads one row selected with ModelMetricsTable's column list.
func (r *ModelMetrics) Scan(s Scanner) error {
	return s.Scan(
		&r.ID, &r.ModelID, &r.RuntimeID, Time(&r.Timestamp), &r.Status, &r.TotalRequests,
		&r.SuccessfulRequests, &r.FailedRequests, &r.AvgInferenceTimeMS,
		&r.TokensPerSecond, &r.MemoryUsageBytes, &r.GPUMemoryUsageBytes,
		&r.CPUUsagePercent, &r.GPUUsagePercent, &r.QueueLength, NullTime(&r.LastRequestTime),
	)
}

// Args returns the statement arguments in column order.
func (r *ModelMetrics) Args() []any {
	return []any{
		r.ID, r.ModelID, r.RuntimeID, r.Timestamp, r.Status, r.TotalRequests,
		r.SuccessfulRequests, r.FailedRequests, r.AvgInferenceTimeMS,
		r.TokensPerSecond, r.MemoryUsageBytes, r.GPUMemoryUsageBytes,
		r.CPUUsagePercent, r.GPUUsagePercent, r.QueueLength, TimeArg(r.LastRequestTime),
	}
}

// AlertEvent mirrors the alert_events table.
type AlertEvent struct {
	ID           string
	AlertType    string
	Severity     string
	Title        string
	Description  string
	TriggeredAt  time.Time
	ResolvedAt   *time.Time
	Status       string
	ResourceType string
	ResourceID   string
	ResourceName string
	Value        float64
	Threshold    float64
	Labels       string
	Metadata     string
}

// AlertEventTable lists the alert_events columns in field order.
var AlertEventTable = Table{
	Name: "alert_events",
	Columns: []string{
		"id", "alert_type", "severity", "title", "description", "triggered_at",
		"resolved_at", "status", "resource_type", "resource_id", "resource_name",
		"value", "threshold", "labels", "metadata",
	},
}

// Scan reads one row selected with AlertEventTable's column list.
func (r *AlertEvent) Scan(s Scanner) error {
	return s.Scan(
		&r.ID, &r.AlertType, &r.Severity, &r.Title, &r.Description, Time(&r.TriggeredAt),
		NullTime(&r.ResolvedAt), &r.Status, &r.ResourceType, &r.ResourceID, &r.ResourceName,
		&r.Value, &r.Threshold, &r.Labels, &r.Metadata,
	)
}

// Args returns the statement arguments in column order.
func (r *AlertEvent) Args() []any {
	return []any{
		r.ID, r.AlertType, r.Severity, r.Title, r.Description, r.TriggeredAt,
		TimeArg(r.ResolvedAt), r.Status, r.ResourceType, r.ResourceID, r.ResourceName,
		r.Value, r.Threshold, r.Labels, r.Metadata,
	}
}
