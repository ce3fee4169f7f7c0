package rows

import "time"

// RuntimeConfig mirrors the runtime_configs table.
type RuntimeConfig struct {
	ID                    string
	Name                  string
	MaxContextLength      *int32
	Temperature           *float64
	TopP                  *float64
	TopK                  *int32
	MaxTokens             *int32
	StopSequences         string
	BatchSize             *int32
	MaxConcurrentRequests *int32
	GPUDeviceIDs          string
	MemoryLimitMB         *int64
	EnableStreaming       bool
	CustomParams          string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// RuntimeConfigTable lists the runtime_configs columns in field order.
var RuntimeConfigTable = Table{
	Name: "runtime_configs",
	Columns: []string{
		"id", "name", "max_context_length", "temperature", "top_p", "top_k",
		"max_tokens", "stop_sequences", "batch_size", "max_concurrent_requests",
		"gpu_device_ids", "memory_limit_mb", "enable_streaming", "custom_params",
		"created_at", "updated_at",
	},
}

// Scan reads one row selected with RuntimeConfigTable's column list.
func (r *RuntimeConfig) Scan(s Scanner) error {
	return s.Scan(
		&r.ID, &r.Name, &r.MaxContextLength, &r.Temperature, &r.TopP, &r.TopK,
		&r.MaxTokens, &r.StopSequences, &r.BatchSize, &r.MaxConcurrentRequests,
		&r.GPUDeviceIDs, &r.MemoryLimitMB, &r.EnableStreaming, &r.CustomParams,
		Time(&r.CreatedAt), Time(&r.UpdatedAt),
	)
}

// Args returns the statement arguments in column order.
func (r *RuntimeConfig) Args() []any {
	return []any{
		r.ID, r.Name, r.MaxContextLength, r.Temperature, r.TopP, r.TopK,
		r.MaxTokens, r.StopSequences, r.BatchSize, r.MaxConcurrentRequests,
		r.GPUDeviceIDs, r.MemoryLimitMB, r.EnableStreaming, r.CustomParams,
		r.CreatedAt, r.UpdatedAt,
	}
}

// ModelRuntime mirrors the model_runtimes table.
type ModelRuntime struct {
	ID              string
	ModelID         string
	RuntimeConfigID string
	Name            string
	Port            int32
	ProcessID       *int32
	StartedAt       *time.Time
	StoppedAt       *time.Time
	Status          string
	HealthEndpoint  string
	APIEndpoint     string
	LogFile         *string
	Environment     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ModelRuntimeTable lists the model_runtimes columns in field order.
var ModelRuntimeTable = Table{
	Name: "model_runtimes",
	Columns: []string{
		"id", "model_id", "runtime_config_id", "name", "port", "process_id",
		"started_at", "stopped_at", "status", "health_endpoint", "api_endpoint",
		"log_file", "environment", "created_at", "updated_at",
	},
}

// Scan reads one row selected with ModelRuntimeTable's column list.
func (r *ModelRuntime) Scan(s Scanner) error {
	return s.Scan(
		&r.ID, &r.ModelID, &r.RuntimeConfigID, &r.Name, &r.Port, &r.ProcessID,
		NullTime(&r.StartedAt), NullTime(&r.StoppedAt), &r.Status, &r.HealthEndpoint, &r.APIEndpoint,
		&r.LogFile, &r.Environment, Time(&r.CreatedAt), Time(&r.UpdatedAt),
	)
}

// Args returns the statement arguments in column order.
func (r *ModelRuntime) Args() []any {
	return []any{
		r.ID, r.ModelID, r.RuntimeConfigID, r.Name, r.Port, r.ProcessID,
		TimeArg(r.StartedAt), TimeArg(r.StoppedAt), r.Status, r.HealthEndpoint, r.APIEndpoint,
		r.LogFile, r.Environment, r.CreatedAt, r.UpdatedAt,
	}
}

// RuntimeMetrics mirrors the runtime_metrics table.
type RuntimeMetrics struct {
	ID                 string
	RuntimeID          string
	Timestamp          time.Time
	CPUUsagePercent    float64
	MemoryUsageMB      int64
	GPUUsagePercent    *float64
	GPUMemoryUsageMB   *int64
	ActiveConnections  int32
	TotalRequests      int64
	SuccessfulRequests int64
	FailedRequests     int64
	AvgResponseTimeMS  float64
	ThroughputRPS      float64
	QueueLength        int32
}

// RuntimeMetricsTable lists the runtime_metrics columns in field order.
var RuntimeMetricsTable = Table{
	Name: "runtime_metrics",
	Columns: []string{
		"id", "runtime_id", "timestamp", "cpu_usage_percent", "memory_usage_mb",
		"gpu_usage_percent", "gpu_memory_usage_mb", "active_connections",
		"total_requests", "successful_requests", "failed_requests",
		"avg_response_time_ms", "throughput_rps", "queue_length",
	},
}

// Scan reads one row selected with RuntimeMetricsTable's column list.
func (r *RuntimeMetrics) Scan(s Scanner) error {
	return s.Scan(
		&r.ID, &r.RuntimeID, Time(&r.Timestamp), &r.CPUUsagePercent, &r.MemoryUsageMB,
		&r.GPUUsagePercent, &r.GPUMemoryUsageMB, &r.ActiveConnections,
		&r.TotalRequests, &r.SuccessfulRequests, &r.FailedRequests,
		&r.AvgResponseTimeMS, &r.ThroughputRPS, &r.QueueLength,
	)
}

// Args returns the statement arguments in column order.
func (r *RuntimeMetrics) Args() []any {
	return []any{
		r.ID, r.RuntimeID, r.Timestamp, r.CPUUsagePercent, r.MemoryUsageMB,
		r.GPUUsagePercent, r.GPUMemoryUsageMB, r.ActiveConnections,
		r.TotalRequests, r.SuccessfulRequests, r.FailedRequests,
		r.AvgResponseTimeMS, r.ThroughputRPS, r.QueueLength,
	}
}

// RuntimeEvent mirrors the runtime_events table.
type RuntimeEvent struct {
	ID        string
	RuntimeID string
	EventType string
	Timestamp time.Time
	Message   string
	Details   *string
	Severity  string
}

// RuntimeEventTable lists the runtime_events columns in field order.
var RuntimeEventTable = Table{
	Name:    "runtime_events",
	Columns: []string{"id", "runtime_id", "event_type", "timestamp", "message", "details", "severity"},
}

// Scan reads one row selected with RuntimeEventTable's column list.
func (r *RuntimeEvent) Scan(s Scanner) error {
	return s.Scan(&r.ID, &r.RuntimeID, &r.EventType, Time(&r.Timestamp), &r.Message, &r.Details, &r.Severity)
}

// Args returns the statement arguments in column order.
func (r *RuntimeEvent) Args() []any {
	return []any{r.ID, r.RuntimeID, r.EventType, r.Timestamp, r.Message, r.Details, r.Severity}
}
