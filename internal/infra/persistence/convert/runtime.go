package convert

import (
	"modelregistry/internal/infra/persistence/rows"
	"modelregistry/pkg/domain"
)

// RuntimeConfigToRow converts a runtime configuration for storage.
func RuntimeConfigToRow(c domain.RuntimeConfig) (rows.RuntimeConfig, error) {
	var (
		r   rows.RuntimeConfig
		err error
	)
	r.ID = c.ID.String()
	r.Name = c.Name
	r.Temperature = c.Temperature
	r.TopP = c.TopP
	r.EnableStreaming = c.EnableStreaming
	r.CreatedAt = c.CreatedAt.UTC()
	r.UpdatedAt = c.UpdatedAt.UTC()
	if r.MaxContextLength, err = optU32("max_context_length", c.MaxContextLength); err != nil {
		return rows.RuntimeConfig{}, err
	}
	if r.TopK, err = optU32("top_k", c.TopK); err != nil {
		return rows.RuntimeConfig{}, err
	}
	if r.MaxTokens, err = optU32("max_tokens", c.MaxTokens); err != nil {
		return rows.RuntimeConfig{}, err
	}
	if r.BatchSize, err = optU32("batch_size", c.BatchSize); err != nil {
		return rows.RuntimeConfig{}, err
	}
	if r.MaxConcurrentRequests, err = optU32("max_concurrent_requests", c.MaxConcurrentRequests); err != nil {
		return rows.RuntimeConfig{}, err
	}
	if r.MemoryLimitMB, err = optU64("memory_limit_mb", c.MemoryLimitMB); err != nil {
		return rows.RuntimeConfig{}, err
	}
	if r.StopSequences, err = encodeList("stop_sequences", c.StopSequences); err != nil {
		return rows.RuntimeConfig{}, err
	}
	if r.GPUDeviceIDs, err = encodeList("gpu_device_ids", c.GPUDeviceIDs); err != nil {
		return rows.RuntimeConfig{}, err
	}
	if r.CustomParams, err = encodeMap("custom_params", c.CustomParams); err != nil {
		return rows.RuntimeConfig{}, err
	}
	return r, nil
}

// RuntimeConfigFromRow converts a stored runtime configuration.
func RuntimeConfigFromRow(r rows.RuntimeConfig) (domain.RuntimeConfig, error) {
	var (
		c   domain.RuntimeConfig
		err error
	)
	if c.ID, err = parseID("id", r.ID); err != nil {
		return domain.RuntimeConfig{}, err
	}
	c.Name = r.Name
	c.Temperature = r.Temperature
	c.TopP = r.TopP
	c.EnableStreaming = r.EnableStreaming
	c.CreatedAt = r.CreatedAt
	c.UpdatedAt = r.UpdatedAt
	if c.MaxContextLength, err = toOptU32("max_context_length", r.MaxContextLength); err != nil {
		return domain.RuntimeConfig{}, err
	}
	if c.TopK, err = toOptU32("top_k", r.TopK); err != nil {
		return domain.RuntimeConfig{}, err
	}
	if c.MaxTokens, err = toOptU32("max_tokens", r.MaxTokens); err != nil {
		return domain.RuntimeConfig{}, err
	}
	if c.BatchSize, err = toOptU32("batch_size", r.BatchSize); err != nil {
		return domain.RuntimeConfig{}, err
	}
	if c.MaxConcurrentRequests, err = toOptU32("max_concurrent_requests", r.MaxConcurrentRequests); err != nil {
		return domain.RuntimeConfig{}, err
	}
	if c.MemoryLimitMB, err = toOptU64("memory_limit_mb", r.MemoryLimitMB); err != nil {
		return domain.RuntimeConfig{}, err
	}
	if c.StopSequences, err = decodeList[string]("stop_sequences", r.StopSequences); err != nil {
		return domain.RuntimeConfig{}, err
	}
	if c.GPUDeviceIDs, err = decodeList[uint32]("gpu_device_ids", r.GPUDeviceIDs); err != nil {
		return domain.RuntimeConfig{}, err
	}
	if c.CustomParams, err = decodeMap[any]("custom_params", r.CustomParams); err != nil {
		return domain.RuntimeConfig{}, err
	}
	return c, nil
}

// RuntimeToRow converts a model runtime for storage.
func RuntimeToRow(m domain.ModelRuntime) (rows.ModelRuntime, error) {
	status, err := checkEnum("status", m.Status, domain.ParseModelStatus)
	if err != nil {
		return rows.ModelRuntime{}, err
	}
	processID, err := optU32("process_id", m.ProcessID)
	if err != nil {
		return rows.ModelRuntime{}, err
	}
	env, err := encodeMap("environment", m.Environment)
	if err != nil {
		return rows.ModelRuntime{}, err
	}
	return rows.ModelRuntime{
		ID:              m.ID.String(),
		ModelID:         m.ModelID.String(),
		RuntimeConfigID: m.RuntimeConfigID.String(),
		Name:            m.Name,
		Port:            int32(m.Port),
		ProcessID:       processID,
		StartedAt:       utcPtr(m.StartedAt),
		StoppedAt:       utcPtr(m.StoppedAt),
		Status:          status,
		HealthEndpoint:  m.HealthEndpoint,
		APIEndpoint:     m.APIEndpoint,
		LogFile:         m.LogFile,
		Environment:     env,
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}, nil
}

// RuntimeFromRow converts a stored model runtime.
func RuntimeFromRow(r rows.ModelRuntime) (domain.ModelRuntime, error) {
	var (
		m   domain.ModelRuntime
		err error
	)
	if m.ID, err = parseID("id", r.ID); err != nil {
		return domain.ModelRuntime{}, err
	}
	if m.ModelID, err = parseID("model_id", r.ModelID); err != nil {
		return domain.ModelRuntime{}, err
	}
	if m.RuntimeConfigID, err = parseID("runtime_config_id", r.RuntimeConfigID); err != nil {
		return domain.ModelRuntime{}, err
	}
	if m.Port, err = toU16("port", r.Port); err != nil {
		return domain.ModelRuntime{}, err
	}
	if m.ProcessID, err = toOptU32("process_id", r.ProcessID); err != nil {
		return domain.ModelRuntime{}, err
	}
	if m.Status, err = parseEnum("status", r.Status, domain.ParseModelStatus); err != nil {
		return domain.ModelRuntime{}, err
	}
	if m.Environment, err = decodeMap[string]("environment", r.Environment); err != nil {
		return domain.ModelRuntime{}, err
	}
	m.Name = r.Name
	m.StartedAt = r.StartedAt
	m.StoppedAt = r.StoppedAt
	m.HealthEndpoint = r.HealthEndpoint
	m.APIEndpoint = r.APIEndpoint
	m.LogFile = optString(r.LogFile)
	m.CreatedAt = r.CreatedAt
	m.UpdatedAt = r.UpdatedAt
	return m, nil
}

// RuntimeMetricsToRow converts a metrics sample for storage.
func RuntimeMetricsToRow(m domain.RuntimeMetrics) (rows.RuntimeMetrics, error) {
	r := rows.RuntimeMetrics{
		ID:                m.ID.String(),
		RuntimeID:         m.RuntimeID.String(),
		Timestamp:         m.Timestamp.UTC(),
		CPUUsagePercent:   m.CPUUsagePercent,
		GPUUsagePercent:   m.GPUUsagePercent,
		AvgResponseTimeMS: m.AvgResponseTimeMS,
		ThroughputRPS:     m.ThroughputRPS,
	}
	var err error
	if r.MemoryUsageMB, err = u64("memory_usage_mb", m.MemoryUsageMB); err != nil {
		return rows.RuntimeMetrics{}, err
	}
	if r.GPUMemoryUsageMB, err = optU64("gpu_memory_usage_mb", m.GPUMemoryUsageMB); err != nil {
		return rows.RuntimeMetrics{}, err
	}
	if r.ActiveConnections, err = u32("active_connections", m.ActiveConnections); err != nil {
		return rows.RuntimeMetrics{}, err
	}
	if r.TotalRequests, err = u64("total_requests", m.TotalRequests); err != nil {
		return rows.RuntimeMetrics{}, err
	}
	if r.SuccessfulRequests, err = u64("successful_requests", m.SuccessfulRequests); err != nil {
		return rows.RuntimeMetrics{}, err
	}
	if r.FailedRequests, err = u64("failed_requests", m.FailedRequests); err != nil {
		return rows.RuntimeMetrics{}, err
	}
	if r.QueueLength, err = u32("queue_length", m.QueueLength); err != nil {
		return rows.RuntimeMetrics{}, err
	}
	return r, nil
}

// RuntimeMetricsFromRow converts a stored metrics sample.
func RuntimeMetricsFromRow(r rows.RuntimeMetrics) (domain.RuntimeMetrics, error) {
	m := domain.RuntimeMetrics{
		Timestamp:         r.Timestamp,
		CPUUsagePercent:   r.CPUUsagePercent,
		GPUUsagePercent:   r.GPUUsagePercent,
		AvgResponseTimeMS: r.AvgResponseTimeMS,
		ThroughputRPS:     r.ThroughputRPS,
	}
	var err error
	if m.ID, err = parseID("id", r.ID); err != nil {
		return domain.RuntimeMetrics{}, err
	}
	if m.RuntimeID, err = parseID("runtime_id", r.RuntimeID); err != nil {
		return domain.RuntimeMetrics{}, err
	}
	if m.MemoryUsageMB, err = toU64("memory_usage_mb", r.MemoryUsageMB); err != nil {
		return domain.RuntimeMetrics{}, err
	}
	if m.GPUMemoryUsageMB, err = toOptU64("gpu_memory_usage_mb", r.GPUMemoryUsageMB); err != nil {
		return domain.RuntimeMetrics{}, err
	}
	if m.ActiveConnections, err = toU32("active_connections", r.ActiveConnections); err != nil {
		return domain.RuntimeMetrics{}, err
	}
	if m.TotalRequests, err = toU64("total_requests", r.TotalRequests); err != nil {
		return domain.RuntimeMetrics{}, err
	}
	if m.SuccessfulRequests, err = toU64("successful_requests", r.SuccessfulRequests); err != nil {
		return domain.RuntimeMetrics{}, err
	}
	if m.FailedRequests, err = toU64("failed_requests", r.FailedRequests); err != nil {
		return domain.RuntimeMetrics{}, err
	}
	if m.QueueLength, err = toU32("queue_length", r.QueueLength); err != nil {
		return domain.RuntimeMetrics{}, err
	}
	return m, nil
}

// RuntimeEventToRow converts a runtime event for storage. Nil details are
// stored as NULL.
func RuntimeEventToRow(e domain.RuntimeEvent) (rows.RuntimeEvent, error) {
	eventType, err := checkEnum("event_type", e.EventType, domain.ParseRuntimeEventType)
	if err != nil {
		return rows.RuntimeEvent{}, err
	}
	severity, err := checkEnum("severity", e.Severity, domain.ParseEventSeverity)
	if err != nil {
		return rows.RuntimeEvent{}, err
	}
	r := rows.RuntimeEvent{
		ID:        e.ID.String(),
		RuntimeID: e.RuntimeID.String(),
		EventType: eventType,
		Timestamp: e.Timestamp.UTC(),
		Message:   e.Message,
		Severity:  severity,
	}
	if e.Details != nil {
		details, err := encodeMap("details", e.Details)
		if err != nil {
			return rows.RuntimeEvent{}, err
		}
		r.Details = &details
	}
	return r, nil
}

// RuntimeEventFromRow converts a stored runtime event.
func RuntimeEventFromRow(r rows.RuntimeEvent) (domain.RuntimeEvent, error) {
	var (
		e   domain.RuntimeEvent
		err error
	)
	if e.ID, err = parseID("id", r.ID); err != nil {
		return domain.RuntimeEvent{}, err
	}
	if e.RuntimeID, err = parseID("runtime_id", r.RuntimeID); err != nil {
		return domain.RuntimeEvent{}, err
	}
	if e.EventType, err = parseEnum("event_type", r.EventType, domain.ParseRuntimeEventType); err != nil {
		return domain.RuntimeEvent{}, err
	}
	if e.Severity, err = parseEnum("severity", r.Severity, domain.ParseEventSeverity); err != nil {
		return domain.RuntimeEvent{}, err
	}
	if details := optString(r.Details); details != nil {
		if e.Details, err = decodeMap[any]("details", *details); err != nil {
			return domain.RuntimeEvent{}, err
		}
	}
	e.Timestamp = r.Timestamp
	e.Message = r.Message
	return e, nil
}
