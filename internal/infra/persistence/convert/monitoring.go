package convert

import (
	"modelregistry/internal/infra/persistence/rows"
	"modelregistry/pkg/domain"
)

// GlobalConfigToRow converts a configuration snapshot for storage.
func GlobalConfigToRow(c domain.GlobalConfig) (rows.GlobalConfig, error) {
	data, err := encodeMap("config_data", c.Data)
	if err != nil {
		return rows.GlobalConfig{}, err
	}
	return rows.GlobalConfig{
		ID:         c.ID.String(),
		Version:    c.Version,
		ConfigData: data,
		CreatedAt:  c.CreatedAt.UTC(),
		UpdatedAt:  c.UpdatedAt.UTC(),
	}, nil
}

// GlobalConfigFromRow converts a stored configuration snapshot.
func GlobalConfigFromRow(r rows.GlobalConfig) (domain.GlobalConfig, error) {
	id, err := parseID("id", r.ID)
	if err != nil {
		return domain.GlobalConfig{}, err
	}
	data, err := decodeMap[any]("config_data", r.ConfigData)
	if err != nil {
		return domain.GlobalConfig{}, err
	}
	return domain.GlobalConfig{
		ID:        id,
		Version:   r.Version,
		Data:      data,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

// SystemMetricsToRow converts a host metrics sample for storage.
func SystemMetricsToRow(m domain.SystemMetrics) (rows.SystemMetrics, error) {
	r := rows.SystemMetrics{
		ID:                 m.ID.String(),
		Timestamp:          m.Timestamp.UTC(),
		CPUUsagePercent:    m.CPUUsagePercent,
		MemoryUsagePercent: m.MemoryUsagePercent,
		DiskUsagePercent:   m.DiskUsagePercent,
		GPUUsagePercent:    m.GPUUsagePercent,
		Load1m:             m.Load1m,
		Load5m:             m.Load5m,
		Load15m:            m.Load15m,
	}
	var err error
	if r.CPUCores, err = u32("cpu_cores", m.CPUCores); err != nil {
		return rows.SystemMetrics{}, err
	}
	for _, f := range []struct {
		name string
		src  uint64
		dst  *int64
	}{
		{"memory_total_bytes", m.MemoryTotalBytes, &r.MemoryTotalBytes},
		{"memory_used_bytes", m.MemoryUsedBytes, &r.MemoryUsedBytes},
		{"disk_total_bytes", m.DiskTotalBytes, &r.DiskTotalBytes},
		{"disk_used_bytes", m.DiskUsedBytes, &r.DiskUsedBytes},
		{"network_rx_bytes_per_sec", m.NetworkRxBytesPerSec, &r.NetworkRxBytesPerSec},
		{"network_tx_bytes_per_sec", m.NetworkTxBytesPerSec, &r.NetworkTxBytesPerSec},
	} {
		if *f.dst, err = u64(f.name, f.src); err != nil {
			return rows.SystemMetrics{}, err
		}
	}
	if r.GPUMemoryUsageMB, err = optU64("gpu_memory_usage_mb", m.GPUMemoryUsageMB); err != nil {
		return rows.SystemMetrics{}, err
	}
	return r, nil
}

// SystemMetricsFromRow converts a stored host metrics sample.
func SystemMetricsFromRow(r rows.SystemMetrics) (domain.SystemMetrics, error) {
	m := domain.SystemMetrics{
		Timestamp:          r.Timestamp,
		CPUUsagePercent:    r.CPUUsagePercent,
		MemoryUsagePercent: r.MemoryUsagePercent,
		DiskUsagePercent:   r.DiskUsagePercent,
		GPUUsagePercent:    r.GPUUsagePercent,
		Load1m:             r.Load1m,
		Load5m:             r.Load5m,
		Load15m:            r.Load15m,
	}
	var err error
	if m.ID, err = parseID("id", r.ID); err != nil {
		return domain.SystemMetrics{}, err
	}
	if m.CPUCores, err = toU32("cpu_cores", r.CPUCores); err != nil {
		return domain.SystemMetrics{}, err
	}
	for _, f := range []struct {
		name string
		src  int64
		dst  *uint64
	}{
		{"memory_total_bytes", r.MemoryTotalBytes, &m.MemoryTotalBytes},
		{"memory_used_bytes", r.MemoryUsedBytes, &m.MemoryUsedBytes},
		{"disk_total_bytes", r.DiskTotalBytes, &m.DiskTotalBytes},
		{"disk_used_bytes", r.DiskUsedBytes, &m.DiskUsedBytes},
		{"network_rx_bytes_per_sec", r.NetworkRxBytesPerSec, &m.NetworkRxBytesPerSec},
		{"network_tx_bytes_per_sec", r.NetworkTxBytesPerSec, &m.NetworkTxBytesPerSec},
	} {
		if *f.dst, err = toU64(f.name, f.src); err != nil {
			return domain.SystemMetrics{}, err
		}
	}
	if m.GPUMemoryUsageMB, err = toOptU64("gpu_memory_usage_mb", r.GPUMemoryUsageMB); err != nil {
		return domain.SystemMetrics{}, err
	}
	return m, nil
}

// ApplicationMetricsToRow converts an application metrics sample for storage.
func ApplicationMetricsToRow(m domain.ApplicationMetrics) (rows.ApplicationMetrics, error) {
	health, err := checkEnum("health_status", m.HealthStatus, domain.ParseHealthStatus)
	if err != nil {
		return rows.ApplicationMetrics{}, err
	}
	r := rows.ApplicationMetrics{
		ID:                m.ID.String(),
		Timestamp:         m.Timestamp.UTC(),
		AvgResponseTimeMS: m.AvgResponseTimeMS,
		P95ResponseTimeMS: m.P95ResponseTimeMS,
		P99ResponseTimeMS: m.P99ResponseTimeMS,
		CurrentQPS:        m.CurrentQPS,
		PeakQPS:           m.PeakQPS,
		ErrorRatePercent:  m.ErrorRatePercent,
		HealthStatus:      health,
	}
	if r.UptimeSeconds, err = u64("uptime_seconds", m.UptimeSeconds); err != nil {
		return rows.ApplicationMetrics{}, err
	}
	if r.TotalRequests, err = u64("total_requests", m.TotalRequests); err != nil {
		return rows.ApplicationMetrics{}, err
	}
	if r.SuccessfulRequests, err = u64("successful_requests", m.SuccessfulRequests); err != nil {
		return rows.ApplicationMetrics{}, err
	}
	if r.FailedRequests, err = u64("failed_requests", m.FailedRequests); err != nil {
		return rows.ApplicationMetrics{}, err
	}
	if r.ActiveConnections, err = u32("active_connections", m.ActiveConnections); err != nil {
		return rows.ApplicationMetrics{}, err
	}
	return r, nil
}

// ApplicationMetricsFromRow converts a stored application metrics sample.
func ApplicationMetricsFromRow(r rows.ApplicationMetrics) (domain.ApplicationMetrics, error) {
	m := domain.ApplicationMetrics{
		Timestamp:         r.Timestamp,
		AvgResponseTimeMS: r.AvgResponseTimeMS,
		P95ResponseTimeMS: r.P95ResponseTimeMS,
		P99ResponseTimeMS: r.P99ResponseTimeMS,
		CurrentQPS:        r.CurrentQPS,
		PeakQPS:           r.PeakQPS,
		ErrorRatePercent:  r.ErrorRatePercent,
	}
	var err error
	if m.ID, err = parseID("id", r.ID); err != nil {
		return domain.ApplicationMetrics{}, err
	}
	if m.HealthStatus, err = parseEnum("health_status", r.HealthStatus, domain.ParseHealthStatus); err != nil {
		return domain.ApplicationMetrics{}, err
	}
	if m.UptimeSeconds, err = toU64("uptime_seconds", r.UptimeSeconds); err != nil {
		return domain.ApplicationMetrics{}, err
	}
	if m.TotalRequests, err = toU64("total_requests", r.TotalRequests); err != nil {
		return domain.ApplicationMetrics{}, err
	}
	if m.SuccessfulRequests, err = toU64("successful_requests", r.SuccessfulRequests); err != nil {
		return domain.ApplicationMetrics{}, err
	}
	if m.FailedRequests, err = toU64("failed_requests", r.FailedRequests); err != nil {
		return domain.ApplicationMetrics{}, err
	}
	if m.ActiveConnections, err = toU32("active_connections", r.ActiveConnections); err != nil {
		return domain.ApplicationMetrics{}, err
	}
	return m, nil
}

// ModelMetricsToRow converts a per-model metrics sample for storage.
func ModelMetricsToRow(m domain.ModelMetrics) (rows.ModelMetrics, error) {
	status, err := checkEnum("status", m.Status, domain.ParseModelStatus)
	if err != nil {
		return rows.ModelMetrics{}, err
	}
	r := rows.ModelMetrics{
		ID:                 m.ID.String(),
		ModelID:            m.ModelID.String(),
		RuntimeID:          optIDText(m.RuntimeID),
		Timestamp:          m.Timestamp.UTC(),
		Status:             status,
		AvgInferenceTimeMS: m.AvgInferenceTimeMS,
		TokensPerSecond:    m.TokensPerSecond,
		CPUUsagePercent:    m.CPUUsagePercent,
		GPUUsagePercent:    m.GPUUsagePercent,
		LastRequestTime:    utcPtr(m.LastRequestTime),
	}
	if r.TotalRequests, err = u64("total_requests", m.TotalRequests); err != nil {
		return rows.ModelMetrics{}, err
	}
	if r.SuccessfulRequests, err = u64("successful_requests", m.SuccessfulRequests); err != nil {
		return rows.ModelMetrics{}, err
	}
	if r.FailedRequests, err = u64("failed_requests", m.FailedRequests); err != nil {
		return rows.ModelMetrics{}, err
	}
	if r.MemoryUsageBytes, err = u64("memory_usage_bytes", m.MemoryUsageBytes); err != nil {
		return rows.ModelMetrics{}, err
	}
	if r.GPUMemoryUsageBytes, err = optU64("gpu_memory_usage_bytes", m.GPUMemoryUsageBytes); err != nil {
		return rows.ModelMetrics{}, err
	}
	if r.QueueLength, err = u32("queue_length", m.QueueLength); err != nil {
		return rows.ModelMetrics{}, err
	}
	return r, nil
}

// ModelMetricsFromRow converts a stored per-model metrics sample.
func ModelMetricsFromRow(r rows.ModelMetrics) (domain.ModelMetrics, error) {
	m := domain.ModelMetrics{
		Timestamp:          r.Timestamp,
		AvgInferenceTimeMS: r.AvgInferenceTimeMS,
		TokensPerSecond:    r.TokensPerSecond,
		CPUUsagePercent:    r.CPUUsagePercent,
		GPUUsagePercent:    r.GPUUsagePercent,
		LastRequestTime:    r.LastRequestTime,
	}
	var err error
	if m.ID, err = parseID("id", r.ID); err != nil {
		return domain.ModelMetrics{}, err
	}
	if m.ModelID, err = parseID("model_id", r.ModelID); err != nil {
		return domain.ModelMetrics{}, err
	}
	if m.RuntimeID, err = parseOptID("runtime_id", r.RuntimeID); err != nil {
		return domain.ModelMetrics{}, err
	}
	if m.Status, err = parseEnum("status", r.Status, domain.ParseModelStatus); err != nil {
		return domain.ModelMetrics{}, err
	}
	if m.TotalRequests, err = toU64("total_requests", r.TotalRequests); err != nil {
		return domain.ModelMetrics{}, err
	}
	if m.SuccessfulRequests, err = toU64("successful_requests", r.SuccessfulRequests); err != nil {
		return domain.ModelMetrics{}, err
	}
	if m.FailedRequests, err = toU64("failed_requests", r.FailedRequests); err != nil {
		return domain.ModelMetrics{}, err
	}
	if m.MemoryUsageBytes, err = toU64("memory_usage_bytes", r.MemoryUsageBytes); err != nil {
		return domain.ModelMetrics{}, err
	}
	if m.GPUMemoryUsageBytes, err = toOptU64("gpu_memory_usage_bytes", r.GPUMemoryUsageBytes); err != nil {
		return domain.ModelMetrics{}, err
	}
	if m.QueueLength, err = toU32("queue_length", r.QueueLength); err != nil {
		return domain.ModelMetrics{}, err
	}
	return m, nil
}

// AlertToRow converts an alert for storage.
func AlertToRow(a domain.AlertEvent) (rows.AlertEvent, error) {
	alertType, err := checkEnum("alert_type", a.AlertType, domain.ParseAlertType)
	if err != nil {
		return rows.AlertEvent{}, err
	}
	severity, err := checkEnum("severity", a.Severity, domain.ParseAlertSeverity)
	if err != nil {
		return rows.AlertEvent{}, err
	}
	status, err := checkEnum("status", a.Status, domain.ParseAlertStatus)
	if err != nil {
		return rows.AlertEvent{}, err
	}
	labels, err := encodeMap("labels", a.Labels)
	if err != nil {
		return rows.AlertEvent{}, err
	}
	metadata, err := encodeMap("metadata", a.Metadata)
	if err != nil {
		return rows.AlertEvent{}, err
	}
	return rows.AlertEvent{
		ID:           a.ID.String(),
		AlertType:    alertType,
		Severity:     severity,
		Title:        a.Title,
		Description:  a.Description,
		TriggeredAt:  a.TriggeredAt.UTC(),
		ResolvedAt:   utcPtr(a.ResolvedAt),
		Status:       status,
		ResourceType: a.ResourceType,
		ResourceID:   a.ResourceID,
		ResourceName: a.ResourceName,
		Value:        a.Value,
		Threshold:    a.Threshold,
		Labels:       labels,
		Metadata:     metadata,
	}, nil
}

// AlertFromRow converts a stored alert.
func AlertFromRow(r rows.AlertEvent) (domain.AlertEvent, error) {
	var (
		a   domain.AlertEvent
		err error
	)
	if a.ID, err = parseID("id", r.ID); err != nil {
		return domain.AlertEvent{}, err
	}
	if a.AlertType, err = parseEnum("alert_type", r.AlertType, domain.ParseAlertType); err != nil {
		return domain.AlertEvent{}, err
	}
	if a.Severity, err = parseEnum("severity", r.Severity, domain.ParseAlertSeverity); err != nil {
		return domain.AlertEvent{}, err
	}
	if a.Status, err = parseEnum("status", r.Status, domain.ParseAlertStatus); err != nil {
		return domain.AlertEvent{}, err
	}
	if a.Labels, err = decodeMap[string]("labels", r.Labels); err != nil {
		return domain.AlertEvent{}, err
	}
	if a.Metadata, err = decodeMap[string]("metadata", r.Metadata); err != nil {
		return domain.AlertEvent{}, err
	}
	a.Title = r.Title
	a.Description = r.Description
	a.TriggeredAt = r.TriggeredAt
	a.ResolvedAt = r.ResolvedAt
	a.ResourceType = r.ResourceType
	a.ResourceID = r.ResourceID
	a.ResourceName = r.ResourceName
	a.Value = r.Value
	a.Threshold = r.Threshold
	return a, nil
}
