package sqlstore

import (
	"context"
	"time"

	"modelregistry/internal/infra/persistence/rows"
)

// MonitoringRepository stores metrics samples, alerts and configuration snapshots.
type MonitoringRepository struct {
	s *Store
}

var (
	gct = rows.GlobalConfigTable
	smt = rows.SystemMetricsTable
	amt = rows.ApplicationMetricsTable
	mmt = rows.ModelMetricsTable
	aet = rows.AlertEventTable
)

// RecordModelMetrics appends a per-model sample.
func (m *MonitoringRepository) RecordModelMetrics(ctx context.Context, r rows.ModelMetrics) error {
	return m.s.insert(ctx, "model_metrics_record", mmt, r.Args())
}

// ModelMetricsHistory returns samples for modelID in [from, to), oldest first.
func (m *MonitoringRepository) ModelMetricsHistory(ctx context.Context, modelID string, from, to time.Time) ([]rows.ModelMetrics, error) {
	return list[rows.ModelMetrics](ctx, m.s, "model_metrics_history", mmt.Name,
		mmt.SelectSQL("WHERE model_id = ? AND timestamp >= ? AND timestamp < ? ORDER BY timestamp, id"),
		modelID, from.UTC(), to.UTC())
}

// RecordSystemMetrics appends a host sample.
func (m *MonitoringRepository) RecordSystemMetrics(ctx context.Context, r rows.SystemMetrics) error {
	return m.s.insert(ctx, "system_metrics_record", smt, r.Args())
}

// SystemMetricsHistory returns host samples in [from, to), oldest first.
func (m *MonitoringRepository) SystemMetricsHistory(ctx context.Context, from, to time.Time) ([]rows.SystemMetrics, error) {
	return list[rows.SystemMetrics](ctx, m.s, "system_metrics_history", smt.Name,
		smt.SelectSQL("WHERE timestamp >= ? AND timestamp < ? ORDER BY timestamp, id"), from.UTC(), to.UTC())
}

// RecordApplicationMetrics appends an application sample.
func (m *MonitoringRepository) RecordApplicationMetrics(ctx context.Context, r rows.ApplicationMetrics) error {
	return m.s.insert(ctx, "application_metrics_record", amt, r.Args())
}

// LatestApplicationMetrics returns the newest application sample, or nil.
func (m *MonitoringRepository) LatestApplicationMetrics(ctx context.Context) (*rows.ApplicationMetrics, error) {
	return getOne[rows.ApplicationMetrics](ctx, m.s, "application_metrics_latest", amt.Name,
		amt.SelectSQL("ORDER BY timestamp DESC, id LIMIT 1"))
}

// CreateAlert inserts an alert.
func (m *MonitoringRepository) CreateAlert(ctx context.Context, r rows.AlertEvent) (rows.AlertEvent, error) {
	if err := m.s.insert(ctx, "alert_create", aet, r.Args()); err != nil {
		return rows.AlertEvent{}, err
	}
	return r, nil
}

// UpdateAlert replaces every column of an alert.
func (m *MonitoringRepository) UpdateAlert(ctx context.Context, r rows.AlertEvent) error {
	_, err := m.s.exec(ctx, "alert_update", aet.Name, aet.UpdateSQL(), aet.UpdateArgs(r.Args())...)
	return err
}

// ActiveAlerts returns alerts not yet resolved, newest first.
func (m *MonitoringRepository) ActiveAlerts(ctx context.Context) ([]rows.AlertEvent, error) {
	return list[rows.AlertEvent](ctx, m.s, "alert_active", aet.Name,
		aet.SelectSQL("WHERE status <> ? ORDER BY triggered_at DESC, id"), "Resolved")
}

// SaveGlobalConfig appends a configuration snapshot.
func (m *MonitoringRepository) SaveGlobalConfig(ctx context.Context, r rows.GlobalConfig) error {
	return m.s.insert(ctx, "global_config_save", gct, r.Args())
}

// LatestGlobalConfig returns the newest snapshot, or nil when none exists.
func (m *MonitoringRepository) LatestGlobalConfig(ctx context.Context) (*rows.GlobalConfig, error) {
	return getOne[rows.GlobalConfig](ctx, m.s, "global_config_latest", gct.Name,
		gct.SelectSQL("ORDER BY created_at DESC, id LIMIT 1"))
}
