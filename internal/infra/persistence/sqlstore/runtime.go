package sqlstore

import (
	"context"
	"time"

	"modelregistry/internal/infra/persistence/rows"
)

// RuntimeRepository reads and writes runtime configurations, runtimes and
// their metrics and event history.
type RuntimeRepository struct {
	s *Store
}

var (
	rct = rows.RuntimeConfigTable
	rtt = rows.ModelRuntimeTable
	rmt = rows.RuntimeMetricsTable
	ret = rows.RuntimeEventTable
)

// CreateConfig inserts a runtime configuration.
func (r *RuntimeRepository) CreateConfig(ctx context.Context, c rows.RuntimeConfig) (rows.RuntimeConfig, error) {
	if err := r.s.insert(ctx, "runtime_config_create", rct, c.Args()); err != nil {
		return rows.RuntimeConfig{}, err
	}
	return c, nil
}

// Config returns nil when no configuration has id.
func (r *RuntimeRepository) Config(ctx context.Context, id string) (*rows.RuntimeConfig, error) {
	return getOne[rows.RuntimeConfig](ctx, r.s, "runtime_config_get", rct.Name, rct.SelectSQL("WHERE id = ?"), id)
}

// Configs returns every configuration ordered by name.
func (r *RuntimeRepository) Configs(ctx context.Context) ([]rows.RuntimeConfig, error) {
	return list[rows.RuntimeConfig](ctx, r.s, "runtime_config_list", rct.Name, rct.SelectSQL("ORDER BY name, id"))
}

// Create inserts a runtime. (model_id, port) is unique.
func (r *RuntimeRepository) Create(ctx context.Context, m rows.ModelRuntime) (rows.ModelRuntime, error) {
	if err := r.s.insert(ctx, "runtime_create", rtt, m.Args()); err != nil {
		return rows.ModelRuntime{}, err
	}
	return m, nil
}

// Get returns nil when no runtime has id.
func (r *RuntimeRepository) Get(ctx context.Context, id string) (*rows.ModelRuntime, error) {
	return getOne[rows.ModelRuntime](ctx, r.s, "runtime_get", rtt.Name, rtt.SelectSQL("WHERE id = ?"), id)
}

// ByModelID returns the runtimes of one model, newest first.
func (r *RuntimeRepository) ByModelID(ctx context.Context, modelID string) ([]rows.ModelRuntime, error) {
	return list[rows.ModelRuntime](ctx, r.s, "runtime_by_model", rtt.Name,
		rtt.SelectSQL("WHERE model_id = ? ORDER BY created_at DESC, id"), modelID)
}

// Update replaces every column except created_at and stamps updated_at.
func (r *RuntimeRepository) Update(ctx context.Context, m rows.ModelRuntime) (rows.ModelRuntime, error) {
	m.UpdatedAt = r.s.now()
	_, err := r.s.exec(ctx, "runtime_update", rtt.Name, rtt.UpdateSQL("created_at"), rtt.UpdateArgs(m.Args(), "created_at")...)
	if err != nil {
		return rows.ModelRuntime{}, err
	}
	return m, nil
}

// Delete reports whether a runtime was removed.
func (r *RuntimeRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.s.execAffected(ctx, "runtime_delete", rtt.Name, "DELETE FROM model_runtimes WHERE id = ?", id)
}

// RecordMetrics appends a metrics sample.
func (r *RuntimeRepository) RecordMetrics(ctx context.Context, m rows.RuntimeMetrics) error {
	return r.s.insert(ctx, "runtime_metrics_record", rmt, m.Args())
}

// MetricsHistory returns samples for runtimeID in [from, to), oldest first.
func (r *RuntimeRepository) MetricsHistory(ctx context.Context, runtimeID string, from, to time.Time) ([]rows.RuntimeMetrics, error) {
	return list[rows.RuntimeMetrics](ctx, r.s, "runtime_metrics_history", rmt.Name,
		rmt.SelectSQL("WHERE runtime_id = ? AND timestamp >= ? AND timestamp < ? ORDER BY timestamp, id"),
		runtimeID, from.UTC(), to.UTC())
}

// RecordEvent appends a runtime event.
func (r *RuntimeRepository) RecordEvent(ctx context.Context, e rows.RuntimeEvent) error {
	return r.s.insert(ctx, "runtime_event_record", ret, e.Args())
}

// Events returns the latest events for runtimeID, newest first.
func (r *RuntimeRepository) Events(ctx context.Context, runtimeID string, limit int) ([]rows.RuntimeEvent, error) {
	return list[rows.RuntimeEvent](ctx, r.s, "runtime_events", ret.Name,
		ret.SelectSQL("WHERE runtime_id = ? ORDER BY timestamp DESC, id LIMIT ?"), runtimeID, limitOr(limit, DefaultSearchLimit))
}
