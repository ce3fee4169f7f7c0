package sqlstore

import (
	"context"
	"time"

	"modelregistry/internal/infra/persistence/rows"
)

// TaskRepository stores queued tasks and download progress.
type TaskRepository struct {
	s *Store
}

var (
	tt  = rows.TaskTable
	dtt = rows.DownloadTaskTable
)

// Create enqueues a task.
func (t *TaskRepository) Create(ctx context.Context, r rows.Task) (rows.Task, error) {
	if err := t.s.insert(ctx, "task_create", tt, r.Args()); err != nil {
		return rows.Task{}, err
	}
	return r, nil
}

// Get returns nil when no task has id.
func (t *TaskRepository) Get(ctx context.Context, id string) (*rows.Task, error) {
	return getOne[rows.Task](ctx, t.s, "task_get", tt.Name, tt.SelectSQL("WHERE id = ?"), id)
}

// Pending returns pending tasks whose schedule has come, highest priority
// first and oldest first within a priority.
func (t *TaskRepository) Pending(ctx context.Context, now time.Time, limit int) ([]rows.Task, error) {
	return list[rows.Task](ctx, t.s, "task_pending", tt.Name,
		tt.SelectSQL("WHERE status = ? AND (scheduled_at IS NULL OR scheduled_at <= ?) ORDER BY priority DESC, created_at, id LIMIT ?"),
		"Pending", now.UTC(), limitOr(limit, DefaultSearchLimit))
}

// UpdateStatus sets status, stamping started_at when a task starts running.
func (t *TaskRepository) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	if status == "Running" {
		return t.s.execAffected(ctx, "task_update_status", tt.Name,
			"UPDATE tasks SET status = ?, started_at = ? WHERE id = ?", status, t.s.now(), id)
	}
	return t.s.execAffected(ctx, "task_update_status", tt.Name, "UPDATE tasks SET status = ? WHERE id = ?", status, id)
}

// Complete marks a task completed.
func (t *TaskRepository) Complete(ctx context.Context, id string) (bool, error) {
	return t.s.execAffected(ctx, "task_complete", tt.Name,
		"UPDATE tasks SET status = ?, completed_at = ?, error_message = NULL WHERE id = ?", "Completed", t.s.now(), id)
}

// Fail records an error and increments retry_count. The task returns to
// Pending while retries remain and becomes Failed once they are exhausted;
// both outcomes are decided by a single statement.
func (t *TaskRepository) Fail(ctx context.Context, id, message string) (bool, error) {
	return t.s.execAffected(ctx, "task_fail", tt.Name, `UPDATE tasks SET
		retry_count = retry_count + 1,
		error_message = ?,
		status = CASE WHEN retry_count + 1 >= max_retries THEN ? ELSE ? END,
		completed_at = CASE WHEN retry_count + 1 >= max_retries THEN ? ELSE completed_at END
		WHERE id = ?`,
		message, "Failed", "Pending", t.s.now(), id)
}

// CreateDownload inserts a download record.
func (t *TaskRepository) CreateDownload(ctx context.Context, r rows.DownloadTask) (rows.DownloadTask, error) {
	if err := t.s.insert(ctx, "download_create", dtt, r.Args()); err != nil {
		return rows.DownloadTask{}, err
	}
	return r, nil
}

// UpdateDownloadProgress records bytes received, speed and status.
func (t *TaskRepository) UpdateDownloadProgress(ctx context.Context, id string, downloaded, speedBPS int64, percent float64, status string) (bool, error) {
	return t.s.execAffected(ctx, "download_progress", dtt.Name,
		"UPDATE download_tasks SET downloaded_size = ?, download_speed_bps = ?, progress_percent = ?, status = ? WHERE id = ?",
		downloaded, speedBPS, percent, status, id)
}

// DownloadsByModel returns the downloads of one model, newest first.
func (t *TaskRepository) DownloadsByModel(ctx context.Context, modelID string) ([]rows.DownloadTask, error) {
	return list[rows.DownloadTask](ctx, t.s, "download_by_model", dtt.Name,
		dtt.SelectSQL("WHERE model_id = ? ORDER BY created_at DESC, id"), modelID)
}
