package rows

import "time"

// Task mirrors the tasks table.
type Task struct {
	ID           string
	TaskType     string
	Payload      string
	Status       string
	Priority     int32
	CreatedAt    time.Time
	StartedAt    *time.Time
	CompletedAt  *time.Time
	ErrorMessage *string
	RetryCount   int32
	MaxRetries   int32
	ScheduledAt  *time.Time
}

// TaskTable lists the tasks columns in field order.
var TaskTable = Table{
	Name: "tasks",
	Columns: []string{
		"id", "task_type", "payload", "status", "priority", "created_at", "started_at",
		"completed_at", "error_message", "retry_count", "max_retries", "scheduled_at",
	},
}

// Scan reads one row selected with TaskTable's column list.
func (r *Task) Scan(s Scanner) error {
	return s.Scan(
		&r.ID, &r.TaskType, &r.Payload, &r.Status, &r.Priority, Time(&r.CreatedAt), NullTime(&r.StartedAt),
		NullTime(&r.CompletedAt), &r.ErrorMessage, &r.RetryCount, &r.MaxRetries, NullTime(&r.ScheduledAt),
	)
}

// Args returns the statement arguments in column order.
func (r *Task) Args() []any {
	return []any{
		r.ID, r.TaskType, r.Payload, r.Status, r.Priority, r.CreatedAt, TimeArg(r.StartedAt),
		TimeArg(r.CompletedAt), r.ErrorMessage, r.RetryCount, r.MaxRetries, TimeArg(r.ScheduledAt),
	}
}

// DownloadTask mirrors the download_tasks table.
type DownloadTask struct {
	ID                     string
	ModelID                string
	URL                    string
	FilePath               string
	TotalSize              int64
	DownloadedSize         int64
	Status                 string
	ProgressPercent        float64
	DownloadSpeedBPS       int64
	EstimatedTimeRemaining *int32
	CreatedAt              time.Time
	StartedAt              *time.Time
	CompletedAt            *time.Time
	ErrorMessage           *string
}

// DownloadTaskTable lists the download_tasks columns in field order.
var DownloadTaskTable = Table{
	Name: "download_tasks",
	Columns: []string{
		"id", "model_id", "url", "file_path", "total_size", "downloaded_size", "status",
		"progress_percent", "download_speed_bps", "estimated_time_remaining",
		"created_at", "started_at", "completed_at", "error_message",
	},
}

// Scan reads one row selected with DownloadTaskTable's column list.
func (r *DownloadTask) Scan(s Scanner) error {
	return s.Scan(
		&r.ID, &r.ModelID, &r.URL, &r.FilePath, &r.TotalSize, &r.DownloadedSize, &r.Status,
		&r.ProgressPercent, &r.DownloadSpeedBPS, &r.EstimatedTimeRemaining,
		Time(&r.CreatedAt), NullTime(&r.StartedAt), NullTime(&r.CompletedAt), &r.ErrorMessage,
	)
}

// Args returns the statement arguments in column order.
func (r *DownloadTask) Args() []any {
	return []any{
		r.ID, r.ModelID, r.URL, r.FilePath, r.TotalSize, r.DownloadedSize, r.Status,
		r.ProgressPercent, r.DownloadSpeedBPS, r.EstimatedTimeRemaining,
		r.CreatedAt, TimeArg(r.StartedAt), TimeArg(r.CompletedAt), r.ErrorMessage,
	}
}

// UserSession mirrors the user_sessions table.
type UserSession struct {
	ID           string
	UserID       string
	SessionToken string
	CreatedAt    time.Time
	ExpiresAt    time.Time
	LastAccessed time.Time
	IPAddress    string
	UserAgent    *string
	IsActive     bool
}

// UserSessionTable lists the user_sessions columns in field order.
var UserSessionTable = Table{
	Name: "user_sessions",
	Columns: []string{
		"id", "user_id", "session_token", "created_at", "expires_at",
		"last_accessed", "ip_address", "user_agent", "is_active",
	},
}

// Scan reads one row selected with UserSessionTable's column list.
func (r *UserSession) Scan(s Scanner) error {
	return s.Scan(
		&r.ID, &r.UserID, &r.SessionToken, Time(&r.CreatedAt), Time(&r.ExpiresAt),
		Time(&r.LastAccessed), &r.IPAddress, &r.UserAgent, &r.IsActive,
	)
}

// Args returns the statement arguments in column order.
func (r *UserSession) Args() []any {
	return []any{
		r.ID, r.UserID, r.SessionToken, r.CreatedAt, r.ExpiresAt,
		r.LastAccessed, r.IPAddress, r.UserAgent, r.IsActive,
	}
}

// APIUsage mirrors the api_usage table.
type APIUsage struct {
	ID                string
	APIKeyID          *string
	Endpoint          string
	Method            string
	Timestamp         time.Time
	ResponseTimeMS    int32
	StatusCode        int32
	RequestSizeBytes  int64
	ResponseSizeBytes int64
	IPAddress         string
	UserAgent         *string
}

// APIUsageTable lists the api_usage columns in field order.
var APIUsageTable = Table{
	Name: "api_usage",
	Columns: []string{
		"id", "api_key_id", "endpoint", "method", "timestamp", "response_time_ms",
		"status_code", "request_size_bytes", "response_size_bytes", "ip_address", "user_agent",
	},
}

// Scan reads one row selected with APIUsageTable's column list.
func (r *APIUsage) Scan(s Scanner) error {
	return s.Scan(
		&r.ID, &r.APIKeyID, &r.Endpoint, &r.Method, Time(&r.Timestamp), &r.ResponseTimeMS,
		&r.StatusCode, &r.RequestSizeBytes, &r.ResponseSizeBytes, &r.IPAddress, &r.UserAgent,
	)
}

// Args returns the statement arguments in column order.
func (r *APIUsage) Args() []any {
	return []any{
		r.ID, r.APIKeyID, r.Endpoint, r.Method, r.Timestamp, r.ResponseTimeMS,
		r.StatusCode, r.RequestSizeBytes, r.ResponseSizeBytes, r.IPAddress, r.UserAgent,
	}
}
