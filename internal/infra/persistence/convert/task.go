package convert

import (
	"modelregistry/internal/infra/persistence/rows"
	"modelregistry/pkg/domain"
)

// TaskToRow converts a queued task for storage.
func TaskToRow(t domain.Task) (rows.Task, error) {
	status, err := checkEnum("status", t.Status, domain.ParseTaskStatus)
	if err != nil {
		return rows.Task{}, err
	}
	payload, err := encodeMap("payload", t.Payload)
	if err != nil {
		return rows.Task{}, err
	}
	r := rows.Task{
		ID:           t.ID.String(),
		TaskType:     t.TaskType,
		Payload:      payload,
		Status:       status,
		Priority:     t.Priority,
		CreatedAt:    t.CreatedAt.UTC(),
		StartedAt:    utcPtr(t.StartedAt),
		CompletedAt:  utcPtr(t.CompletedAt),
		ErrorMessage: t.ErrorMessage,
		ScheduledAt:  utcPtr(t.ScheduledAt),
	}
	if r.RetryCount, err = u32("retry_count", t.RetryCount); err != nil {
		return rows.Task{}, err
	}
	if r.MaxRetries, err = u32("max_retries", t.MaxRetries); err != nil {
		return rows.Task{}, err
	}
	return r, nil
}

// TaskFromRow converts a stored task.
func TaskFromRow(r rows.Task) (domain.Task, error) {
	var (
		t   domain.Task
		err error
	)
	if t.ID, err = parseID("id", r.ID); err != nil {
		return domain.Task{}, err
	}
	if t.Status, err = parseEnum("status", r.Status, domain.ParseTaskStatus); err != nil {
		return domain.Task{}, err
	}
	if t.Payload, err = decodeMap[any]("payload", r.Payload); err != nil {
		return domain.Task{}, err
	}
	if t.RetryCount, err = toU32("retry_count", r.RetryCount); err != nil {
		return domain.Task{}, err
	}
	if t.MaxRetries, err = toU32("max_retries", r.MaxRetries); err != nil {
		return domain.Task{}, err
	}
	t.TaskType = r.TaskType
	t.Priority = r.Priority
	t.CreatedAt = r.CreatedAt
	t.StartedAt = r.StartedAt
	t.CompletedAt = r.CompletedAt
	t.ErrorMessage = optString(r.ErrorMessage)
	t.ScheduledAt = r.ScheduledAt
	return t, nil
}

// DownloadTaskToRow converts a download for storage.
func DownloadTaskToRow(d domain.DownloadTask) (rows.DownloadTask, error) {
	status, err := checkEnum("status", d.Status, domain.ParseDownloadStatus)
	if err != nil {
		return rows.DownloadTask{}, err
	}
	r := rows.DownloadTask{
		ID:              d.ID.String(),
		ModelID:         d.ModelID.String(),
		URL:             d.URL,
		FilePath:        d.FilePath,
		Status:          status,
		ProgressPercent: d.ProgressPercent,
		CreatedAt:       d.CreatedAt.UTC(),
		StartedAt:       utcPtr(d.StartedAt),
		CompletedAt:     utcPtr(d.CompletedAt),
		ErrorMessage:    d.ErrorMessage,
	}
	if r.TotalSize, err = u64("total_size", d.TotalSize); err != nil {
		return rows.DownloadTask{}, err
	}
	if r.DownloadedSize, err = u64("downloaded_size", d.DownloadedSize); err != nil {
		return rows.DownloadTask{}, err
	}
	if r.DownloadSpeedBPS, err = u64("download_speed_bps", d.DownloadSpeedBPS); err != nil {
		return rows.DownloadTask{}, err
	}
	if r.EstimatedTimeRemaining, err = optU32("estimated_time_remaining", d.EstimatedTimeRemaining); err != nil {
		return rows.DownloadTask{}, err
	}
	return r, nil
}

// DownloadTaskFromRow converts a stored download.
func DownloadTaskFromRow(r rows.DownloadTask) (domain.DownloadTask, error) {
	var (
		d   domain.DownloadTask
		err error
	)
	if d.ID, err = parseID("id", r.ID); err != nil {
		return domain.DownloadTask{}, err
	}
	if d.ModelID, err = parseID("model_id", r.ModelID); err != nil {
		return domain.DownloadTask{}, err
	}
	if d.Status, err = parseEnum("status", r.Status, domain.ParseDownloadStatus); err != nil {
		return domain.DownloadTask{}, err
	}
	if d.TotalSize, err = toU64("total_size", r.TotalSize); err != nil {
		return domain.DownloadTask{}, err
	}
	if d.DownloadedSize, err = toU64("downloaded_size", r.DownloadedSize); err != nil {
		return domain.DownloadTask{}, err
	}
	if d.DownloadSpeedBPS, err = toU64("download_speed_bps", r.DownloadSpeedBPS); err != nil {
		return domain.DownloadTask{}, err
	}
	if d.EstimatedTimeRemaining, err = toOptU32("estimated_time_remaining", r.EstimatedTimeRemaining); err != nil {
		return domain.DownloadTask{}, err
	}
	d.URL = r.URL
	d.FilePath = r.FilePath
	d.ProgressPercent = r.ProgressPercent
	d.CreatedAt = r.CreatedAt
	d.StartedAt = r.StartedAt
	d.CompletedAt = r.CompletedAt
	d.ErrorMessage = optString(r.ErrorMessage)
	return d, nil
}

// SessionToRow converts a user session for storage.
func SessionToRow(s domain.UserSession) rows.UserSession {
	return rows.UserSession{
		ID:           s.ID.String(),
		UserID:       s.UserID,
		SessionToken: s.SessionToken,
		CreatedAt:    s.CreatedAt.UTC(),
		ExpiresAt:    s.ExpiresAt.UTC(),
		LastAccessed: s.LastAccessed.UTC(),
		IPAddress:    s.IPAddress,
		UserAgent:    s.UserAgent,
		IsActive:     s.IsActive,
	}
}

// SessionFromRow converts a stored user session.
func SessionFromRow(r rows.UserSession) (domain.UserSession, error) {
	id, err := parseID("id", r.ID)
	if err != nil {
		return domain.UserSession{}, err
	}
	return domain.UserSession{
		ID:           id,
		UserID:       r.UserID,
		SessionToken: r.SessionToken,
		CreatedAt:    r.CreatedAt,
		ExpiresAt:    r.ExpiresAt,
		LastAccessed: r.LastAccessed,
		IPAddress:    r.IPAddress,
		UserAgent:    optString(r.UserAgent),
		IsActive:     r.IsActive,
	}, nil
}

// APIUsageToRow converts an API usage record for storage.
func APIUsageToRow(u domain.APIUsage) (rows.APIUsage, error) {
	r := rows.APIUsage{
		ID:         u.ID.String(),
		APIKeyID:   optIDText(u.APIKeyID),
		Endpoint:   u.Endpoint,
		Method:     u.Method,
		Timestamp:  u.Timestamp.UTC(),
		StatusCode: int32(u.StatusCode),
		IPAddress:  u.IPAddress,
		UserAgent:  u.UserAgent,
	}
	var err error
	if r.ResponseTimeMS, err = u32("response_time_ms", u.ResponseTimeMS); err != nil {
		return rows.APIUsage{}, err
	}
	if r.RequestSizeBytes, err = u64("request_size_bytes", u.RequestSizeBytes); err != nil {
		return rows.APIUsage{}, err
	}
	if r.ResponseSizeBytes, err = u64("response_size_bytes", u.ResponseSizeBytes); err != nil {
		return rows.APIUsage{}, err
	}
	return r, nil
}

// APIUsageFromRow converts a stored API usage record.
func APIUsageFromRow(r rows.APIUsage) (domain.APIUsage, error) {
	var (
		u   domain.APIUsage
		err error
	)
	if u.ID, err = parseID("id", r.ID); err != nil {
		return domain.APIUsage{}, err
	}
	if u.APIKeyID, err = parseOptID("api_key_id", r.APIKeyID); err != nil {
		return domain.APIUsage{}, err
	}
	if u.ResponseTimeMS, err = toU32("response_time_ms", r.ResponseTimeMS); err != nil {
		return domain.APIUsage{}, err
	}
	if u.StatusCode, err = toU16("status_code", r.StatusCode); err != nil {
		return domain.APIUsage{}, err
	}
	if u.RequestSizeBytes, err = toU64("request_size_bytes", r.RequestSizeBytes); err != nil {
		return domain.APIUsage{}, err
	}
	if u.ResponseSizeBytes, err = toU64("response_size_bytes", r.ResponseSizeBytes); err != nil {
		return domain.APIUsage{}, err
	}
	u.Endpoint = r.Endpoint
	u.Method = r.Method
	u.Timestamp = r.Timestamp
	u.IPAddress = r.IPAddress
	u.UserAgent = optString(r.UserAgent)
	return u, nil
}
