package sqlstore

import (
	"context"
	"time"

	"modelregistry/internal/infra/persistence/rows"
)

// SessionRepository stores user sessions and API usage records.
type SessionRepository struct {
	s *Store
}

var (
	ust = rows.UserSessionTable
	aut = rows.APIUsageTable
)

// Create inserts a session. Tokens are unique.
func (r *SessionRepository) Create(ctx context.Context, sess rows.UserSession) (rows.UserSession, error) {
	if err := r.s.insert(ctx, "session_create", ust, sess.Args()); err != nil {
		return rows.UserSession{}, err
	}
	return sess, nil
}

// ByToken returns nil when no session carries token.
func (r *SessionRepository) ByToken(ctx context.Context, token string) (*rows.UserSession, error) {
	return getOne[rows.UserSession](ctx, r.s, "session_by_token", ust.Name, ust.SelectSQL("WHERE session_token = ?"), token)
}

// Touch stamps last_accessed.
func (r *SessionRepository) Touch(ctx context.Context, id string) (bool, error) {
	return r.s.execAffected(ctx, "session_touch", ust.Name,
		"UPDATE user_sessions SET last_accessed = ? WHERE id = ?", r.s.now(), id)
}

// Delete reports whether a session was removed.
func (r *SessionRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.s.execAffected(ctx, "session_delete", ust.Name, "DELETE FROM user_sessions WHERE id = ?", id)
}

// CleanupExpired removes sessions that expired before now or were
// deactivated and returns how many went.
func (r *SessionRepository) CleanupExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.s.exec(ctx, "session_cleanup", ust.Name,
		"DELETE FROM user_sessions WHERE expires_at < ? OR is_active = ?", now.UTC(), false)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, r.s.wrap("session_cleanup", ust.Name, err)
	}
	return n, nil
}

// RecordAPIUsage appends a usage record.
func (r *SessionRepository) RecordAPIUsage(ctx context.Context, u rows.APIUsage) error {
	return r.s.insert(ctx, "api_usage_record", aut, u.Args())
}

// APIUsageBetween returns usage records in [from, to), oldest first.
func (r *SessionRepository) APIUsageBetween(ctx context.Context, from, to time.Time) ([]rows.APIUsage, error) {
	return list[rows.APIUsage](ctx, r.s, "api_usage_between", aut.Name,
		aut.SelectSQL("WHERE timestamp >= ? AND timestamp < ? ORDER BY timestamp, id"), from.UTC(), to.UTC())
}
