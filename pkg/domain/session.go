package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserSession is an authenticated session.
type UserSession struct {
	ID           uuid.UUID
	UserID       string
	SessionToken string
	CreatedAt    time.Time
	ExpiresAt    time.Time
	LastAccessed time.Time
	IPAddress    string
	UserAgent    *string
	IsActive     bool
}

// Expired reports whether the session is past its expiry at t.
func (s UserSession) Expired(t time.Time) bool {
	return !t.Before(s.ExpiresAt)
}

// APIUsage records one API request.
type APIUsage struct {
	ID                uuid.UUID
	APIKeyID          *uuid.UUID
	Endpoint          string
	Method            string
	Timestamp         time.Time
	ResponseTimeMS    uint32
	StatusCode        uint16
	RequestSizeBytes  uint64
	ResponseSizeBytes uint64
	IPAddress         string
	UserAgent         *string
}
