package model

import "time"

// Session mirrors the `sessions` table.  The token is an opaque bearer
// credential with no decodable structure.  UserID is a weak reference to
// users.id: sessions are never cascaded when a user row changes.
type Session struct {
	ID        string    `json:"id"`         // sessions.id (UUIDv4)
	Token     string    `json:"token"`      // sessions.token (96-char hex)
	UserID    string    `json:"user_id"`    // sessions.user_id
	ExpiresAt time.Time `json:"expires_at"` // sessions.expires_at (UTC)
	CreatedAt time.Time `json:"created_at"` // sessions.created_at (UTC)
	UpdatedAt time.Time `json:"updated_at"` // sessions.updated_at (UTC)
}

// Valid reports whether the session has not expired at the given instant.
// Expiry is the only state a session has; there is no explicit status column.
// The authoritative check happens in SQL (expires_at compared against the
// server clock on lookup); Valid serves in-memory callers.
func (s *Session) Valid(now time.Time) bool {
	return s.ExpiresAt.After(now)
}
