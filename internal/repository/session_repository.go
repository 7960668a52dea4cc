package repository

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/painelweb/painel/internal/apperr"
	"github.com/painelweb/painel/internal/model"
)

// SessionExpiration is the sliding window applied on creation and on every
// renewal.
const SessionExpiration = 30 * 24 * time.Hour

const sessionColumns = "id, token, user_id, expires_at, created_at, updated_at"

// SessionRepo persists session records.  A session is valid iff its expiry
// is strictly in the future; there is no other state.  Logout rewrites the
// expiry into the past instead of deleting the row.
type SessionRepo struct{ DB *sql.DB }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{DB: db} }

// NewToken returns a 96-character hex encoding of 48 cryptographically
// random bytes.
func NewToken() (string, error) {
	b := make([]byte, 48)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Create issues a fresh session for the user: opaque token, expiry 30 days
// out.  The stored row is read back so callers get the database timestamps.
func (r *SessionRepo) Create(ctx context.Context, userID string) (*model.Session, error) {
	token, err := NewToken()
	if err != nil {
		return nil, err
	}
	id := uuid.NewString()
	expiresAt := time.Now().UTC().Add(SessionExpiration)

	if _, err := r.DB.ExecContext(ctx,
		"INSERT INTO sessions (id, token, user_id, expires_at) VALUES (?, ?, ?, ?)",
		id, token, userID, expiresAt); err != nil {
		return nil, dbError(err)
	}
	return r.findByID(ctx, id)
}

// FindValidByToken performs the combined lookup-and-validity check: the row
// must match the token and its expiry must be strictly in the future.  A
// miss never says whether the token is unknown or merely expired.
func (r *SessionRepo) FindValidByToken(ctx context.Context, token string) (*model.Session, error) {
	s, err := r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+sessionColumns+" FROM sessions WHERE token = ? AND expires_at > UTC_TIMESTAMP(6) LIMIT 1",
		token))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NewUnauthorized(
			"Unauthorized session token",
			"Check the session token or login again")
	}
	return s, err
}

// Renew unconditionally pushes the expiry forward by the full window.  It
// runs on every authenticated request, so each authenticated read costs one
// extra write.
func (r *SessionRepo) Renew(ctx context.Context, sessionID string) (*model.Session, error) {
	expiresAt := time.Now().UTC().Add(SessionExpiration)
	res, err := r.DB.ExecContext(ctx,
		"UPDATE sessions SET expires_at = ?, updated_at = UTC_TIMESTAMP(6) WHERE id = ?",
		expiresAt, sessionID)
	if err != nil {
		return nil, dbError(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, apperr.NewNotFound(
			"Session not found",
			"Check the session id and try again")
	}
	return r.findByID(ctx, sessionID)
}

// ExpireByID soft-invalidates a session by moving its expiry one year into
// the past.  The row is kept so the expired session can still be returned
// to the caller that logged out.
func (r *SessionRepo) ExpireByID(ctx context.Context, sessionID string) (*model.Session, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE sessions SET expires_at = DATE_SUB(expires_at, INTERVAL 1 YEAR), updated_at = UTC_TIMESTAMP(6) WHERE id = ?",
		sessionID)
	if err != nil {
		return nil, dbError(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, apperr.NewNotFound(
			"Session not found",
			"Check the session id and try again")
	}
	return r.findByID(ctx, sessionID)
}

func (r *SessionRepo) findByID(ctx context.Context, id string) (*model.Session, error) {
	s, err := r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+sessionColumns+" FROM sessions WHERE id = ? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NewNotFound(
			"Session not found",
			"Check the session id and try again")
	}
	return s, err
}

func (r *SessionRepo) scanOne(row *sql.Row) (*model.Session, error) {
	var s model.Session
	err := row.Scan(&s.ID, &s.Token, &s.UserID, &s.ExpiresAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, dbError(err)
	}
	return &s, nil
}
