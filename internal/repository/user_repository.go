package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/painelweb/painel/internal/apperr"
	"github.com/painelweb/painel/internal/model"
	"github.com/painelweb/painel/internal/utils"
)

const userColumns = "id, username, email, password, created_at, updated_at"

// UserRepo persists user records.  Username and e-mail uniqueness is checked
// case-insensitively before every insert; the checks are advisory
// (check-then-act, not transactional) and the table's unique constraints are
// the real guarantee against concurrent duplicates.
type UserRepo struct {
	DB     *sql.DB
	Hasher *utils.Hasher
}

func NewUserRepo(db *sql.DB, h *utils.Hasher) *UserRepo {
	return &UserRepo{DB: db, Hasher: h}
}

// UserChanges carries the fields of a partial update.  Nil means "leave the
// current value untouched".
type UserChanges struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// Create validates uniqueness, hashes the password and inserts the user.
// The e-mail is stored lowercased; the username keeps its casing.
func (r *UserRepo) Create(ctx context.Context, username, email, password string) (*model.User, error) {
	if err := r.validateUniqueUsername(ctx, username); err != nil {
		return nil, err
	}
	if err := r.validateUniqueEmail(ctx, email); err != nil {
		return nil, err
	}
	hash, err := r.Hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	if _, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (id, username, email, password) VALUES (?, ?, LOWER(?), ?)",
		id, username, email, hash); err != nil {
		return nil, dbError(err)
	}
	return r.FindByID(ctx, id)
}

// FindByUsername fetches a user by case-insensitive username match.
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	u, err := r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE LOWER(username) = LOWER(?) LIMIT 1",
		username))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NewNotFound(
			"Username not found",
			"Check the username or search for another user")
	}
	return u, err
}

// FindByEmail fetches a user by case-insensitive e-mail match.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE LOWER(email) = LOWER(?) LIMIT 1",
		email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NewNotFound(
			"E-mail not found",
			"Check the e-mail or search for another user")
	}
	return u, err
}

// FindByID fetches a user by exact id match.
func (r *UserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	u, err := r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NewNotFound(
			"User not found",
			"Check the user id or search for another user")
	}
	return u, err
}

// Update merges the partial changes onto the current record identified by
// username.  Uniqueness is re-validated only for fields that actually
// change, and a new password is rehashed before persisting.  updated_at is
// refreshed by the database.
func (r *UserRepo) Update(ctx context.Context, username string, changes UserChanges) (*model.User, error) {
	current, err := r.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if changes.Username != nil && !strings.EqualFold(*changes.Username, current.Username) {
		if err := r.validateUniqueUsername(ctx, *changes.Username); err != nil {
			return nil, err
		}
	}
	if changes.Email != nil && !strings.EqualFold(*changes.Email, current.Email) {
		if err := r.validateUniqueEmail(ctx, *changes.Email); err != nil {
			return nil, err
		}
	}

	merged := *current
	if changes.Username != nil {
		merged.Username = *changes.Username
	}
	if changes.Email != nil {
		merged.Email = strings.ToLower(*changes.Email)
	}
	if changes.Password != nil {
		hash, err := r.Hasher.Hash(*changes.Password)
		if err != nil {
			return nil, err
		}
		merged.Password = hash
	}

	if _, err := r.DB.ExecContext(ctx,
		"UPDATE users SET username = ?, email = ?, password = ?, updated_at = UTC_TIMESTAMP(6) WHERE id = ?",
		merged.Username, merged.Email, merged.Password, merged.ID); err != nil {
		return nil, dbError(err)
	}
	return r.FindByID(ctx, current.ID)
}

func (r *UserRepo) validateUniqueUsername(ctx context.Context, username string) error {
	var taken string
	err := r.DB.QueryRowContext(ctx,
		"SELECT username FROM users WHERE LOWER(username) = LOWER(?) LIMIT 1",
		username).Scan(&taken)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil
	case err != nil:
		return dbError(err)
	}
	return apperr.NewValidation(
		"Username already exists",
		"Use another username for this operation")
}

func (r *UserRepo) validateUniqueEmail(ctx context.Context, email string) error {
	var taken string
	err := r.DB.QueryRowContext(ctx,
		"SELECT email FROM users WHERE LOWER(email) = LOWER(?) LIMIT 1",
		email).Scan(&taken)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil
	case err != nil:
		return dbError(err)
	}
	return apperr.NewValidation(
		"E-mail already exists",
		"Use another e-mail for this operation")
}

func (r *UserRepo) scanOne(row *sql.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, dbError(err)
	}
	return &u, nil
}
