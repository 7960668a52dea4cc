package handler

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/painelweb/painel/internal/apperr"
	"github.com/painelweb/painel/internal/middleware"
	"github.com/painelweb/painel/internal/model"
	"github.com/painelweb/painel/internal/repository"
	"github.com/painelweb/painel/internal/service"
	"github.com/painelweb/painel/internal/utils"
)

// memUserStore mimics UserRepo against a map, including the case-insensitive
// uniqueness checks and error payloads, so handler tests exercise the same
// decision paths as the real store.
type memUserStore struct {
	hasher *utils.Hasher
	users  map[string]*model.User // by id
}

func newMemUserStore(h *utils.Hasher) *memUserStore {
	return &memUserStore{hasher: h, users: map[string]*model.User{}}
}

func (s *memUserStore) Create(_ context.Context, username, email, password string) (*model.User, error) {
	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			return nil, apperr.NewValidation(
				"Username already exists",
				"Use another username for this operation")
		}
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return nil, apperr.NewValidation(
				"E-mail already exists",
				"Use another e-mail for this operation")
		}
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u := &model.User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     strings.ToLower(email),
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.users[u.ID] = u
	out := *u
	return &out, nil
}

func (s *memUserStore) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			out := *u
			return &out, nil
		}
	}
	return nil, apperr.NewNotFound(
		"Username not found",
		"Check the username or search for another user")
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			out := *u
			return &out, nil
		}
	}
	return nil, apperr.NewNotFound(
		"E-mail not found",
		"Check the e-mail or search for another user")
}

func (s *memUserStore) FindByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := s.users[id]; ok {
		out := *u
		return &out, nil
	}
	return nil, apperr.NewNotFound(
		"User not found",
		"Check the user id or search for another user")
}

func (s *memUserStore) Update(ctx context.Context, username string, changes repository.UserChanges) (*model.User, error) {
	current, err := s.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if changes.Username != nil && !strings.EqualFold(*changes.Username, current.Username) {
		for _, u := range s.users {
			if strings.EqualFold(u.Username, *changes.Username) {
				return nil, apperr.NewValidation(
					"Username already exists",
					"Use another username for this operation")
			}
		}
	}
	if changes.Email != nil && !strings.EqualFold(*changes.Email, current.Email) {
		for _, u := range s.users {
			if strings.EqualFold(u.Email, *changes.Email) {
				return nil, apperr.NewValidation(
					"E-mail already exists",
					"Use another e-mail for this operation")
			}
		}
	}

	stored := s.users[current.ID]
	if changes.Username != nil {
		stored.Username = *changes.Username
	}
	if changes.Email != nil {
		stored.Email = strings.ToLower(*changes.Email)
	}
	if changes.Password != nil {
		hash, err := s.hasher.Hash(*changes.Password)
		if err != nil {
			return nil, err
		}
		stored.Password = hash
	}
	stored.UpdatedAt = laterThan(stored.UpdatedAt)
	out := *stored
	return &out, nil
}

// memSessionStore mimics SessionRepo: opaque tokens, sliding expiry, soft
// invalidation by expiry rewrite.
type memSessionStore struct {
	sessions map[string]*model.Session // by id
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: map[string]*model.Session{}}
}

func (s *memSessionStore) Create(_ context.Context, userID string) (*model.Session, error) {
	token, err := repository.NewToken()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	sess := &model.Session{
		ID:        uuid.NewString(),
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(repository.SessionExpiration),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.sessions[sess.ID] = sess
	out := *sess
	return &out, nil
}

func (s *memSessionStore) FindValidByToken(_ context.Context, token string) (*model.Session, error) {
	for _, sess := range s.sessions {
		if sess.Token == token && sess.Valid(time.Now().UTC()) {
			out := *sess
			return &out, nil
		}
	}
	return nil, apperr.NewUnauthorized(
		"Unauthorized session token",
		"Check the session token or login again")
}

func (s *memSessionStore) Renew(_ context.Context, sessionID string) (*model.Session, error) {
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, apperr.NewNotFound("Session not found", "Check the session id and try again")
	}
	sess.ExpiresAt = time.Now().UTC().Add(repository.SessionExpiration)
	sess.UpdatedAt = laterThan(sess.UpdatedAt)
	out := *sess
	return &out, nil
}

func (s *memSessionStore) ExpireByID(_ context.Context, sessionID string) (*model.Session, error) {
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, apperr.NewNotFound("Session not found", "Check the session id and try again")
	}
	sess.ExpiresAt = sess.ExpiresAt.AddDate(-1, 0, 0)
	sess.UpdatedAt = laterThan(sess.UpdatedAt)
	out := *sess
	return &out, nil
}

// laterThan returns a current timestamp guaranteed to be strictly after t,
// so tests can assert that updated_at moved even on fast machines.
func laterThan(t time.Time) time.Time {
	now := time.Now().UTC()
	if !now.After(t) {
		now = t.Add(time.Microsecond)
	}
	return now
}

// newTestEnv wires an Echo instance with the real handlers, middleware and
// error handler on top of the in-memory stores.
func newTestEnv() (*echo.Echo, *memUserStore, *memSessionStore) {
	hasher := utils.NewHasher("test-pepper", bcrypt.MinCost)
	users := newMemUserStore(hasher)
	sessions := newMemSessionStore()
	auth := service.NewAuthenticator(users, hasher)

	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(false)

	uh := NewUserHandler(users)
	uh.PublishEvents = false
	e.POST("/api/v1/users", uh.Register)
	e.GET("/api/v1/users/:username", uh.GetByUsername)
	e.PATCH("/api/v1/users/:username", uh.Update)
	e.GET("/api/v1/user", uh.Current, middleware.SessionAuth(sessions, false))

	sh := NewSessionHandler(sessions, auth, false)
	e.POST("/api/v1/sessions", sh.Create)
	e.DELETE("/api/v1/sessions", sh.Destroy)

	e.GET("/api/v1/utils/date", FormatDate)

	return e, users, sessions
}
