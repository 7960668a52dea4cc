package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/painelweb/painel/internal/apperr"
	"github.com/painelweb/painel/internal/model"
	"github.com/painelweb/painel/internal/repository"
	"github.com/painelweb/painel/internal/utils"
)

// SessionStore is the slice of the session lifecycle manager the session
// endpoints need.
type SessionStore interface {
	Create(ctx context.Context, userID string) (*model.Session, error)
	FindValidByToken(ctx context.Context, token string) (*model.Session, error)
	ExpireByID(ctx context.Context, sessionID string) (*model.Session, error)
}

// Authenticator decides whether an e-mail/password pair identifies a user.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
}

// SessionHandler bundles dependencies for login and logout.
type SessionHandler struct {
	Sessions SessionStore
	Auth     Authenticator
	Secure   bool // secure cookies, true in production
}

func NewSessionHandler(sessions SessionStore, auth Authenticator, secure bool) *SessionHandler {
	return &SessionHandler{Sessions: sessions, Auth: auth, Secure: secure}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Create authenticates the credentials and issues a session.  The opaque
// token travels both in the response body and in the session cookie.
func (h *SessionHandler) Create(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidation("Invalid request body", "Check the request body and try again")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.Auth.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}
	sess, err := h.Sessions.Create(ctx, user.ID)
	if err != nil {
		return err
	}

	utils.SetSessionCookie(c, sess.Token, repository.SessionExpiration, h.Secure)
	return c.JSON(http.StatusCreated, sess)
}

// Destroy soft-invalidates the session named by the cookie: the expiry is
// rewritten into the past, the cookie is cleared, and the expired row is
// returned so the client can confirm what was terminated.
func (h *SessionHandler) Destroy(c echo.Context) error {
	cookie, err := c.Cookie(utils.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return apperr.NewUnauthorized(
			"Unauthorized session token",
			"Check the session token or login again")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sess, err := h.Sessions.FindValidByToken(ctx, cookie.Value)
	if err != nil {
		return err
	}
	expired, err := h.Sessions.ExpireByID(ctx, sess.ID)
	if err != nil {
		return err
	}

	utils.ClearSessionCookie(c, h.Secure)
	return c.JSON(http.StatusOK, expired)
}
