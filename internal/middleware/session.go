package middleware // middleware provides shared request processing for handlers

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/painelweb/painel/internal/apperr"
	"github.com/painelweb/painel/internal/model"
	"github.com/painelweb/painel/internal/repository"
	"github.com/painelweb/painel/internal/utils"
)

// SessionContextKey is where the renewed session is stored on the request
// context for downstream handlers.
const SessionContextKey = "session"

// SessionSource is the slice of the session store the middleware needs.
type SessionSource interface {
	FindValidByToken(ctx context.Context, token string) (*model.Session, error)
	Renew(ctx context.Context, sessionID string) (*model.Session, error)
}

// SessionAuth returns an Echo middleware that validates the session_id
// cookie and renews the session on every hit (sliding expiration).  The
// renewed session is stored in the context under SessionContextKey and the
// cookie is re-set with the fresh token and window.  Requests without a
// valid session fail with the generic unauthorized session error, which
// never says whether the token was unknown or expired.
func SessionAuth(sessions SessionSource, secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(utils.SessionCookieName)
			if err != nil || cookie.Value == "" {
				return apperr.NewUnauthorized(
					"Unauthorized session token",
					"Check the session token or login again")
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			sess, err := sessions.FindValidByToken(ctx, cookie.Value)
			if err != nil {
				return err
			}
			renewed, err := sessions.Renew(ctx, sess.ID)
			if err != nil {
				return err
			}

			utils.SetSessionCookie(c, renewed.Token, repository.SessionExpiration, secure)
			c.Set(SessionContextKey, renewed)
			return next(c)
		}
	}
}
