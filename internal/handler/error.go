package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/painelweb/painel/internal/apperr"
	"github.com/painelweb/painel/internal/utils"
)

// NewHTTPErrorHandler returns the central Echo error handler.  Domain errors
// (validation, not found, unauthorized, service unavailable) are serialized
// as-is in the taxonomy's JSON shape; anything else is wrapped as an
// internal error with the cause logged server-side only.  An unauthorized
// error additionally clears the session cookie so stale tokens do not stick
// around in the browser.
func NewHTTPErrorHandler(secure bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		e, ok := apperr.As(err)
		if !ok {
			// Echo raises typed errors for routing misses; map the two that
			// matter into the taxonomy before falling back to internal.
			var he *echo.HTTPError
			if errors.As(err, &he) {
				switch he.Code {
				case http.StatusMethodNotAllowed:
					e = apperr.NewMethodNotAllowed()
				case http.StatusNotFound:
					e = apperr.NewNotFound("", "")
				}
			}
			if e == nil {
				e = apperr.NewInternal(err)
			}
		}

		if e.StatusCode == http.StatusUnauthorized {
			utils.ClearSessionCookie(c, secure)
		}
		if e.StatusCode >= http.StatusInternalServerError {
			c.Logger().Errorf("controller error: %v", e.Cause())
		}
		if jsonErr := c.JSON(e.StatusCode, e); jsonErr != nil {
			c.Logger().Errorf("error response write failed: %v", jsonErr)
		}
	}
}
