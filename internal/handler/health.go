package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is a liveness probe for load balancers and monitoring.  It answers
// without touching any dependency; the status endpoint is the one that
// inspects the database.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
