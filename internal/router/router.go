// Package router defines how HTTP routes are registered for the API.  Each
// Register* function wires one area: system endpoints, users, sessions and
// the utility proxies.  Middleware is applied per route, not globally, so
// every endpoint pays only for what it needs.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/painelweb/painel/internal/handler"
)

// RegisterSystem wires the liveness probe, the status endpoint and the
// migrations endpoint.
func RegisterSystem(e *echo.Echo, status *handler.StatusHandler, migrations *handler.MigrationHandler) {
	e.GET("/healthz", handler.Health)

	g := e.Group("/api/v1")
	g.GET("/status", status.Get)
	g.GET("/migrations", migrations.List)
	g.POST("/migrations", migrations.Run)
}

// RegisterUsers wires registration, public user lookup, partial update and
// the current-user endpoint.  Only the current-user route sits behind the
// session middleware; the others are reachable anonymously.
func RegisterUsers(e *echo.Echo, users *handler.UserHandler, sessionAuth echo.MiddlewareFunc) {
	g := e.Group("/api/v1")
	g.POST("/users", users.Register)
	g.GET("/users/:username", users.GetByUsername)
	g.PATCH("/users/:username", users.Update)
	g.GET("/user", users.Current, sessionAuth)
}

// RegisterSessions wires login and logout.  Both carry the rate limiter:
// login is the brute-forceable surface, and limiting logout too keeps the
// bucket keying uniform across the endpoint.
func RegisterSessions(e *echo.Echo, sessions *handler.SessionHandler, rateLimit echo.MiddlewareFunc) {
	g := e.Group("/api/v1/sessions", rateLimit)
	g.POST("", sessions.Create)
	g.DELETE("", sessions.Destroy)
}

// RegisterUtils wires the CEP proxy (behind the response cache) and the
// date formatter.
func RegisterUtils(e *echo.Echo, cep *handler.CEPHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/api/v1/utils")
	g.GET("/cep", cep.Get, cache)
	g.GET("/date", handler.FormatDate)
}
