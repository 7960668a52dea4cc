package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/painelweb/painel/internal/migrator"
)

// MigrationHandler exposes the migration runner over HTTP: GET lists what is
// pending without touching the schema, POST applies it.
type MigrationHandler struct {
	Migrator *migrator.Migrator
}

func NewMigrationHandler(m *migrator.Migrator) *MigrationHandler {
	return &MigrationHandler{Migrator: m}
}

// List returns the pending migrations (dry run).
func (h *MigrationHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	pending, err := h.Migrator.ListPending(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pending)
}

// Run applies every pending migration.  201 when anything ran, 200 when the
// schema was already current.
func (h *MigrationHandler) Run(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	applied, err := h.Migrator.RunPending(ctx)
	if err != nil {
		return err
	}
	if len(applied) > 0 {
		return c.JSON(http.StatusCreated, applied)
	}
	return c.JSON(http.StatusOK, applied)
}
