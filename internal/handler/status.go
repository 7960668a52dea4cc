package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/painelweb/painel/internal/database"
)

// StatusHandler exposes the health of the application's dependencies.
type StatusHandler struct {
	DB     *sql.DB
	DBName string
}

func NewStatusHandler(db *sql.DB, dbName string) *StatusHandler {
	return &StatusHandler{DB: db, DBName: dbName}
}

type statusDependencies struct {
	Database *database.ServerStatus `json:"database"`
}

type statusResp struct {
	UpdatedAt    time.Time          `json:"updated_at"`
	Dependencies statusDependencies `json:"dependencies"`
}

// Get reports the current time and the database's version, connection
// ceiling and connections currently open against this database.
func (h *StatusHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	st, err := database.Status(ctx, h.DB, h.DBName)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResp{
		UpdatedAt:    time.Now().UTC(),
		Dependencies: statusDependencies{Database: st},
	})
}
