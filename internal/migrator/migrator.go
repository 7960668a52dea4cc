// Package migrator wraps goose to list and apply the embedded SQL
// migrations.  It powers both the startup migration run and the
// /api/v1/migrations endpoint.
package migrator

import (
	"context"
	"database/sql"
	"path"

	"github.com/pressly/goose/v3"

	"github.com/painelweb/painel/internal/apperr"
	"github.com/painelweb/painel/internal/database/migrations"
)

// Migration describes one migration file as reported by the endpoint.
type Migration struct {
	Version int64  `json:"version"`
	Name    string `json:"name"`
}

// Migrator lists and applies pending migrations against a single database.
type Migrator struct {
	db *sql.DB
}

func New(db *sql.DB) *Migrator {
	return &Migrator{db: db}
}

// ListPending returns the migrations that have not been applied yet, without
// touching the schema.
func (m *Migrator) ListPending(ctx context.Context) ([]Migration, error) {
	p, err := m.provider()
	if err != nil {
		return nil, err
	}
	statuses, err := p.Status(ctx)
	if err != nil {
		return nil, apperr.NewServiceUnavailable("Error running pending migrations", err)
	}
	pending := []Migration{}
	for _, st := range statuses {
		if st.State == goose.StatePending {
			pending = append(pending, Migration{
				Version: st.Source.Version,
				Name:    path.Base(st.Source.Path),
			})
		}
	}
	return pending, nil
}

// RunPending applies every pending migration and returns the ones that ran.
func (m *Migrator) RunPending(ctx context.Context) ([]Migration, error) {
	p, err := m.provider()
	if err != nil {
		return nil, err
	}
	results, err := p.Up(ctx)
	if err != nil {
		return nil, apperr.NewServiceUnavailable("Error running pending migrations", err)
	}
	applied := []Migration{}
	for _, r := range results {
		applied = append(applied, Migration{
			Version: r.Source.Version,
			Name:    path.Base(r.Source.Path),
		})
	}
	return applied, nil
}

func (m *Migrator) provider() (*goose.Provider, error) {
	p, err := goose.NewProvider(goose.DialectMySQL, m.db, migrations.Files)
	if err != nil {
		return nil, apperr.NewServiceUnavailable("Error running pending migrations", err)
	}
	return p, nil
}
