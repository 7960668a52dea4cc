package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/painelweb/painel/internal/apperr"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// ServerStatus is the database portion of the status endpoint.
type ServerStatus struct {
	Version         string `json:"version"`
	MaxConnections  int    `json:"max_connections"`
	UsedConnections int    `json:"used_connections"`
}

// Status collects server version, the configured connection ceiling and the
// number of connections currently open against the given database.
func Status(ctx context.Context, db *sql.DB, dbName string) (*ServerStatus, error) {
	var st ServerStatus
	if err := db.QueryRowContext(ctx, "SELECT VERSION()").Scan(&st.Version); err != nil {
		return nil, apperr.NewServiceUnavailable("Database or query error.", err)
	}
	if err := db.QueryRowContext(ctx, "SELECT @@GLOBAL.max_connections").Scan(&st.MaxConnections); err != nil {
		return nil, apperr.NewServiceUnavailable("Database or query error.", err)
	}
	if err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM information_schema.processlist WHERE db = ?",
		dbName).Scan(&st.UsedConnections); err != nil {
		return nil, apperr.NewServiceUnavailable("Database or query error.", err)
	}
	return &st, nil
}
