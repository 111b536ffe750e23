// Package database owns the local SQLite file backing every persisted
// collection in the app.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type Service interface {
	DB() *sql.DB
	Health() map[string]string
	Close() error
}

type service struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS app_storage (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// New opens (creating if needed) the SQLite database at path and ensures
// the storage schema exists.
func New(path string) (Service, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &service{db: db, path: path}, nil
}

func (s *service) DB() *sql.DB {
	return s.db
}

func (s *service) Health() map[string]string {
	stats := make(map[string]string)

	if err := s.db.Ping(); err != nil {
		stats["status"] = "down"
		stats["error"] = err.Error()
		return stats
	}

	stats["status"] = "up"
	stats["path"] = s.path
	stats["checked_at"] = time.Now().Format(time.RFC3339)
	return stats
}

func (s *service) Close() error {
	return s.db.Close()
}
