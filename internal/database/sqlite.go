package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SQLite persists the collection into a local database file.
type SQLite struct {
	sqlSnapshot
	path string
}

func NewSQLite(path string) (*SQLite, error) {
	if path == "" {
		path = "schoolql.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// a single connection keeps writes serialized inside the driver
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &SQLite{
		sqlSnapshot: sqlSnapshot{
			db:      db,
			selectQ: `SELECT payload FROM state WHERE bucket = ?`,
			upsertQ: `INSERT INTO state(bucket, payload) VALUES(?, ?) ON CONFLICT(bucket) DO UPDATE SET payload = excluded.payload`,
			initQ:   `INSERT INTO state(bucket, payload) VALUES(?, ?) ON CONFLICT(bucket) DO NOTHING`,
		},
		path: path,
	}, nil
}

// Path returns the configured database path.
func (s *SQLite) Path() string { return s.path }
