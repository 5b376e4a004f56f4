package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

const (
	postgresDriver = "pgx"
	postgresDSN    = "postgres://localhost/schoolql?sslmode=disable"
)

// Postgres persists the collection as one JSONB row.
type Postgres struct {
	sqlSnapshot
}

func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	if dsn == "" {
		dsn = postgresDSN
	}
	db, err := sql.Open(postgresDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	ddl := `CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload JSONB NOT NULL
	)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure state table: %w", err)
	}
	return &Postgres{
		sqlSnapshot: sqlSnapshot{
			db:      db,
			selectQ: `SELECT payload::text FROM state WHERE bucket = $1`,
			upsertQ: `INSERT INTO state(bucket, payload) VALUES($1, $2::jsonb) ON CONFLICT(bucket) DO UPDATE SET payload = EXCLUDED.payload`,
			initQ:   `INSERT INTO state(bucket, payload) VALUES($1, $2::jsonb) ON CONFLICT(bucket) DO NOTHING`,
		},
	}, nil
}
