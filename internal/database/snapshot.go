package repository

import (
	"SchoolQL/entity"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

const schoolsBucket = "schools"

// sqlSnapshot keeps the collection as a single JSON payload in a
// state(bucket, payload) table. Both SQL backends share it and differ only in
// their statements.
type sqlSnapshot struct {
	db      *sql.DB
	selectQ string
	upsertQ string
	initQ   string
}

func (s *sqlSnapshot) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.initQ, schoolsBucket, "[]"); err != nil {
		return fmt.Errorf("init state: %w", err)
	}
	return nil
}

func (s *sqlSnapshot) Load(ctx context.Context) ([]entity.School, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, s.selectQ, schoolsBucket).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return []entity.School{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select state: %w", err)
	}
	schools := []entity.School{}
	if err := json.Unmarshal([]byte(payload), &schools); err != nil {
		return nil, fmt.Errorf("decode schools: %w", err)
	}
	return schools, nil
}

func (s *sqlSnapshot) Persist(ctx context.Context, schools []entity.School) (retErr error) {
	if schools == nil {
		schools = []entity.School{}
	}
	data, err := json.Marshal(schools)
	if err != nil {
		return fmt.Errorf("encode schools: %w", err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err = tx.ExecContext(ctx, s.upsertQ, schoolsBucket, string(data)); err != nil {
		return fmt.Errorf("upsert %s: %w", schoolsBucket, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *sqlSnapshot) Close() error {
	return s.db.Close()
}

// DB exposes the underlying sql.DB for tests.
func (s *sqlSnapshot) DB() *sql.DB { return s.db }
