package repository

import (
	"SchoolQL/entity"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// JSONFile stores the collection as one indented JSON array on disk.
// Writes go to a temporary file that is renamed over the target, so a failed
// write leaves the previous file in place.
type JSONFile struct {
	path string
}

func NewJSONFile(path string) (*JSONFile, error) {
	if path == "" {
		path = "schools.json"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	return &JSONFile{path: path}, nil
}

func (s *JSONFile) Path() string { return s.path }

func (s *JSONFile) Init(ctx context.Context) error {
	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", s.path, err)
	}
	return s.Persist(ctx, []entity.School{})
}

func (s *JSONFile) Load(_ context.Context) ([]entity.School, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []entity.School{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	schools := []entity.School{}
	if err := json.Unmarshal(data, &schools); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return schools, nil
}

func (s *JSONFile) Persist(_ context.Context, schools []entity.School) (retErr error) {
	if schools == nil {
		schools = []entity.School{}
	}
	data, err := json.MarshalIndent(schools, "", "    ")
	if err != nil {
		return fmt.Errorf("encode schools: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

func (s *JSONFile) Close() error {
	return nil
}
