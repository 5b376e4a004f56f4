package repository

import (
	"SchoolQL/entity"
	"context"
	"sync"
)

// Memory is an ephemeral Store used for tests and throwaway runs.
type Memory struct {
	mu      sync.RWMutex
	schools []entity.School
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Init(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.schools == nil {
		m.schools = []entity.School{}
	}
	return nil
}

func (m *Memory) Load(_ context.Context) ([]entity.School, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneSchools(m.schools), nil
}

func (m *Memory) Persist(_ context.Context, schools []entity.School) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schools = cloneSchools(schools)
	return nil
}

func (m *Memory) Close() error {
	return nil
}
