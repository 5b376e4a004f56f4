package core

import (
	"SchoolQL/entity"
	"SchoolQL/internal/lib/metrics"
	"SchoolQL/internal/lib/sl"
	"context"
	"errors"
	"log/slog"
)

const (
	opList       = "list"
	opGet        = "get"
	opByName     = "by_name"
	opCreate     = "create"
	opUpdate     = "update"
	opDeactivate = "deactivate"
)

// ListSchools returns the collection after name filter, sort and pagination.
func (c *Core) ListSchools(ctx context.Context, q entity.ListQuery) ([]entity.School, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	schools, err := c.load(ctx)
	if err != nil {
		c.log.Error("list schools", sl.Err(err))
		c.metrics.Operation(opList, metrics.ResultError)
		return nil, err
	}
	c.metrics.Operation(opList, metrics.ResultOk)
	return ApplyQuery(schools, q), nil
}

// GetSchool returns nil without error when no school has id.
func (c *Core) GetSchool(ctx context.Context, id int) (*entity.School, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	schools, err := c.load(ctx)
	if err != nil {
		c.log.Error("get school", slog.Int("id", id), sl.Err(err))
		c.metrics.Operation(opGet, metrics.ResultError)
		return nil, err
	}
	idx := FindByID(schools, id)
	if idx < 0 {
		c.metrics.Operation(opGet, metrics.ResultNotFound)
		return nil, nil
	}
	c.metrics.Operation(opGet, metrics.ResultOk)
	school := schools[idx]
	return &school, nil
}

// FindSchoolsByName matches a case-insensitive substring of the school name.
func (c *Core) FindSchoolsByName(ctx context.Context, name string) ([]entity.School, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	schools, err := c.load(ctx)
	if err != nil {
		c.log.Error("find schools by name", slog.String("name", name), sl.Err(err))
		c.metrics.Operation(opByName, metrics.ResultError)
		return nil, err
	}
	c.metrics.Operation(opByName, metrics.ResultOk)
	return FilterByName(schools, name), nil
}

func (c *Core) CreateSchool(ctx context.Context, in entity.SchoolInput) (entity.MutationResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	log := c.log.With(slog.String("operation", opCreate))

	schools, err := c.load(ctx)
	if err != nil {
		return c.storageFailure(log, opCreate, err)
	}
	next, school := CreateSchool(schools, in)
	if err = c.persist(ctx, next); err != nil {
		return c.storageFailure(log, opCreate, err)
	}

	log.Debug("school created", slog.Int("id", school.ID), slog.String("name", school.Name))
	c.metrics.Operation(opCreate, metrics.ResultOk)
	c.publish(entity.EventCreated, school)
	return entity.SuccessResult(school), nil
}

// UpdateSchool overwrites only the supplied fields of the school with id.
func (c *Core) UpdateSchool(ctx context.Context, id int, upd entity.SchoolUpdate) (entity.MutationResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	log := c.log.With(slog.String("operation", opUpdate), slog.Int("id", id))

	schools, err := c.load(ctx)
	if err != nil {
		return c.storageFailure(log, opUpdate, err)
	}
	next, school, err := UpdateSchool(schools, id, upd)
	if err != nil {
		return c.notFound(log, opUpdate, err)
	}
	if err = c.persist(ctx, next); err != nil {
		return c.storageFailure(log, opUpdate, err)
	}

	log.Debug("school updated")
	c.metrics.Operation(opUpdate, metrics.ResultOk)
	c.publish(entity.EventUpdated, school)
	return entity.SuccessResult(school), nil
}

// DeactivateSchool is the soft delete: the school stays in the collection
// with status INACTIVE.
func (c *Core) DeactivateSchool(ctx context.Context, id int) (entity.MutationResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	log := c.log.With(slog.String("operation", opDeactivate), slog.Int("id", id))

	schools, err := c.load(ctx)
	if err != nil {
		return c.storageFailure(log, opDeactivate, err)
	}
	next, school, err := DeactivateSchool(schools, id)
	if err != nil {
		return c.notFound(log, opDeactivate, err)
	}
	if err = c.persist(ctx, next); err != nil {
		return c.storageFailure(log, opDeactivate, err)
	}

	log.Debug("school deactivated")
	c.metrics.Operation(opDeactivate, metrics.ResultOk)
	c.publish(entity.EventDeactivated, school)
	return entity.SuccessResult(school), nil
}

func (c *Core) storageFailure(log *slog.Logger, op string, err error) (entity.MutationResult, error) {
	log.Error("storage failure", sl.Err(err))
	c.metrics.Operation(op, metrics.ResultError)
	return entity.FailedResult(err.Error()), err
}

func (c *Core) notFound(log *slog.Logger, op string, err error) (entity.MutationResult, error) {
	if !errors.Is(err, entity.ErrNotFound) {
		return c.storageFailure(log, op, err)
	}
	log.Debug("school not found")
	c.metrics.Operation(op, metrics.ResultNotFound)
	return entity.FailedResult(entity.NotFoundMessage), nil
}
