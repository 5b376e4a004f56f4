package operation

import (
	"SchoolQL/entity"
	"context"
)

type Core interface {
	ListSchools(ctx context.Context, q entity.ListQuery) ([]entity.School, error)
	GetSchool(ctx context.Context, id int) (*entity.School, error)
	FindSchoolsByName(ctx context.Context, name string) ([]entity.School, error)
	CreateSchool(ctx context.Context, in entity.SchoolInput) (entity.MutationResult, error)
	UpdateSchool(ctx context.Context, id int, upd entity.SchoolUpdate) (entity.MutationResult, error)
	DeactivateSchool(ctx context.Context, id int) (entity.MutationResult, error)
}
