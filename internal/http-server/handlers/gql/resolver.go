package gql

import (
	"SchoolQL/entity"
	"SchoolQL/internal/lib/api/request"
	"context"
	_ "embed"
	"log/slog"

	"github.com/graph-gophers/graphql-go"
)

//go:embed schema.graphql
var schemaString string

const maxDepth = 8


// Resolver is the root of both Query and Mutation.
type Resolver struct {
	core Core
	log  *slog.Logger
}

func NewSchema(log *slog.Logger, core Core) *graphql.Schema {
	return graphql.MustParseSchema(schemaString, &Resolver{core: core, log: log}, graphql.MaxDepth(maxDepth))
}

type allSchoolsArgs struct {
	Limit  *int32
	Offset *int32
	SortBy *string
	Name   *string
}

func (r *Resolver) AllSchools(ctx context.Context, args allSchoolsArgs) ([]*schoolResolver, error) {
	q := entity.ListQuery{
		Name:   args.Name,
		SortBy: args.SortBy,
		Offset: intPtr(args.Offset),
		Limit:  intPtr(args.Limit),
	}
	schools, err := r.core.ListSchools(ctx, q)
	if err != nil {
		return nil, err
	}
	return schoolList(schools), nil
}

func (r *Resolver) GetSchoolById(ctx context.Context, args struct{ ID int32 }) (*schoolResolver, error) {
	school, err := r.core.GetSchool(ctx, int(args.ID))
	if err != nil || school == nil {
		return nil, err
	}
	return &schoolResolver{s: *school}, nil
}

func (r *Resolver) GetSchoolsByName(ctx context.Context, args struct{ Name string }) ([]*schoolResolver, error) {
	schools, err := r.core.FindSchoolsByName(ctx, args.Name)
	if err != nil {
		return nil, err
	}
	return schoolList(schools), nil
}

type addSchoolArgs struct {
	SchoolName       string
	SchoolPopulation int32
	Address          addressInput
	Status           string
}

func (r *Resolver) AddSchool(ctx context.Context, args addSchoolArgs) (*addPayload, error) {
	in := entity.SchoolInput{
		Name:       args.SchoolName,
		Population: int(args.SchoolPopulation),
		Address:    args.Address.entity(),
		Status:     entity.SchoolStatus(args.Status),
	}
	if err := request.Validate(in); err != nil {
		return nil, err
	}
	res, err := r.core.CreateSchool(ctx, in)
	if err != nil {
		return nil, err
	}
	return &addPayload{payload{res}}, nil
}

type updateSchoolArgs struct {
	ID               int32
	SchoolName       *string
	SchoolPopulation *int32
	Address          *addressInput
	Status           *string
}

func (a updateSchoolArgs) update() entity.SchoolUpdate {
	upd := entity.SchoolUpdate{
		Name:       entity.FromPtr(a.SchoolName),
		Population: entity.FromPtr(intPtr(a.SchoolPopulation)),
	}
	if a.Address != nil {
		upd.Address = entity.Some(a.Address.entity())
	}
	if a.Status != nil {
		upd.Status = entity.Some(entity.SchoolStatus(*a.Status))
	}
	return upd
}

func (r *Resolver) UpdateSchool(ctx context.Context, args updateSchoolArgs) (*updatePayload, error) {
	if args.SchoolPopulation != nil && !entity.ValidPopulation(int(*args.SchoolPopulation)) {
		return nil, entity.ErrPopulationRange
	}
	res, err := r.core.UpdateSchool(ctx, int(args.ID), args.update())
	if err != nil {
		return nil, err
	}
	return &updatePayload{payload{res}}, nil
}

func (r *Resolver) DeleteSchool(ctx context.Context, args struct{ ID int32 }) (*deletePayload, error) {
	res, err := r.core.DeactivateSchool(ctx, int(args.ID))
	if err != nil {
		return nil, err
	}
	return &deletePayload{payload{res}}, nil
}

func intPtr(v *int32) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}
