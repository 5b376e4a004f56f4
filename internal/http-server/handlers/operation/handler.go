package operation

import (
	"SchoolQL/entity"
	"SchoolQL/internal/lib/api/request"
	"SchoolQL/internal/lib/api/response"
	"SchoolQL/internal/lib/sl"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

const (
	ListAll    = "listAll"
	GetByID    = "getById"
	GetByName  = "getByName"
	Create     = "create"
	Update     = "update"
	Deactivate = "deactivate"
	// Delete is the external name of Deactivate. Nothing is removed.
	Delete = "delete"
)

type Request struct {
	Operation string          `json:"operation" validate:"required,oneof=listAll getById getByName create update deactivate delete"`
	Args      json.RawMessage `json:"args"`
}

type listArgs struct {
	Name   *string `json:"name"`
	SortBy *string `json:"sortBy"`
	Offset *int    `json:"offset"`
	Limit  *int    `json:"limit"`
}

type idArgs struct {
	ID *int `json:"id" validate:"required"`
}

type nameArgs struct {
	Name *string `json:"name" validate:"required"`
}

type updateArgs struct {
	ID *int `json:"id" validate:"required"`
	entity.SchoolUpdate
}

var errBadRequest = errors.New("bad request")

// Handler runs a single named operation against the core. Reads answer with
// the standard envelope, writes with {success, school, error}.
func Handler(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.operation"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request
		if err := request.Decode(r, &req); err != nil {
			logger.Debug("invalid operation request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}
		logger = logger.With(slog.String("operation", req.Operation))

		status, body, err := dispatch(r, handler, req)
		switch {
		case errors.Is(err, errBadRequest):
			logger.Debug("invalid operation arguments", sl.Err(err))
		case err != nil:
			logger.Error("operation failed", sl.Err(err))
		default:
			logger.Debug("operation done", slog.Int("status", status))
		}
		render.Status(r, status)
		render.JSON(w, r, body)
	}
}

func dispatch(r *http.Request, handler Core, req Request) (int, interface{}, error) {
	ctx := r.Context()

	switch req.Operation {
	case ListAll:
		var args listArgs
		if err := request.Unmarshal(req.Args, &args); err != nil {
			return badArgs(err)
		}
		schools, err := handler.ListSchools(ctx, entity.ListQuery{
			Name:   args.Name,
			SortBy: args.SortBy,
			Offset: args.Offset,
			Limit:  args.Limit,
		})
		return readResult(schools, err)

	case GetByID:
		var args idArgs
		if err := request.Unmarshal(req.Args, &args); err != nil {
			return badArgs(err)
		}
		school, err := handler.GetSchool(ctx, *args.ID)
		if err == nil && school == nil {
			return http.StatusNotFound, response.Error(entity.NotFoundMessage), nil
		}
		return readResult(school, err)

	case GetByName:
		var args nameArgs
		if err := request.Unmarshal(req.Args, &args); err != nil {
			return badArgs(err)
		}
		schools, err := handler.FindSchoolsByName(ctx, *args.Name)
		return readResult(schools, err)

	case Create:
		var args entity.SchoolInput
		if err := request.Unmarshal(req.Args, &args); err != nil {
			return badArgs(err)
		}
		res, err := handler.CreateSchool(ctx, args)
		return writeResult(res, err)

	case Update:
		var args updateArgs
		if err := request.Unmarshal(req.Args, &args); err != nil {
			return badArgs(err)
		}
		if v, ok := args.Status.Get(); ok && !v.Valid() {
			return badArgs(fmt.Errorf("field status must be one of [%s %s]", entity.StatusActive, entity.StatusInactive))
		}
		if v, ok := args.Population.Get(); ok && !entity.ValidPopulation(v) {
			return badArgs(entity.ErrPopulationRange)
		}
		res, err := handler.UpdateSchool(ctx, *args.ID, args.SchoolUpdate)
		return writeResult(res, err)

	case Deactivate, Delete:
		var args idArgs
		if err := request.Unmarshal(req.Args, &args); err != nil {
			return badArgs(err)
		}
		res, err := handler.DeactivateSchool(ctx, *args.ID)
		return writeResult(res, err)
	}

	return badArgs(fmt.Errorf("unknown operation %q", req.Operation))
}

func badArgs(err error) (int, interface{}, error) {
	return http.StatusBadRequest, response.Error(err.Error()), fmt.Errorf("%w: %w", errBadRequest, err)
}

func readResult(data interface{}, err error) (int, interface{}, error) {
	if err != nil {
		return http.StatusInternalServerError, response.Error(err.Error()), err
	}
	return http.StatusOK, response.Ok(data), nil
}

func writeResult(res entity.MutationResult, err error) (int, interface{}, error) {
	switch {
	case err != nil:
		return http.StatusInternalServerError, res, err
	case !res.Success:
		return http.StatusNotFound, res, nil
	}
	return http.StatusOK, res, nil
}
