package gql

import (
	"SchoolQL/internal/lib/api/request"
	"SchoolQL/internal/lib/api/response"
	"SchoolQL/internal/lib/sl"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/graph-gophers/graphql-go"
)

type Params struct {
	Query         string                 `json:"query" validate:"required"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler executes one GraphQL request. Resolver errors travel in the
// response's errors list with status 200, as GraphQL clients expect.
func Handler(log *slog.Logger, schema *graphql.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.graphql"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var params Params
		if err := request.Decode(r, &params); err != nil {
			logger.Debug("invalid graphql request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		resp := schema.Exec(r.Context(), params.Query, params.OperationName, params.Variables)
		if len(resp.Errors) > 0 {
			logger.Warn("graphql errors",
				slog.String("operation", params.OperationName),
				slog.Int("count", len(resp.Errors)),
				slog.String("first", resp.Errors[0].Message),
			)
		} else {
			logger.Debug("graphql executed", slog.String("operation", params.OperationName))
		}
		render.JSON(w, r, resp)
	}
}
