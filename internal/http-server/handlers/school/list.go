package school

import (
	"SchoolQL/entity"
	"SchoolQL/internal/lib/api/response"
	"SchoolQL/internal/lib/sl"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// ListSchools serves listAll: ?name=&sort_by=&offset=&limit=
func ListSchools(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.school")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("school service not available")
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("school service not available"))
			return
		}

		var q entity.ListQuery
		var err error
		if q.Offset, err = queryInt(r, "offset"); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}
		if q.Limit, err = queryInt(r, "limit"); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}
		values := r.URL.Query()
		if values.Has("sort_by") {
			sortBy := values.Get("sort_by")
			q.SortBy = &sortBy
		}
		if values.Has("name") {
			name := values.Get("name")
			q.Name = &name
		}

		schools, err := handler.ListSchools(r.Context(), q)
		if err != nil {
			logger.Error("failed to list schools", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to list schools: %v", err)))
			return
		}

		logger.Debug("schools listed", slog.Int("count", len(schools)))
		render.JSON(w, r, response.Ok(schools))
	}
}
