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

func GetSchool(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.school"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, err := pathID(r)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		school, err := handler.GetSchool(r.Context(), id)
		if err != nil {
			logger.Error("failed to get school", slog.Int("id", id), sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to get school: %v", err)))
			return
		}
		if school == nil {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error(entity.NotFoundMessage))
			return
		}

		render.JSON(w, r, response.Ok(school))
	}
}

// SearchSchools serves getByName: ?name=
func SearchSchools(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.school"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if !r.URL.Query().Has("name") {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("name is required"))
			return
		}
		name := r.URL.Query().Get("name")

		schools, err := handler.FindSchoolsByName(r.Context(), name)
		if err != nil {
			logger.Error("failed to search schools", slog.String("name", name), sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to search schools: %v", err)))
			return
		}

		logger.Debug("schools found", slog.String("name", name), slog.Int("count", len(schools)))
		render.JSON(w, r, response.Ok(schools))
	}
}
