package school

import (
	"SchoolQL/internal/lib/api/response"
	"SchoolQL/internal/lib/sl"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

var errInvalidStatus = errors.New("field status must be one of [ACTIVE INACTIVE]")

// DeleteSchool deactivates the school. The record is kept with status
// INACTIVE; nothing is removed.
func DeleteSchool(log *slog.Logger, handler Core) http.HandlerFunc {
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

		res, err := handler.DeactivateSchool(r.Context(), id)
		if err != nil {
			logger.Error("failed to deactivate school", slog.Int("id", id), sl.Err(err))
		} else if res.Success {
			logger.Debug("school deactivated", slog.Int("id", id))
		}
		renderResult(w, r, res, err)
	}
}
