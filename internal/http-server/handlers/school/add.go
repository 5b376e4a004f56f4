package school

import (
	"SchoolQL/entity"
	"SchoolQL/internal/lib/api/request"
	"SchoolQL/internal/lib/api/response"
	"SchoolQL/internal/lib/sl"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func AddSchool(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.school"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req entity.SchoolInput
		if err := request.Decode(r, &req); err != nil {
			logger.Debug("invalid create request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		res, err := handler.CreateSchool(r.Context(), req)
		if err != nil {
			logger.Error("failed to add school", sl.Err(err))
		} else {
			logger.Debug("school added", slog.Int("id", res.School.ID))
		}
		if res.Success {
			render.Status(r, http.StatusCreated)
		}
		renderResult(w, r, res, err)
	}
}
