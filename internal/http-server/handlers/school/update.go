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

// UpdateRequest accepts any subset of fields. Omitted and null fields are
// left untouched.
type UpdateRequest struct {
	entity.SchoolUpdate
}

func (u UpdateRequest) validate() error {
	if v, ok := u.Status.Get(); ok && !v.Valid() {
		return errInvalidStatus
	}
	if v, ok := u.Population.Get(); ok && !entity.ValidPopulation(v) {
		return entity.ErrPopulationRange
	}
	return nil
}

func UpdateSchool(log *slog.Logger, handler Core) http.HandlerFunc {
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

		var req UpdateRequest
		if err = request.Decode(r, &req); err == nil {
			err = req.validate()
		}
		if err != nil {
			logger.Debug("invalid update request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		res, err := handler.UpdateSchool(r.Context(), id, req.SchoolUpdate)
		if err != nil {
			logger.Error("failed to update school", slog.Int("id", id), sl.Err(err))
		}
		renderResult(w, r, res, err)
	}
}
