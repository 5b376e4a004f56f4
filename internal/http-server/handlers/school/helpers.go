package school

import (
	"SchoolQL/entity"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func pathID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid school id %q", raw)
	}
	return id, nil
}

func queryInt(r *http.Request, key string) (*int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return nil, fmt.Errorf("%s must be a non-negative integer", key)
	}
	return &v, nil
}

// renderResult writes a mutation result with a status matching its outcome.
func renderResult(w http.ResponseWriter, r *http.Request, res entity.MutationResult, err error) {
	switch {
	case err != nil:
		render.Status(r, http.StatusInternalServerError)
	case !res.Success:
		render.Status(r, http.StatusNotFound)
	}
	render.JSON(w, r, res)
}
