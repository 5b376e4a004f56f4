package feed

import (
	"SchoolQL/internal/lib/api/response"
	"SchoolQL/internal/lib/sl"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type Core interface {
	AuthEnabled() bool
	IssueFeedTicket() (string, time.Time, error)
}

type Ticket struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
	URL     string    `json:"url"`
}

// IssueTicket hands out a short-lived token for GET /ws/schools?token=.
// With authentication disabled the feed is open and no token is needed.
func IssueTicket(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.feed"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if !handler.AuthEnabled() {
			render.JSON(w, r, response.Ok(Ticket{URL: "/ws/schools"}))
			return
		}

		token, expires, err := handler.IssueFeedTicket()
		if err != nil {
			logger.Error("issue feed ticket", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}
		render.JSON(w, r, response.Ok(Ticket{
			Token:   token,
			Expires: expires,
			URL:     "/ws/schools?token=" + token,
		}))
	}
}
