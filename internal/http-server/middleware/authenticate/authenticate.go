package authenticate

import (
	"SchoolQL/internal/lib/api/response"
	"SchoolQL/internal/lib/sl"
	"fmt"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

type Authenticate interface {
	AuthEnabled() bool
	AuthenticateByToken(token string) (string, error)
}

func New(log *slog.Logger, auth Authenticate) func(next http.Handler) http.Handler {
	mod := sl.Module("middleware.authenticate")
	log.With(mod).Info("authenticate middleware initialized")

	return func(next http.Handler) http.Handler {

		fn := func(w http.ResponseWriter, r *http.Request) {
			id := middleware.GetReqID(r.Context())
			remote := r.RemoteAddr
			// if the request is coming from a proxy, use the X-Forwarded-For header
			xRemote := r.Header.Get("X-Forwarded-For")
			if xRemote != "" {
				remote = xRemote
			}
			logger := log.With(
				mod,
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", remote),
				slog.String("request_id", id),
			)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			t1 := time.Now()
			defer func() {
				logger.With(
					slog.Int("status", ww.Status()),
					slog.Int("size", ww.BytesWritten()),
					slog.Float64("duration", time.Since(t1).Seconds()),
				).Info("incoming request")
			}()

			if auth == nil {
				authFailed(ww, r, "Unauthorized: authentication not enabled")
				return
			}

			if auth.AuthEnabled() {
				token := ""
				header := r.Header.Get("Authorization")
				if len(header) == 0 {
					logger = logger.With(sl.Err(fmt.Errorf("authorization header not found")))
					authFailed(ww, r, "Authorization header not found")
					return
				}
				if strings.HasPrefix(header, "Bearer ") {
					token = strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
				}
				if len(token) == 0 {
					logger = logger.With(sl.Err(fmt.Errorf("token not found")))
					authFailed(ww, r, "Token not found")
					return
				}
				logger = logger.With(sl.Secret("token", token))

				user, err := auth.AuthenticateByToken(token)
				if err != nil {
					logger = logger.With(sl.Err(err))
					authFailed(ww, r, "Unauthorized: invalid token")
					return
				}
				logger = logger.With(slog.String("user", user))
			}

			ww.Header().Set("X-Request-ID", id)
			next.ServeHTTP(ww, r)
		}

		return http.HandlerFunc(fn)
	}
}

func authFailed(w http.ResponseWriter, r *http.Request, message string) {
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, response.Error(message))
}
