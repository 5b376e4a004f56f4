package api

import (
	"SchoolQL/internal/config"
	"SchoolQL/internal/http-server/handlers/errors"
	"SchoolQL/internal/http-server/handlers/feed"
	"SchoolQL/internal/http-server/handlers/gql"
	"SchoolQL/internal/http-server/handlers/operation"
	"SchoolQL/internal/http-server/handlers/school"
	"SchoolQL/internal/http-server/middleware/authenticate"
	"SchoolQL/internal/http-server/middleware/timeout"
	"SchoolQL/internal/lib/metrics"
	"SchoolQL/internal/lib/sl"
	"SchoolQL/internal/ws"
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	authenticate.Authenticate
	ws.Authenticator
	school.Core
	operation.Core
	gql.Core
	feed.Core
}

// NewRouter builds the full route tree. hub and m may be nil; their routes
// are then not mounted.
func NewRouter(conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub, m *metrics.Metrics) http.Handler {
	router := chi.NewRouter()
	router.Use(timeout.Timeout(conf.Listen.Timeout))
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Group(func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(authenticate.New(log, handler))

		r.Route("/api/v1", func(v1 chi.Router) {
			v1.Route("/schools", func(r chi.Router) {
				r.Get("/", school.ListSchools(log, handler))
				r.Get("/search", school.SearchSchools(log, handler))
				r.Get("/{id}", school.GetSchool(log, handler))
				r.Post("/", school.AddSchool(log, handler))
				r.Patch("/{id}", school.UpdateSchool(log, handler))
				r.Delete("/{id}", school.DeleteSchool(log, handler))
			})
			v1.Get("/feed/ticket", feed.IssueTicket(log, handler))
			v1.Route("/operation", func(r chi.Router) {
				r.Get("/", operation.Operations)
				r.Post("/", operation.Handler(log, handler))
			})
		})
		r.Post("/graphql", gql.Handler(log, gql.NewSchema(log, handler)))
	})

	if hub != nil {
		router.Get("/ws/schools", ws.ServeWs(hub, handler, log))
	}
	if m != nil && conf.Metrics.Enabled {
		router.Method(http.MethodGet, "/metrics", m.Handler())
	}

	return router
}

// New serves the API until ctx is done, then shuts the server down
// gracefully. It returns nil after a clean shutdown.
func New(ctx context.Context, conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub, m *metrics.Metrics) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  NewRouter(conf, log, handler, hub, m),
		ErrorLog: httpLog,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server",
		slog.String("address", serverAddress),
		slog.Bool("auth", handler.AuthEnabled()),
		slog.Bool("metrics", m != nil && conf.Metrics.Enabled),
	)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.httpServer.Serve(listener)
	}()

	select {
	case err = <-serveErr:
		return err
	case <-ctx.Done():
	}

	server.log.Info("shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = server.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
