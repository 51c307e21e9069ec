package mockserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/schism-dev/schism/internal/config"
	"github.com/schism-dev/schism/internal/dataset"
	"github.com/schism-dev/schism/internal/middleware"
)

// shutdownTimeout bounds graceful shutdown on context cancellation.
const shutdownTimeout = 5 * time.Second

// Server binds the configured routes onto a chi router over the shared
// dataset store.
type Server struct {
	project  *config.Project
	store    *dataset.Store
	registry *middleware.Registry
	flags    *FlagSet
	log      *slog.Logger
	handler  http.Handler
}

// New creates a Server for the given project configuration. The store
// must already hold the datasets the routes reference; requests against
// an unloaded dataset answer 500.
func New(project *config.Project, store *dataset.Store, registry *middleware.Registry, flags *FlagSet, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		project:  project,
		store:    store,
		registry: registry,
		flags:    flags,
		log:      log,
	}
	s.handler = s.buildRouter()
	return s
}

// Handler returns the HTTP handler serving the configured routes.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Flags returns the shared failure-flag set.
func (s *Server) Flags() *FlagSet {
	return s.flags
}

// buildRouter registers one chi route per configured route.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(s.logRequests)

	for _, route := range s.project.Routes {
		h := s.routeHandler(route)
		switch route.Method {
		case http.MethodGet:
			r.Get(route.Endpoint, h)
		case http.MethodPost:
			r.Post(route.Endpoint, h)
		case http.MethodPut:
			r.Put(route.Endpoint, h)
		case http.MethodDelete:
			r.Delete(route.Endpoint, h)
		}
	}
	return r
}

// logRequests logs every request with method, path and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Run serves until ctx is cancelled, then shuts down gracefully. TLS is
// used when the settings carry certificate and key paths.
func (s *Server) Run(ctx context.Context, settings config.ServerSettings) error {
	srv := &http.Server{
		Addr:    settings.Addr(),
		Handler: s.handler,
	}

	errCh := make(chan error, 1)
	go func() {
		var err error
		if settings.TLS() {
			s.log.Info("mock server listening", "addr", settings.Addr(), "tls", true)
			err = srv.ListenAndServeTLS(settings.CertFile, settings.KeyFile)
		} else {
			s.log.Info("mock server listening", "addr", settings.Addr(), "tls", false)
			err = srv.ListenAndServe()
		}
		errCh <- err
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info("mock server stopped")
	return nil
}
