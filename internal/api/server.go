// Package api exposes the reconstruction engine over HTTP.
//
// The server validates snapshots against an in-memory host environment and
// returns the resulting report (root node ID plus warnings). Reports are
// content-addressed and cached, so re-posting an unchanged snapshot is
// answered without re-running the engine.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cris-achiardi/figma-plugins-sub000/pkg/cache"
	"github.com/cris-achiardi/figma-plugins-sub000/pkg/observability"
)

// Server is the HTTP API server.
type Server struct {
	logger *log.Logger
	cache  cache.Cache
	keyer  cache.Keyer
	router *chi.Mux
}

// NewServer creates an API server. A nil cache disables report caching.
func NewServer(logger *log.Logger, c cache.Cache) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if c == nil {
		c = cache.NewNullCache()
	}

	s := &Server{
		logger: logger,
		cache:  c,
		keyer:  cache.NewDefaultKeyer(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/rebuild", s.handleRebuild)
	r.Post("/v1/inspect", s.handleInspect)

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Serve runs the server on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		s.logger.Info("api server stopped")
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// instrument reports request and response events to the registered HTTP
// hooks.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
