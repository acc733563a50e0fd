// Package server exposes the tree pipeline and the document store over HTTP.
//
// # Routes
//
//	GET    /healthz
//	POST   /api/v1/parse?format=                      body: tree source → forest JSON
//	POST   /api/v1/render?format=&output=&collapsed=  body: tree source → artifact
//	POST   /api/v1/trees                              body: {title, format, source}
//	GET    /api/v1/trees
//	GET    /api/v1/trees/{id}
//	DELETE /api/v1/trees/{id}
//	GET    /api/v1/trees/{id}/render?output=&collapsed=
//
// Errors are returned as {"code": "...", "message": "..."} with a status
// derived from the error code.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/treeview/pkg/buildinfo"
	"github.com/matzehuels/treeview/pkg/pipeline"
	"github.com/matzehuels/treeview/pkg/store"
)

// DefaultMaxBodyBytes bounds request bodies.
const DefaultMaxBodyBytes = 1 << 20

// Config configures a Server.
type Config struct {
	Runner *pipeline.Runner
	Store  store.Store
	Logger *log.Logger

	// MaxBodyBytes bounds request bodies. Zero means DefaultMaxBodyBytes.
	MaxBodyBytes int64
}

// Server is the HTTP API.
type Server struct {
	router  chi.Router
	runner  *pipeline.Runner
	store   store.Store
	logger  *log.Logger
	maxBody int64
}

// New creates a server. A nil Runner gets an uncached runner and a nil Store
// gets an in-memory store.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}

	s := &Server{
		runner:  cfg.Runner,
		store:   cfg.Store,
		logger:  cfg.Logger,
		maxBody: cfg.MaxBodyBytes,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.SetHeader("Server", buildinfo.UserAgent()))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, errNotFound("route %s not found", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{
			Code:    "METHOD_NOT_ALLOWED",
			Message: r.Method + " is not allowed on " + r.URL.Path,
		})
	})

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/parse", s.handleParse)
		r.Post("/render", s.handleRender)

		r.Route("/trees", func(r chi.Router) {
			r.Post("/", s.handleCreateTree)
			r.Get("/", s.handleListTrees)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetTree)
				r.Delete("/", s.handleDeleteTree)
				r.Get("/render", s.handleRenderTree)
			})
		})
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
