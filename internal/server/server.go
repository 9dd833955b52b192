// Package server exposes a dataset session over HTTP. One server owns one
// session; handlers translate requests into session operations and render
// the results as JSON.
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cloudscope/cloudscope/pkg/buildinfo"
	"github.com/cloudscope/cloudscope/pkg/render"
	"github.com/cloudscope/cloudscope/pkg/session"
)

// Server wires a session and an exporter into an HTTP handler.
type Server struct {
	sess     *session.Session
	exporter *render.Exporter
	logger   *log.Logger
	router   chi.Router
}

// New creates a server around a session.
func New(sess *session.Session, exporter *render.Exporter, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		sess:     sess,
		exporter: exporter,
		logger:   logger,
	}
	s.router = s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.Route("/api", func(r chi.Router) {
		r.Get("/graph", s.handleGraph)
		r.Get("/filters", s.handleFilters)
		r.Post("/filters", s.handleSetFilters)
		r.Get("/stats", s.handleStats)

		r.Get("/sources", s.handleListSources)
		r.Post("/sources", s.handleAddSource)
		r.Delete("/sources/{index}", s.handleRemoveSource)
		r.Post("/clear", s.handleClear)

		r.Get("/node/{id}", s.handleNodeDetail)
		r.Get("/search", s.handleSearch)

		r.Post("/layout", s.handleSetLayout)
		r.Get("/layout", s.handleLayoutPlan)

		r.Get("/export", s.handleExport)
	})

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
		"built":   buildinfo.Date,
	})
}
