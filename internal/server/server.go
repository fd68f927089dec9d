// Package server publishes a skills document over HTTP for the viewer and
// for browser clients during development.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/phanxgames/skillmap"
)

// DataPath is the route the skills document is served at.
const DataPath = "/skills.json"

// Config holds server configuration.
type Config struct {
	Addr string
	// Data is the skills document file. It is re-read on every request so
	// edits show up without a restart.
	Data string
	// Static is an optional directory served at the root.
	Static string
	// AllowedOrigins lists CORS origins. Empty means localhost only.
	AllowedOrigins []string
	Logger         *slog.Logger
}

// Server serves the skills document.
type Server struct {
	cfg        Config
	log        *slog.Logger
	router     chi.Router
	httpServer *http.Server
}

// New creates a server and builds its router.
func New(cfg Config) *Server {
	s := &Server{cfg: cfg, log: cfg.Logger}
	if s.log == nil {
		s.log = slog.Default()
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		// The viewer fetches without credentials.
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get(DataPath, s.handleData)

	if s.cfg.Static != "" {
		r.Handle("/*", http.FileServer(http.Dir(s.cfg.Static)))
	}
	return r
}

// handleData serves the document file after checking that it decodes, so a
// half-written file surfaces as a server error instead of a broken map.
func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	data, err := os.ReadFile(s.cfg.Data)
	if err != nil {
		s.log.Error("read skills document", "path", s.cfg.Data, "err", err)
		http.Error(w, "skills document unavailable", http.StatusInternalServerError)
		return
	}
	if _, err := skillmap.ParseDocument(data); err != nil {
		s.log.Error("decode skills document", "path", s.cfg.Data, "err", err)
		http.Error(w, "skills document is malformed", http.StatusInternalServerError)
		return
	}

	switch strings.ToLower(filepath.Ext(s.cfg.Data)) {
	case ".yaml", ".yml":
		w.Header().Set("Content-Type", "application/yaml")
	default:
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Start listens on the configured address and blocks until the server
// stops.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.log.Info("skillmap server listening", "addr", s.cfg.Addr, "data", s.cfg.Data)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
