// Package server provides the read-only HTTP lookup API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hyperjump/patristica/internal/config"
	"github.com/hyperjump/patristica/internal/matcher"
	"github.com/hyperjump/patristica/pkg/utils"
	"go.uber.org/zap"
)

// Server is the HTTP server for the lookup API.
type Server struct {
	holder       *matcher.Holder
	matcher      *matcher.Matcher
	snapshotPath string
	config       *config.ServerConfig
	logger       *zap.Logger
	server       *http.Server
}

// NewServer creates a server that answers from the lookup currently in holder.
func NewServer(
	holder *matcher.Holder,
	m *matcher.Matcher,
	snapshotPath string,
	cfg *config.ServerConfig,
	logger *zap.Logger,
) *Server {
	return &Server{
		holder:       holder,
		matcher:      m,
		snapshotPath: snapshotPath,
		config:       cfg,
		logger:       utils.OrNop(logger),
	}
}

// Routes builds the router with middleware and all API routes.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Get("/health", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/lookup", s.handleLookup)
		r.Get("/chapters/{key}", s.handleChapter)
		r.Get("/status", s.handleStatus)
	})
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
