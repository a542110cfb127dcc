package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xpira/linguafx/internal/config"
	"github.com/xpira/linguafx/internal/playback"
	"github.com/xpira/linguafx/internal/soundfx"
	"github.com/xpira/linguafx/internal/transcribe"
)

// Server handles HTTP API requests.
type Server struct {
	cfg         *config.Config
	logger      *slog.Logger
	server      *http.Server
	registry    *soundfx.Registry
	sounds      *playback.Handler
	transcriber transcribe.Provider
}

// New creates a new API server.
func New(cfg *config.Config, logger *slog.Logger, registry *soundfx.Registry, sounds *playback.Handler, transcriber transcribe.Provider) *Server {
	s := &Server{
		cfg:         cfg,
		logger:      logger,
		registry:    registry,
		sounds:      sounds,
		transcriber: transcriber,
	}

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Public routes
	r.Get("/v1/healthz", s.handleHealthz)
	r.Get("/v1/sounds", s.handleListSounds)
	r.Get("/v1/sounds/{name}", s.handleGetSound)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Post("/v1/play", s.handlePlay)
		r.Get("/v1/volume", s.handleGetVolume)
		r.Put("/v1/volume", s.handleSetVolume)
		r.With(chimw.RequestSize(cfg.MaxUploadBytes)).Post("/v1/transcribe", s.handleTranscribe)
	})

	r.Handle("/metrics", promhttp.Handler())

	// Write timeout covers transcription uploads proxied upstream.
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
