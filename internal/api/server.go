// SPDX-License-Identifier: MIT

// Package api exposes the subtitle burn service over HTTP.
package api

import (
	"context"
	"io"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/subburnd/subburnd/internal/api/middleware"
	"github.com/subburnd/subburnd/internal/config"
	"github.com/subburnd/subburnd/internal/health"
	"github.com/subburnd/subburnd/internal/log"
	"github.com/subburnd/subburnd/internal/pipeline"
)

// Burner runs one subtitle burn-in. Satisfied by *pipeline.Pipeline.
type Burner interface {
	Burn(ctx context.Context, video, subtitles io.Reader, opts pipeline.Options) (*pipeline.Output, error)
}

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	cfg    config.AppConfig
	burner Burner
	health *health.Manager
	logger zerolog.Logger
}

// NewServer creates the API server.
func NewServer(cfg config.AppConfig, burner Burner, hm *health.Manager) *Server {
	return &Server{
		cfg:    cfg,
		burner: burner,
		health: hm,
		logger: log.WithComponent("api"),
	}
}

// Router builds the chi router with the full middleware stack and all
// routes mounted.
func (s *Server) Router() *chi.Mux {
	r := middleware.NewRouter(middleware.StackConfig{
		EnableMetrics: true,
		EnableLogging: true,
	})

	r.Get("/", s.handleHome)
	r.Get("/healthz", s.health.ServeHealth)
	r.Get("/readyz", s.health.ServeReady)

	r.Group(func(r chi.Router) {
		if s.cfg.RateLimitRPM > 0 {
			r.Use(middleware.BurnRateLimit(s.cfg.RateLimitRPM))
		}
		r.Post("/burn-subtitles", s.handleBurn)
	})

	return r
}
