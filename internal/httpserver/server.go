// Package httpserver serves the extension API and the ops probes.
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/rolewithai/internal/config"
	"github.com/MrSnakeDoc/rolewithai/internal/httpserver/deps"
	"github.com/MrSnakeDoc/rolewithai/internal/httpserver/mw"
	"github.com/MrSnakeDoc/rolewithai/internal/httpserver/routes"
	"github.com/MrSnakeDoc/rolewithai/internal/logger"
)

const defaultRequestTimeout = 10 * time.Second

type Server struct {
	http   *http.Server
	logger logger.Logger
}

// New builds the router and the underlying http.Server. Nothing listens
// until Start.
func New(cfg *config.Config, log logger.Logger, d deps.Deps) *Server {
	log = log.Named("http")
	return &Server{
		http: &http.Server{
			Addr:              cfg.ListenPort,
			Handler:           router(cfg, log, d),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      requestTimeout(cfg) + 5*time.Second,
			IdleTimeout:       time.Minute,
			MaxHeaderBytes:    1 << 20,
		},
		logger: log,
	}
}

// router applies the global middleware stack, then mounts every route group.
// Timeout sits inside Recoverer so a panicking upstream call still answers.
func router(cfg *config.Config, log logger.Logger, d deps.Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(
		middleware.GetHead,
		middleware.RequestID,
		middleware.Recoverer,
		middleware.Timeout(requestTimeout(cfg)),
		mw.Log(log, cfg.TrustProxy),
		mw.CORS(),
	)
	routes.RegisterAll(r, d)
	return r
}

func requestTimeout(cfg *config.Config) time.Duration {
	if cfg.RequestTimeout > 0 {
		return cfg.RequestTimeout
	}
	return defaultRequestTimeout
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.http.Handler }

// Start blocks until the server fails or is shut down. A graceful shutdown
// returns nil.
func (s *Server) Start() error {
	s.logger.Info("listening", logger.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop drains in-flight requests until ctx expires.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("shutting down")
	return s.http.Shutdown(ctx)
}
