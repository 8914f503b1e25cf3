package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/studyhub/internal/bootstrap"
	"github.com/yigit/studyhub/internal/config"
)

// Server owns the HTTP listener and the runtime behind it.
type Server struct {
	config *config.Config
	deps   *bootstrap.Dependencies
	logger zerolog.Logger
	http   *http.Server
}

// NewServer loads configuration and wires the whole runtime.
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("build dependencies: %w", err)
	}

	router := bootstrap.SetupRouter(cfg, deps, lgr)
	serveUploads(router, cfg.Server.StoragePath, lgr)

	return &Server{
		config: cfg,
		deps:   deps,
		logger: lgr,
		http: &http.Server{
			Addr:         ":" + cfg.Server.Port,
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}, nil
}

// serveUploads exposes stored posters and profile pictures under /uploads.
func serveUploads(router *gin.Engine, dir string, lgr zerolog.Logger) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		lgr.Error().Err(err).Str("path", dir).Msg("Uploads directory unavailable; static serving disabled")
		return
	}
	router.Static("/uploads", dir)
}

// Run serves until SIGINT/SIGTERM or a listener failure, then shuts down.
// The chat hub lives exactly as long as the listener.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go s.deps.Hub.Run(hubCtx)

	listenErr := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		listenErr <- s.http.ListenAndServe()
	}()

	var runErr error
	select {
	case err := <-listenErr:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
		s.logger.Info().Msg("Shutdown signal received")
	}

	shutdownErr := s.Shutdown(context.Background())
	stopHub()
	return errors.Join(runErr, shutdownErr)
}

// Shutdown drains HTTP requests, then releases auth subscriptions, the
// session store and the database pool.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
	defer cancel()

	var err error
	if shutdownErr := s.http.Shutdown(ctx); shutdownErr != nil && !errors.Is(shutdownErr, http.ErrServerClosed) {
		s.logger.Error().Err(shutdownErr).Msg("HTTP server shutdown failed")
		err = fmt.Errorf("http shutdown: %w", shutdownErr)
	}

	open := s.deps.Registry.Len()
	s.deps.Close()
	s.logger.Info().Int("open_workspaces", open).Msg("Server stopped")
	return err
}
