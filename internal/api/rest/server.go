package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/casefusion/casefusion-backend/internal/infrastructure/config"
)

// Server is the HTTP front of the analysis service.
type Server struct {
	config     *config.Config
	httpServer *http.Server
	logger     *slog.Logger
	closers    []func() error
}

// NewServer assembles the HTTP server around an already-wired handler.
// closers run in order during shutdown, after the listener has drained.
func NewServer(cfg *config.Config, handler *Handler, logger *slog.Logger, closers ...func() error) *Server {
	s := &Server{
		config:  cfg,
		logger:  logger,
		closers: closers,
	}

	chain := NewChain(
		RecoverMiddleware(logger),
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		RateLimitMiddleware(cfg.Server.RateLimit),
	)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      chain.Then(setupRoutes(handler)),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return s
}

// Start serves until an error or an interrupt, then shuts down gracefully.
func (s *Server) Start() error {
	s.logger.Info("starting API server",
		"address", s.httpServer.Addr,
		"environment", s.config.Environment,
	)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed to start: %w", err)
	case sig := <-sigCh:
		s.logger.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown()
	}
}

// Shutdown drains in-flight requests, then closes the wired dependencies.
func (s *Server) Shutdown() error {
	timeout := s.config.Server.ShutdownTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("shutting down server")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("failed to shutdown server", "error", err)
		return err
	}
	for _, closer := range s.closers {
		if err := closer(); err != nil {
			s.logger.Error("failed to close dependency", "error", err)
		}
	}
	s.logger.Info("server shutdown complete")
	return nil
}
