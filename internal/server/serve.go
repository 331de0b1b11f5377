package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Serve listens on cfg.Address and serves handler until ctx is cancelled, then
// shuts down gracefully within cfg's shutdown timeout.
func Serve(ctx context.Context, logger *zap.Logger, cfg *Config, handler http.Handler) error {
	listener, err := net.Listen("tcp", cfg.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Address, err)
	}
	return ServeListener(ctx, logger, cfg, listener, handler)
}

// ServeListener is Serve on an already open listener.
func ServeListener(ctx context.Context, logger *zap.Logger, cfg *Config, listener net.Listener, handler http.Handler) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	errorLog, err := zap.NewStdLogAt(logger.With(zap.String("op", "server.http")), zapcore.ErrorLevel)
	if err != nil {
		return fmt.Errorf("failed to create server error log: %w", err)
	}

	srv := &http.Server{
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeoutDuration(),
		WriteTimeout: cfg.WriteTimeoutDuration(),
		ErrorLog:     errorLog,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server",
			zap.String("op", "server.Serve"),
			zap.String("address", listener.Addr().String()),
		)
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down HTTP server",
		zap.String("op", "server.Serve"),
	)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeoutDuration())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	return nil
}
