package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/UnknownOlympus/staffapi/internal/config"
)

const shutdownTimeout = 10 * time.Second

// APIServer serves the employee resource until its context is cancelled.
type APIServer struct {
	log        *slog.Logger
	httpServer *http.Server
}

func NewAPIServer(log *slog.Logger, handler http.Handler, cfg config.HTTPConfig) *APIServer {
	return &APIServer{
		log: log,
		httpServer: &http.Server{
			Addr:         cfg.Address,
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
	}
}

// Run blocks until ctx is done or the listener fails, then drains in-flight requests.
func (s *APIServer) Run(ctx context.Context) error {
	return serve(ctx, s.log, s.httpServer, "API")
}

func serve(ctx context.Context, log *slog.Logger, srv *http.Server, name string) error {
	errCh := make(chan error, 1)

	go func() {
		log.InfoContext(ctx, "Starting "+name+" server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("%s server failed: %w", name, err)
		}
		return nil
	case <-ctx.Done():
	}

	log.InfoContext(ctx, "Shutting down "+name+" server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown %s server: %w", name, err)
	}

	log.InfoContext(ctx, name+" server stopped gracefully")

	return nil
}
