package server

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/UnknownOlympus/staffapi/internal/lib/logger/sl"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const monitoringReadHeaderTimeout = 5 * time.Second

// NewMonitoringHandler exposes /metrics for the given registry and /healthz backed by a
// database ping.
func NewMonitoringHandler(log *slog.Logger, reg *prometheus.Registry, db DBPinger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		Registry:          reg,
		EnableOpenMetrics: true,
	}))
	mux.Handle("/healthz", NewHealthChecker(db, log))

	return mux
}

// StartMonitoringServer serves metrics and health checks on port until ctx is cancelled.
func StartMonitoringServer(ctx context.Context, log *slog.Logger, reg *prometheus.Registry, db DBPinger, port int) {
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           NewMonitoringHandler(log, reg, db),
		ReadHeaderTimeout: monitoringReadHeaderTimeout,
	}

	if err := serve(ctx, log, srv, "monitoring"); err != nil {
		log.ErrorContext(ctx, "Monitoring server stopped with error", sl.Err(err))
	}
}
