package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/UnknownOlympus/staffapi/internal/metrics"
	"github.com/gorilla/mux"
)

const unmatchedRoute = "unmatched"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// Logging logs every request once it completes and records request metrics labelled
// by the matched route template.
func Logging(log *slog.Logger, appMetrics *metrics.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startTime := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			duration := time.Since(startTime)
			route := routeTemplate(r)
			appMetrics.Requests.WithLabelValues(r.Method, route, strconv.Itoa(recorder.status)).Inc()
			appMetrics.RequestDuration.WithLabelValues(r.Method, route).Observe(duration.Seconds())

			log.InfoContext(r.Context(), "request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"route", route,
				"status", recorder.status,
				"duration", duration.String(),
				"request_id", GetRequestID(r.Context()),
			)
		})
	}
}

func routeTemplate(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return unmatchedRoute
	}

	template, err := route.GetPathTemplate()
	if err != nil {
		return unmatchedRoute
	}

	return template
}
