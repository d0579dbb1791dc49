package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Error kinds reported by the HTTP error reporter.
const (
	ErrorKindValidation  = "validation"
	ErrorKindPersistence = "persistence"
	ErrorKindInternal    = "internal"
)

// Metrics holds the various metrics used for monitoring the application.
// It includes request counters and latency histograms for the HTTP API,
// a counter of reported errors by kind, a counter of applied mutations
// and a histogram for database query duration.
type Metrics struct {
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Errors          *prometheus.CounterVec
	Mutations       *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance with the provided Registerer.
//
// Parameters:
//   - reg: A prometheus.Registerer used to register the metrics.
//
// Returns:
//   - A pointer to the newly created Metrics instance.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		Requests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "staffapi_http_requests_total",
			Help: "Total number of HTTP requests served by the employee API.",
		}, []string{"method", "route", "status"}),
		RequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "staffapi_http_request_duration_seconds",
			Help:    "Duration of HTTP requests served by the employee API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Errors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "staffapi_http_errors_total",
			Help: "Total number of failed requests by error kind.",
		}, []string{"kind"}),
		Mutations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "staffapi_employee_mutations_total",
			Help: "Total number of applied employee mutations.",
		}, []string{"operation"}), // operation: 'create', 'update', 'delete'
		DBQueryDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "staffapi_db_query_duration_seconds",
			Help:    "Duration of database queries.",
			Buckets: prometheus.DefBuckets,
		}, []string{"query_type"}), // query_type: 'list_employees', 'create_employee'
	}

	metrics.Errors.WithLabelValues(ErrorKindValidation)
	metrics.Errors.WithLabelValues(ErrorKindPersistence)
	metrics.Errors.WithLabelValues(ErrorKindInternal)

	return metrics
}
