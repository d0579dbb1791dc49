package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/staffapi/internal/metrics"
	"github.com/UnknownOlympus/staffapi/internal/models"
)

type Repository struct {
	db      Database
	log     *slog.Logger
	metrics *metrics.Metrics
}

// EmployeeRepoIface represents the interface for interacting with employee data in the repository.
type EmployeeRepoIface interface {
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	GetEmployeeByID(ctx context.Context, identifier int) (models.Employee, bool, error)
	CreateEmployee(ctx context.Context, name, email, position string) (models.Employee, error)
	UpdateEmployee(ctx context.Context, identifier int, name, email, position string) (models.Employee, error)
	DeleteEmployee(ctx context.Context, identifier int) error
}

func NewEmployeeRepository(db Database, log *slog.Logger, metrics *metrics.Metrics) EmployeeRepoIface {
	return &Repository{db: db, log: log, metrics: metrics}
}

// observe records the duration of a query started at startTime.
// Intended use: defer r.observe("query_type", time.Now()).
func (r *Repository) observe(queryType string, startTime time.Time) {
	r.metrics.DBQueryDuration.WithLabelValues(queryType).Observe(time.Since(startTime).Seconds())
}
