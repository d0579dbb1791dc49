package employees

import (
	"context"
	"log/slog"

	"github.com/UnknownOlympus/staffapi/internal/errs"
	"github.com/UnknownOlympus/staffapi/internal/lib/logger/sl"
	"github.com/UnknownOlympus/staffapi/internal/metrics"
	"github.com/UnknownOlympus/staffapi/internal/models"
	"github.com/UnknownOlympus/staffapi/internal/repository"
)

// ErrMessageFieldsRequired is the message returned when a create request misses a field.
const ErrMessageFieldsRequired = "All fields are required"

// Service is the business-rule boundary between the HTTP handlers and the repository.
// Everything except the create presence check is passed straight through, failures included.
type Service struct {
	log     *slog.Logger
	repo    repository.EmployeeRepoIface
	metrics *metrics.Metrics
}

func NewService(log *slog.Logger, repo repository.EmployeeRepoIface, metrics *metrics.Metrics) *Service {
	return &Service{log: log, repo: repo, metrics: metrics}
}

func (s *Service) initLogger(opn string) *slog.Logger {
	return sl.Op(s.log, opn, "employee")
}

// ListEmployees returns all stored employees.
func (s *Service) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	return s.repo.ListEmployees(ctx)
}

// GetEmployee returns the employee with the given id; found is false when there is none.
func (s *Service) GetEmployee(ctx context.Context, id int) (models.Employee, bool, error) {
	return s.repo.GetEmployeeByID(ctx, id)
}

// CreateEmployee stores a new employee. Name, email and position must all be non-empty,
// otherwise a validation error is returned and the repository is not called.
func (s *Service) CreateEmployee(ctx context.Context, input models.EmployeeInput) (models.Employee, error) {
	const opn = "Employee.Create"
	log := s.initLogger(opn)

	if !hasRequiredFields(input) {
		log.DebugContext(ctx, "rejected employee with missing fields")
		return models.Employee{}, errs.NewValidationError(ErrMessageFieldsRequired)
	}

	employee, err := s.repo.CreateEmployee(ctx, input.Name, input.Email, input.Position)
	if err != nil {
		return models.Employee{}, err
	}

	s.metrics.Mutations.WithLabelValues("create").Inc()
	log.InfoContext(ctx, "employee created", "id", employee.ID)

	return employee, nil
}

// UpdateEmployee replaces name, email and position of the employee with the given id.
func (s *Service) UpdateEmployee(ctx context.Context, id int, input models.EmployeeInput) (models.Employee, error) {
	employee, err := s.repo.UpdateEmployee(ctx, id, input.Name, input.Email, input.Position)
	if err != nil {
		return models.Employee{}, err
	}

	s.metrics.Mutations.WithLabelValues("update").Inc()
	s.initLogger("Employee.Update").InfoContext(ctx, "employee updated", "id", id)

	return employee, nil
}

// DeleteEmployee removes the employee with the given id.
func (s *Service) DeleteEmployee(ctx context.Context, id int) error {
	if err := s.repo.DeleteEmployee(ctx, id); err != nil {
		return err
	}

	s.metrics.Mutations.WithLabelValues("delete").Inc()
	s.initLogger("Employee.Delete").InfoContext(ctx, "employee deleted", "id", id)

	return nil
}

func hasRequiredFields(input models.EmployeeInput) bool {
	return input.Name != "" && input.Email != "" && input.Position != ""
}
