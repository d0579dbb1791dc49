package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/UnknownOlympus/staffapi/internal/errs"
	"github.com/UnknownOlympus/staffapi/internal/models"
	"github.com/gorilla/mux"
)

const (
	messageNotFound        = "Employee not found"
	messageDeleted         = "Employee deleted"
	messageInvalidID       = "invalid employee id"
	messageInvalidBody     = "invalid request body"
	employeeIDPathVariable = "id"
)

// EmployeeService is the set of record operations the handlers depend on.
type EmployeeService interface {
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	GetEmployee(ctx context.Context, id int) (models.Employee, bool, error)
	CreateEmployee(ctx context.Context, input models.EmployeeInput) (models.Employee, error)
	UpdateEmployee(ctx context.Context, id int, input models.EmployeeInput) (models.Employee, error)
	DeleteEmployee(ctx context.Context, id int) error
}

// EmployeeHandler serves the employee resource.
type EmployeeHandler struct {
	log      *slog.Logger
	service  EmployeeService
	reporter *ErrorReporter
}

func NewEmployeeHandler(log *slog.Logger, service EmployeeService, reporter *ErrorReporter) *EmployeeHandler {
	return &EmployeeHandler{log: log, service: service, reporter: reporter}
}

// List responds 200 with every stored employee, or [] when there are none.
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.service.ListEmployees(r.Context())
	if err != nil {
		h.reporter.Report(w, r, err)
		return
	}

	WriteJSON(w, r, h.log, http.StatusOK, employees)
}

// Get responds 200 with the employee, or 404 when no row has the requested id.
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := employeeID(r)
	if err != nil {
		h.reporter.Report(w, r, err)
		return
	}

	employee, found, err := h.service.GetEmployee(r.Context(), id)
	if err != nil {
		h.reporter.Report(w, r, err)
		return
	}
	if !found {
		WriteJSON(w, r, h.log, http.StatusNotFound, ErrorResponse{Error: messageNotFound})
		return
	}

	WriteJSON(w, r, h.log, http.StatusOK, employee)
}

// Create responds 201 with the stored employee including its assigned id.
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.EmployeeInput
	if err := DecodeJSON(r, &input); err != nil {
		h.reporter.Report(w, r, errs.NewValidationError(messageInvalidBody))
		return
	}

	employee, err := h.service.CreateEmployee(r.Context(), input)
	if err != nil {
		h.reporter.Report(w, r, err)
		return
	}

	WriteJSON(w, r, h.log, http.StatusCreated, employee)
}

// Update responds 200 with the id from the path and the submitted fields. A missing id is
// not reported: nothing is changed and the same echo is returned.
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := employeeID(r)
	if err != nil {
		h.reporter.Report(w, r, err)
		return
	}

	var input models.EmployeeInput
	if err = DecodeJSON(r, &input); err != nil {
		h.reporter.Report(w, r, errs.NewValidationError(messageInvalidBody))
		return
	}

	employee, err := h.service.UpdateEmployee(r.Context(), id, input)
	if err != nil {
		h.reporter.Report(w, r, err)
		return
	}

	WriteJSON(w, r, h.log, http.StatusOK, employee)
}

// Delete responds 200 whether or not a row was removed.
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := employeeID(r)
	if err != nil {
		h.reporter.Report(w, r, err)
		return
	}

	if err = h.service.DeleteEmployee(r.Context(), id); err != nil {
		h.reporter.Report(w, r, err)
		return
	}

	WriteJSON(w, r, h.log, http.StatusOK, MessageResponse{Message: messageDeleted})
}

// employeeID parses the {id} path variable. Ids are int4 in the database, so anything
// outside that range is rejected the same way as a non-numeric value.
func employeeID(r *http.Request) (int, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[employeeIDPathVariable], 10, 32)
	if err != nil {
		return 0, errs.NewValidationError(messageInvalidID)
	}

	return int(id), nil
}
