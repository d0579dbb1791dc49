package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/staffapi/internal/errs"
	"github.com/UnknownOlympus/staffapi/internal/lib/logger/sl"
	"github.com/UnknownOlympus/staffapi/internal/metrics"
	"github.com/UnknownOlympus/staffapi/internal/middleware"
)

const messageInternal = "Internal Server Error"

// ErrorReporter turns any failure raised while serving a request into a JSON response.
// Validation failures become 400 with the client-facing message and an oversized body 413.
// Everything else is logged in full and answered with a generic 500 so driver details never leak.
type ErrorReporter struct {
	log     *slog.Logger
	metrics *metrics.Metrics
}

func NewErrorReporter(log *slog.Logger, metrics *metrics.Metrics) *ErrorReporter {
	return &ErrorReporter{log: log, metrics: metrics}
}

func (e *ErrorReporter) Report(w http.ResponseWriter, r *http.Request, err error) {
	log := e.log.With(
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.GetRequestID(r.Context()),
	)

	if errors.Is(err, errs.ErrBodyTooLarge) {
		e.metrics.Errors.WithLabelValues(metrics.ErrorKindValidation).Inc()
		log.WarnContext(r.Context(), "Rejected request", sl.Err(err))
		WriteJSON(w, r, e.log, http.StatusRequestEntityTooLarge, ErrorResponse{Error: err.Error()})
		return
	}

	var validationErr *errs.ValidationError
	if errors.As(err, &validationErr) {
		e.metrics.Errors.WithLabelValues(metrics.ErrorKindValidation).Inc()
		log.WarnContext(r.Context(), "Rejected request", "message", validationErr.Message)
		WriteJSON(w, r, e.log, http.StatusBadRequest, ErrorResponse{
			Error:  validationErr.Message,
			Fields: validationErr.Fields,
		})
		return
	}

	var persistenceErr *errs.PersistenceError
	if errors.As(err, &persistenceErr) {
		e.metrics.Errors.WithLabelValues(metrics.ErrorKindPersistence).Inc()
		log.ErrorContext(r.Context(), "Database operation failed",
			sl.Err(err),
			"sqlstate", persistenceErr.SQLState(),
			"constraint_violation", persistenceErr.IsConstraintViolation(),
		)
	} else {
		e.metrics.Errors.WithLabelValues(metrics.ErrorKindInternal).Inc()
		log.ErrorContext(r.Context(), "Unexpected error", sl.Err(err))
	}

	WriteJSON(w, r, e.log, http.StatusInternalServerError, ErrorResponse{Error: messageInternal})
}
