// Package errs defines the failure kinds shared by the store, the service and the HTTP layer.
//
// A ValidationError is the client's fault and is reported as 400. A PersistenceError wraps
// anything the database driver returned and is reported as 500. Absence of a row is not an
// error at all and is signalled by the store through a found flag.
package errs

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// integrityConstraintClass is the SQLSTATE class for integrity constraint violations.
const integrityConstraintClass = "23"

// ErrBodyTooLarge is returned when a request body exceeds the accepted size.
var ErrBodyTooLarge = errors.New("request body too large")

// FieldError represents a field-level validation error.
//
//	{ "field": "email", "error": "must be a valid email address" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ValidationError describes malformed or incomplete client input.
type ValidationError struct {
	Message string
	Fields  []FieldError
}

// NewValidationError returns a ValidationError with optional field details.
func NewValidationError(message string, fields ...FieldError) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// PersistenceError wraps a failure returned by the database for the named operation.
type PersistenceError struct {
	Op  string
	Err error
}

// Persistence wraps err as a PersistenceError for the operation op.
func Persistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

func (e *PersistenceError) Error() string {
	return "failed to " + e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// SQLState returns the Postgres error code of the cause, or an empty string when the
// cause did not come from the server (connectivity, context cancellation, scan errors).
func (e *PersistenceError) SQLState() string {
	var pgErr *pgconn.PgError
	if errors.As(e.Err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

// IsConstraintViolation reports whether the cause is an integrity constraint violation
// (unique, not null, foreign key, check).
func (e *PersistenceError) IsConstraintViolation() bool {
	return strings.HasPrefix(e.SQLState(), integrityConstraintClass)
}
