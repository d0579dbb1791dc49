package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/UnknownOlympus/staffapi/internal/errs"
	"github.com/UnknownOlympus/staffapi/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

const maxBodyBytes = 1 << 20

// Messages used when the request body is rejected.
const (
	MessageInvalidBody      = "invalid request body"
	MessageValidationFailed = "Validation failed"
)

// ErrorReporter writes the response for a failed request.
type ErrorReporter interface {
	Report(w http.ResponseWriter, r *http.Request, err error)
}

// ValidateEmployee rejects create and update payloads that are not a well-formed
// EmployeeInput before the handler runs. Accepted requests reach the next handler with
// the body restored byte for byte.
func ValidateEmployee(reporter ErrorReporter) mux.MiddlewareFunc {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
			if err != nil {
				if errors.As(err, new(*http.MaxBytesError)) {
					reporter.Report(w, r, errs.ErrBodyTooLarge)
					return
				}
				reporter.Report(w, r, errs.NewValidationError(MessageInvalidBody))
				return
			}

			var input models.EmployeeInput
			if err = json.Unmarshal(body, &input); err != nil {
				reporter.Report(w, r, errs.NewValidationError(MessageInvalidBody))
				return
			}

			if err = validate.Struct(input); err != nil {
				reporter.Report(w, r, toValidationError(err))
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(body))
			next.ServeHTTP(w, r)
		})
	}
}

func toValidationError(err error) *errs.ValidationError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errs.NewValidationError(MessageValidationFailed)
	}

	fields := make([]errs.FieldError, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		fields = append(fields, errs.FieldError{
			Field: fieldErr.Field(),
			Error: fieldMessage(fieldErr),
		})
	}

	return errs.NewValidationError(MessageValidationFailed, fields...)
}

func fieldMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return fmt.Sprintf("must not exceed %s characters", fieldErr.Param())
	default:
		if fieldErr.Param() != "" {
			return fmt.Sprintf("%s: %s:%s", fieldErr.Field(), fieldErr.Tag(), fieldErr.Param())
		}
		return fmt.Sprintf("%s: %s", fieldErr.Field(), fieldErr.Tag())
	}
}

// jsonFieldName makes validator report the JSON name of a field instead of the Go name.
func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0] //nolint:mnd // name and options
	if name == "-" {
		return ""
	}

	return name
}
