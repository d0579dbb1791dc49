package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/staffapi/internal/errs"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields []errs.FieldError `json:"fields,omitempty"`
}

// MessageResponse is the body of a successful request that returns no entity.
type MessageResponse struct {
	Message string `json:"message"`
}

// WriteJSON encodes payload as the JSON body of a response with the given status.
func WriteJSON(w http.ResponseWriter, r *http.Request, log *slog.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.ErrorContext(r.Context(), "Failed to write response", "error", err)
	}
}

// DecodeJSON reads the request body into dst. Unknown members are ignored.
func DecodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
