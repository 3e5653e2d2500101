// Package response provides helpers for writing consistent JSON HTTP
// responses, and the error envelope the client decodes on the other side.
//
// Every error answer from the development backend looks like:
//
//	{ "status": "error", "error": "email: Valid email required" }
//
// Validation failures additionally carry the per-field messages so a
// caller can render them next to the offending inputs:
//
//	{ "status": "error", "error": "...", "fields": { "email": "Valid email required" } }
package response

import (
	"encoding/json"
	"maps"
	"net/http"

	"github.com/aanand-mishra/student-registration/internal/validation"
)

// Response is the standard envelope returned for error cases.
type Response struct {
	Status string            `json:"status"`
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Values of Response.Status.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON sets the content type, writes status and encodes data as the
// body. Headers cannot change after the status is written.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps err in the error envelope. Used for bad bodies and
// storage failures.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ValidationError converts the validation engine's field map into a
// Response. The joined message keeps clients that only read "error"
// informative.
func ValidationError(errs validation.Errors) Response {
	return Response{
		Status: StatusError,
		Error:  errs.Error(),
		Fields: maps.Clone(errs),
	}
}
