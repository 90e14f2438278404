package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/iota-uz/authgate/pkg/serrors"
)

// ErrorEnvelope standardizes JSON error responses for API namespaces.
type ErrorEnvelope struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, code, message string, meta map[string]string) error {
	return WriteJSON(w, status, &ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}

// WriteServiceError renders a coded service error with the given status.
// Anything without a code is masked as an internal error; repository wrap
// chains must not leak to callers.
func WriteServiceError(w http.ResponseWriter, status int, err error) error {
	var coded *serrors.Error
	if errors.As(err, &coded) {
		return WriteError(w, status, coded.Code, coded.Message, nil)
	}
	return WriteError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error", nil)
}
