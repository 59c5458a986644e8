package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/thread-heaven/storefront-api/internal/application/signup"
	"github.com/thread-heaven/storefront-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OrderEnvelope wraps the checkout response.
type OrderEnvelope struct {
	Success   bool   `json:"success"`
	OrderID   string `json:"orderId"`
	EmailSent bool   `json:"emailSent"`
}

// EmailEnvelope wraps the direct send-email response.
type EmailEnvelope struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// httpError maps domain sentinel errors to HTTP responses. Unexpected faults
// become a generic 500 with no internal detail.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrDuplicatePending),
		errors.Is(err, domain.ErrTokenNotFound),
		errors.Is(err, domain.ErrTokenExpired):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, signup.ErrStoreFull),
		errors.Is(err, domain.ErrEmailNotConfigured):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
