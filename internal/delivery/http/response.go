package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/azizikri/startup-deals/internal/domain"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// handleError maps domain errors onto HTTP. Anything unrecognised is logged
// and reported without detail.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", reason(err))
	case errors.Is(err, domain.ErrAlreadyClaimed):
		writeError(w, http.StatusBadRequest, "ALREADY_CLAIMED", domain.ErrAlreadyClaimed.Error())
	case errors.Is(err, domain.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", domain.ErrUnauthenticated.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", domain.ErrInvalidCredentials.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "FORBIDDEN", domain.ErrForbidden.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrEmailTaken):
		writeError(w, http.StatusConflict, "EMAIL_TAKEN", domain.ErrEmailTaken.Error())
	case errors.Is(err, context.DeadlineExceeded):
		log.Printf("%s %s timed out: %v", r.Method, r.URL.Path, err)
		writeError(w, http.StatusGatewayTimeout, "TIMEOUT", "request timed out")
	default:
		log.Printf("%s %s failed: %v", r.Method, r.URL.Path, err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// reason drops the "invalid input: " prefix so clients see only the cause.
func reason(err error) string {
	msg := err.Error()
	if trimmed := strings.TrimPrefix(msg, domain.ErrInvalidInput.Error()+": "); trimmed != "" {
		return trimmed
	}
	return msg
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		return domain.InvalidInput("invalid request body")
	}
	return nil
}
