package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/wonny/runboard/internal/contracts"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// statusFor maps engine errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, contracts.ErrInvalidMetricKind),
		errors.Is(err, contracts.ErrInvalidCategoryKind),
		errors.Is(err, contracts.ErrInvalidUnit):
		return http.StatusBadRequest
	case errors.Is(err, contracts.ErrUnknownRecord),
		errors.Is(err, contracts.ErrUnknownGroup),
		errors.Is(err, contracts.ErrUnknownDataset):
		return http.StatusNotFound
	case errors.Is(err, contracts.ErrSchema):
		return http.StatusUnprocessableEntity
	case errors.Is(err, contracts.ErrNoGeneration):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondEngineError writes err with its mapped status.
// Internal errors are not echoed to the client.
func respondEngineError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		respondError(w, status, "Internal server error")
		return
	}
	respondError(w, status, err.Error())
}

// pathVar returns the decoded route variable name.
// The router matches on the encoded path, so values arrive escaped.
func pathVar(r *http.Request, name string) string {
	raw := mux.Vars(r)[name]
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
