package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"rink-finder-service/internal/domain"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// statusFor maps a query error kind to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrFormat):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrEmptyDataset), errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
