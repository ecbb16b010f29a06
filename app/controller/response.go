package controller

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"wear-simulator/placement"
	"wear-simulator/repository"
	"wear-simulator/service"
)

// writeJSON encodes v as the response body
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ Error encoding response: %v", err)
	}
}

// statusForError maps service and repository errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrAssetNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, placement.ErrUnknownViewSide):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrTintDisabled):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// writeError logs err under op and writes the mapped status
func writeError(w http.ResponseWriter, op string, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		log.Printf("❌ %s: %v", op, err)
	} else {
		log.Printf("⚠️  %s: %v", op, err)
	}
	http.Error(w, err.Error(), status)
}

// requireMethod rejects any method other than method
func requireMethod(w http.ResponseWriter, r *http.Request, op, method string) bool {
	if r.Method != method {
		log.Printf("❌ %s: Method not allowed: %s", op, r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}
