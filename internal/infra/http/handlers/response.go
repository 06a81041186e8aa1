package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/leadflow/internal/usecase"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps the store's error taxonomy onto HTTP: unknown lead is
// 404, bad input 400, everything else 500. The body always carries the
// {error} shape the frontend toasts.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case usecase.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case usecase.IsValidation(err):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case usecase.IsDomainError(err):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}
