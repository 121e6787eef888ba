package http

import (
	"bytes"
	"encoding/json"
	"net/http"

	"loan-calculator/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON encodes into a buffer first so an encoding failure can still
// be reported as a 500.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	log := logger.FromContext(r.Context())

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		log.ErrorContext(r.Context(), "Error encoding response", logger.FieldError, err)
		status = http.StatusInternalServerError
		buf.Reset()
		_ = json.NewEncoder(&buf).Encode(errorResponse{Error: "internal server error"})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.WarnContext(r.Context(), "Error writing response", logger.FieldError, err)
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	respondJSON(w, r, status, errorResponse{Error: message})
}
