package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"lumina/app/assistant"
	"lumina/app/repositories"
	"lumina/app/services"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// ErrorBody is the JSON shape of every API error response.
type ErrorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Helper functions for consistent response handling

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func sendError(w http.ResponseWriter, status int, message string) {
	sendJSON(w, status, ErrorBody{Message: message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

// writeServiceError maps service errors to status codes. Backend details
// are logged, never returned to the client.
func writeServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var verr *services.ValidationError
	var genErr *assistant.GenerationError
	switch {
	case errors.As(err, &verr):
		sendJSON(w, http.StatusBadRequest, ErrorBody{Message: "Validation failed", Errors: verr.Fields})
	case errors.Is(err, repositories.ErrNotFound):
		sendError(w, http.StatusNotFound, "Post not found")
	case errors.As(err, &genErr):
		sendError(w, http.StatusBadGateway, "Draft generation failed, please try again")
	default:
		logger.Error("request failed", "error", err)
		sendError(w, http.StatusInternalServerError, "Internal server error")
	}
}
