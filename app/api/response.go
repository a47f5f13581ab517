// Package api holds the JSON response helpers shared by the HTTP handlers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/peakhub/storefront/logger"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.WithContext(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Failed to encode response")
	}
}

// Error writes {"error": msg} with the given status code.
func Error(w http.ResponseWriter, r *http.Request, status int, msg string) {
	JSON(w, r, status, ErrorResponse{Error: msg})
}

// Decode reads a JSON request body into dst.
func Decode(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
