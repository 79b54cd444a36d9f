// Package httpx provides JSON request/response utilities for the HTTP layer.
package httpx

import (
	"encoding/json"
	"net/http"
)

// MessageResponse is the body shape shared by all plain-message endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Message sends a `{"message": ...}` body with the given status code.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, MessageResponse{Message: message})
}

// Internal sends a generic 500 response. The underlying failure is expected
// to be logged by the caller; no internal detail reaches the client.
func Internal(w http.ResponseWriter) {
	Message(w, http.StatusInternalServerError, "internal server error")
}

// DecodeJSON decodes a JSON request body into the target struct.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}
