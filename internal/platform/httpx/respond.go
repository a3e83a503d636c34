// Package httpx provides JSON response utilities for the API boundary.
package httpx

import (
	"encoding/json"
	"net/http"
)

// MessageBody is the uniform error payload shape. Messages are the
// user-facing Vietnamese strings the client renders in toasts.
type MessageBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Message sends a message-only JSON body.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, MessageBody{Message: message})
}

// ValidationError sends a 400 with field-level errors attached.
func ValidationError(w http.ResponseWriter, message string, fields map[string]string) {
	JSON(w, http.StatusBadRequest, MessageBody{Message: message, Errors: fields})
}

// DecodeJSON decodes the request body into target.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}
