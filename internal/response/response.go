// Package response provides JSON response helpers for API handlers.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/atinyakov/RecipeShare/internal/apperrors"
)

// MessageBody is the body of every error response and of the plain
// acknowledgement responses.
type MessageBody struct {
	Message string `json:"message"`
}

// JSON writes data as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// OK writes a 200 OK response.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Created writes a 201 Created response.
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// Message writes {"message": msg} with the given status code.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, MessageBody{Message: msg})
}

// Error writes err as {"message": ...} with the status of its kind. Errors
// outside the apperrors taxonomy are reported as a generic server error.
func Error(w http.ResponseWriter, err error) {
	apiErr := apperrors.AsAPIError(err)
	Message(w, apiErr.StatusCode, apiErr.Message)
}
