// Package apperrors defines the error taxonomy shared by services and HTTP
// handlers, along with the HTTP status each kind maps to.
package apperrors

import (
	"errors"
	"net/http"
)

// APIError is an error with a stable code, a client-safe message and the
// HTTP status it is reported with.
type APIError struct {
	Code       string
	Message    string
	StatusCode int
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// Is reports whether target is an APIError of the same kind.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithMessage returns a copy of the error with a custom message.
func (e *APIError) WithMessage(message string) *APIError {
	return &APIError{
		Code:       e.Code,
		Message:    message,
		StatusCode: e.StatusCode,
	}
}

// Standard error definitions.
var (
	// ErrValidation is returned for malformed or missing input.
	ErrValidation = &APIError{
		Code:       "validation",
		Message:    "Invalid request",
		StatusCode: http.StatusBadRequest,
	}

	// ErrInvalidCredentials is returned on a login mismatch. It is a 400 so
	// the response does not reveal which of email or password was wrong.
	ErrInvalidCredentials = &APIError{
		Code:       "invalid_credentials",
		Message:    "Invalid credentials",
		StatusCode: http.StatusBadRequest,
	}

	// ErrMissingToken is returned when a bearer token is required but absent.
	ErrMissingToken = &APIError{
		Code:       "missing_token",
		Message:    "No token, authorization denied",
		StatusCode: http.StatusUnauthorized,
	}

	// ErrInvalidToken is returned for malformed tokens or bad signatures.
	ErrInvalidToken = &APIError{
		Code:       "invalid_token",
		Message:    "Invalid token",
		StatusCode: http.StatusUnauthorized,
	}

	// ErrExpiredToken is returned for well-signed tokens past their expiry.
	ErrExpiredToken = &APIError{
		Code:       "expired_token",
		Message:    "Token expired",
		StatusCode: http.StatusUnauthorized,
	}

	// ErrUnknownPrincipal is returned when a valid token names a user that
	// no longer exists.
	ErrUnknownPrincipal = &APIError{
		Code:       "unknown_principal",
		Message:    "User not found",
		StatusCode: http.StatusUnauthorized,
	}

	// ErrForbidden is returned on an ownership mismatch. The status is 401,
	// not 403, and clients depend on that.
	ErrForbidden = &APIError{
		Code:       "forbidden",
		Message:    "You are not authorized to perform this action",
		StatusCode: http.StatusUnauthorized,
	}

	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = &APIError{
		Code:       "not_found",
		Message:    "Not found",
		StatusCode: http.StatusNotFound,
	}

	// ErrInvalidID is returned when a path identifier is not well formed.
	ErrInvalidID = &APIError{
		Code:       "invalid_id",
		Message:    "Invalid ID format",
		StatusCode: http.StatusBadRequest,
	}

	// ErrConflict is returned when a unique attribute is already taken.
	ErrConflict = &APIError{
		Code:       "conflict",
		Message:    "Resource already exists",
		StatusCode: http.StatusBadRequest,
	}

	// ErrInternal is returned for unexpected store or signing failures.
	ErrInternal = &APIError{
		Code:       "internal",
		Message:    "Server error",
		StatusCode: http.StatusInternalServerError,
	}
)

// AsAPIError converts any error to an APIError. Errors outside the taxonomy
// become ErrInternal so that their details never reach the client.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return ErrInternal
}
