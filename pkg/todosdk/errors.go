package todosdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error codes shared by the server and this SDK.
const (
	ErrorCodeValidation         = "validation_error"
	ErrorCodeConflict           = "conflict"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeMissingToken       = "missing_token"
	ErrorCodeInvalidToken       = "invalid_token"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeServerError        = "server_error"
)

// APIError is the error envelope every non-2xx response carries. It
// implements the error interface and is used both by the server (to write
// HTTP responses) and by the SDK client (to represent errors).
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code (e.g. "invalid_credentials")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

var (
	// ErrInvalidJSONBody is returned when the request body cannot be decoded.
	ErrInvalidJSONBody = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeValidation,
		Description: "invalid JSON body",
	}

	// ErrInvalidCredentials is deliberately identical for unknown users and
	// wrong passwords so callers cannot enumerate accounts.
	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid username or email or password",
	}

	// ErrMissingRefreshToken is returned when the refresh endpoint is called
	// without a token.
	ErrMissingRefreshToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeMissingToken,
		Description: "refresh token is missing",
	}

	// ErrInvalidRefreshToken covers unknown, superseded, expired and forged
	// refresh tokens alike.
	ErrInvalidRefreshToken = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeInvalidToken,
		Description: "invalid refresh token",
	}

	// ErrMissingAuthToken is returned by the request authorizer when no
	// bearer token is present.
	ErrMissingAuthToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeMissingToken,
		Description: "authorization token is missing",
	}

	// ErrInvalidAuthToken collapses signature failure and expiry into one
	// outward status.
	ErrInvalidAuthToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "invalid token",
	}

	// ErrTodoNotFound is returned when a todo does not exist or belongs to
	// another user.
	ErrTodoNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "todo not found",
	}

	// ErrServerError is the opaque response for any underlying store fault.
	// Detail is logged server-side only.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// NewValidationError builds a 400 validation_error with the given description.
func NewValidationError(description string) *APIError {
	return &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeValidation,
		Description: description,
	}
}

// NewConflictError builds a 400 conflict error. Username and email conflicts
// carry distinguishable descriptions on purpose.
func NewConflictError(description string) *APIError {
	return &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeConflict,
		Description: description,
	}
}

// NewMissingFieldError builds the 400 returned by the required-field
// middleware, naming the first missing body field.
func NewMissingFieldError(field string) *APIError {
	return &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeValidation,
		Description: field + " is required",
	}
}
