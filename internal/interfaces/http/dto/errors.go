package dto

import "net/http"

// Error codes shared with the domain layer. Handlers translate
// shared.DomainError codes into HTTP status codes through this table.
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeValidationFailure is used when a business invariant is violated
	ErrCodeValidationFailure = "VALIDATION_FAILURE"
	// ErrCodeConflict is used when a conflicting operation is already in flight
	ErrCodeConflict = "CONFLICT"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	// ErrCodeDataUnavailable is used when a storage collaborator fails
	ErrCodeDataUnavailable = "DATA_UNAVAILABLE"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "INVALID_INPUT"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeInternal is used for unexpected server errors
	ErrCodeInternal = "INTERNAL"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeValidationFailure:   http.StatusUnprocessableEntity,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeDataUnavailable:     http.StatusServiceUnavailable,
	ErrCodeInvalidInput:        http.StatusBadRequest,
	ErrCodeBadRequest:          http.StatusBadRequest,
	ErrCodeInternal:            http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
