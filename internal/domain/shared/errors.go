package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrValidationFailure   = NewDomainError("VALIDATION_FAILURE", "Business invariant violated")
	ErrConflict            = NewDomainError("CONFLICT", "Conflicting operation already in progress")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrDataUnavailable     = NewDomainError("DATA_UNAVAILABLE", "Storage collaborator failed to return a snapshot")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
)

// IsRetryable reports whether an error represents a transient storage
// failure that the caller may safely retry. A DataUnavailable error must
// never be interpreted as an empty dataset.
func IsRetryable(err error) bool {
	de, ok := err.(*DomainError)
	return ok && de.Code == ErrDataUnavailable.Code
}
