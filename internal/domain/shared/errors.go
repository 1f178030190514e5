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

// Is reports whether target carries the same error code, so a specific
// error such as "bill not found" still matches ErrNotFound with errors.Is.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
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
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Document was modified by another writer")
	ErrDuplicate           = NewDomainError("DUPLICATE_REQUEST", "Request was already processed")
)

// NotFound returns an ErrNotFound-compatible error with a specific message
func NotFound(message string) *DomainError {
	return NewDomainError(ErrNotFound.Code, message)
}

// InvalidInput returns an ErrInvalidInput-compatible error with a specific message
func InvalidInput(message string) *DomainError {
	return NewDomainError(ErrInvalidInput.Code, message)
}
