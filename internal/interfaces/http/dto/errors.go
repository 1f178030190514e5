package dto

import "net/http"

// Error codes. Domain error codes are used as is.
const (
	ErrCodeInternal            = "INTERNAL_ERROR"
	ErrCodeBadRequest          = "BAD_REQUEST"
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeInvalidInput        = "INVALID_INPUT"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeDuplicateRequest    = "DUPLICATE_REQUEST"
	ErrCodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	ErrCodeRateLimited         = "RATE_LIMIT_EXCEEDED"
	ErrCodeRequestTooLarge     = "REQUEST_TOO_LARGE"
	ErrCodeUnavailable         = "SERVICE_UNAVAILABLE"
	ErrCodePrintingDisabled    = "PRINTING_DISABLED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,

	ErrCodeNotFound: http.StatusNotFound,

	// Conflicts -> 409
	ErrCodeDuplicateRequest:    http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	// Optional integrations that are switched off -> 503
	ErrCodeUnavailable:      http.StatusServiceUnavailable,
	ErrCodePrintingDisabled: http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
