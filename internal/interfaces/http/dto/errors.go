package dto

import "net/http"

// Error code constants
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeValidation is used when request validation fails
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
)

// Platform error codes, mirroring the adapter error taxonomy
const (
	// ErrCodeNotAuthenticated is used when platform credentials are
	// missing, expired, or rejected
	ErrCodeNotAuthenticated = "ERR_PLATFORM_NOT_AUTHENTICATED"
	// ErrCodeRateLimited is used when the platform throttled the call
	ErrCodeRateLimited = "ERR_PLATFORM_RATE_LIMITED"
	// ErrCodePlatformNotFound is used when the remote resource is gone
	ErrCodePlatformNotFound = "ERR_PLATFORM_NOT_FOUND"
	// ErrCodeTransient is used for retryable transport failures
	ErrCodeTransient = "ERR_PLATFORM_TRANSIENT"
	// ErrCodePermanentRejection is used when the platform rejected the
	// request and a retry cannot help
	ErrCodePermanentRejection = "ERR_PLATFORM_REJECTED"
	// ErrCodeNotSupported is used when the platform lacks the operation
	ErrCodeNotSupported = "ERR_PLATFORM_NOT_SUPPORTED"
	// ErrCodeUnknownPlatform is used for an unmapped platform kind
	ErrCodeUnknownPlatform = "ERR_PLATFORM_UNKNOWN_KIND"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:    http.StatusInternalServerError,
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,
	ErrCodeNotFound:   http.StatusNotFound,

	ErrCodeNotAuthenticated:   http.StatusUnauthorized,
	ErrCodeRateLimited:        http.StatusTooManyRequests,
	ErrCodePlatformNotFound:   http.StatusNotFound,
	ErrCodeTransient:          http.StatusBadGateway,
	ErrCodePermanentRejection: http.StatusUnprocessableEntity,
	ErrCodeNotSupported:       http.StatusUnprocessableEntity,
	ErrCodeUnknownPlatform:    http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code,
// defaulting to 500 for unmapped codes
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
