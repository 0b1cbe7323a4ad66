package platform

import "errors"

// Normalized adapter error taxonomy. Adapters translate vendor-specific
// failure shapes into exactly one of these so callers never match on
// vendor error strings.
var (
	// ErrNotAuthenticated indicates the session or token is missing or expired
	ErrNotAuthenticated = errors.New("platform: not authenticated")
	// ErrRateLimited indicates the platform throttled the request
	ErrRateLimited = errors.New("platform: rate limited")
	// ErrNotFound indicates the requested remote resource does not exist
	ErrNotFound = errors.New("platform: resource not found")
	// ErrTransientNetwork indicates a retryable network-level failure,
	// including adapter timeouts
	ErrTransientNetwork = errors.New("platform: transient network error")
	// ErrPermanentRejection indicates the platform rejected the request
	// and a retry with the same input cannot succeed
	ErrPermanentRejection = errors.New("platform: request permanently rejected")
)

// Orchestration and registry errors
var (
	// ErrUnknownKind indicates an unrecognized platform kind. This is a
	// configuration error: it signals a caller or programmer bug, is never
	// retried, and must not occur with a validated Account.
	ErrUnknownKind = errors.New("platform: unknown platform kind")
	// ErrNotSupported indicates the platform does not support the
	// requested capability; the adapter is never called in that case
	ErrNotSupported = errors.New("platform: operation not supported")
	// ErrAccountNotFound indicates the local account does not exist
	ErrAccountNotFound = errors.New("platform: account not found")
)

// IsTransient reports whether the error is worth retrying by an outer
// caller. This layer itself performs no retries.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransientNetwork) || errors.Is(err, ErrRateLimited)
}
