package platformclient

import (
	"fmt"
	"net/http"

	"github.com/ofauto/backend/internal/domain/platform"
)

// maxResponseSize is the maximum allowed platform API response size (10MB)
const maxResponseSize = 10 * 1024 * 1024

// normalizeHTTPStatus maps an HTTP response status to the normalized error
// taxonomy. A nil return means the status is not an error.
func normalizeHTTPStatus(status int) error {
	switch {
	case status < 400:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: HTTP %d", platform.ErrNotAuthenticated, status)
	case status == http.StatusNotFound || status == http.StatusGone:
		return fmt.Errorf("%w: HTTP %d", platform.ErrNotFound, status)
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: HTTP %d", platform.ErrRateLimited, status)
	case status >= 500:
		return fmt.Errorf("%w: HTTP %d", platform.ErrTransientNetwork, status)
	default:
		return fmt.Errorf("%w: HTTP %d", platform.ErrPermanentRejection, status)
	}
}

// normalizeTransportError maps transport-level failures, including adapter
// timeouts and cancellations, to the transient bucket: the request may have
// never reached the platform.
func normalizeTransportError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", platform.ErrTransientNetwork, err)
}
