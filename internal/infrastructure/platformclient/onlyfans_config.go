package platformclient

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"
)

// OnlyFansConfig holds configuration for the OnlyFans session-emulation client
type OnlyFansConfig struct {
	// SessionCookie is the "sess" cookie value from an authenticated browser session
	SessionCookie string
	// BcToken is the x-bc browser token paired with the session
	BcToken string
	// UserID is the numeric OnlyFans user id of the account
	UserID string
	// UserAgent must match the browser the session was created with
	UserAgent string
	// ProxyURL routes all traffic through a proxy when non-empty
	ProxyURL string
	// APIBaseURL is the API endpoint base
	APIBaseURL string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// OnlyFansAPIURL is the production API endpoint base
const OnlyFansAPIURL = "https://onlyfans.com/api2/v2"

// Errors for OnlyFans configuration
var (
	ErrOnlyFansMissingSession   = errors.New("onlyfans: session cookie is required")
	ErrOnlyFansMissingBcToken   = errors.New("onlyfans: x-bc token is required")
	ErrOnlyFansMissingUserID    = errors.New("onlyfans: user id is required")
	ErrOnlyFansMissingUserAgent = errors.New("onlyfans: user agent is required")
)

// NewOnlyFansConfig creates a new OnlyFans configuration with defaults
func NewOnlyFansConfig(sessionCookie, bcToken, userID, userAgent string) *OnlyFansConfig {
	return &OnlyFansConfig{
		SessionCookie:  sessionCookie,
		BcToken:        bcToken,
		UserID:         userID,
		UserAgent:      userAgent,
		APIBaseURL:     OnlyFansAPIURL,
		TimeoutSeconds: 30,
	}
}

// Validate validates the OnlyFans configuration
func (c *OnlyFansConfig) Validate() error {
	if c.SessionCookie == "" {
		return ErrOnlyFansMissingSession
	}
	if c.BcToken == "" {
		return ErrOnlyFansMissingBcToken
	}
	if c.UserID == "" {
		return ErrOnlyFansMissingUserID
	}
	if c.UserAgent == "" {
		return ErrOnlyFansMissingUserAgent
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = OnlyFansAPIURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}

// Sign produces the per-request "sign" header OnlyFans expects:
// sha1(path:time:bc-token) rendered with the checksum suffix the web
// client computes from the digest bytes.
func (c *OnlyFansConfig) Sign(requestPath string, at time.Time) string {
	ts := strconv.FormatInt(at.UnixMilli(), 10)
	raw := strings.Join([]string{requestPath, ts, c.BcToken}, ":")
	digest := sha1.Sum([]byte(raw))
	hexDigest := hex.EncodeToString(digest[:])

	var checksum int
	for _, b := range digest {
		checksum += int(b)
	}
	return hexDigest + ":" + ts + ":" + strconv.Itoa(checksum&0xff)
}
