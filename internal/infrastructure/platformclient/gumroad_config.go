package platformclient

import "errors"

// GumroadConfig holds configuration for the Gumroad API client
type GumroadConfig struct {
	// AccessToken is a Gumroad OAuth access token
	AccessToken string
	// APIBaseURL is the v2 API endpoint base
	APIBaseURL string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// GumroadAPIURL is the production v2 API endpoint base
const GumroadAPIURL = "https://api.gumroad.com/v2"

// ErrGumroadMissingAccessToken is returned when the access token is absent
var ErrGumroadMissingAccessToken = errors.New("gumroad: access token is required")

// NewGumroadConfig creates a new Gumroad configuration with defaults
func NewGumroadConfig(accessToken string) *GumroadConfig {
	return &GumroadConfig{
		AccessToken:    accessToken,
		APIBaseURL:     GumroadAPIURL,
		TimeoutSeconds: 30,
	}
}

// Validate validates the Gumroad configuration
func (c *GumroadConfig) Validate() error {
	if c.AccessToken == "" {
		return ErrGumroadMissingAccessToken
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = GumroadAPIURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}
