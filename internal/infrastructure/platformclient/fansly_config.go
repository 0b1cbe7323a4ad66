package platformclient

import "errors"

// FanslyConfig holds configuration for the Fansly API client
type FanslyConfig struct {
	// AuthToken is the bearer token for the account
	AuthToken string
	// AccountID is the Fansly account identifier
	AccountID string
	// UserAgent is sent with every request
	UserAgent string
	// APIBaseURL is the API endpoint base
	APIBaseURL string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// FanslyAPIURL is the production API endpoint base
const FanslyAPIURL = "https://apiv3.fansly.com/api/v1"

// Errors for Fansly configuration
var (
	ErrFanslyMissingToken     = errors.New("fansly: auth token is required")
	ErrFanslyMissingAccountID = errors.New("fansly: account id is required")
)

// NewFanslyConfig creates a new Fansly configuration with defaults
func NewFanslyConfig(authToken, accountID string) *FanslyConfig {
	return &FanslyConfig{
		AuthToken:      authToken,
		AccountID:      accountID,
		APIBaseURL:     FanslyAPIURL,
		TimeoutSeconds: 30,
	}
}

// Validate validates the Fansly configuration
func (c *FanslyConfig) Validate() error {
	if c.AuthToken == "" {
		return ErrFanslyMissingToken
	}
	if c.AccountID == "" {
		return ErrFanslyMissingAccountID
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = FanslyAPIURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}
