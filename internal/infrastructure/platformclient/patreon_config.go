package platformclient

import "errors"

// PatreonConfig holds configuration for the Patreon OAuth2 API client
type PatreonConfig struct {
	// ClientID and ClientSecret identify the OAuth application
	ClientID     string
	ClientSecret string
	// RefreshToken is the account's long-lived OAuth refresh token
	RefreshToken string
	// CampaignID is the creator's campaign identifier
	CampaignID string
	// APIBaseURL is the v2 API endpoint base
	APIBaseURL string
	// TokenURL is the OAuth token endpoint
	TokenURL string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

const (
	// PatreonAPIURL is the production v2 API endpoint base
	PatreonAPIURL = "https://www.patreon.com/api/oauth2/v2"
	// PatreonTokenURL is the OAuth token endpoint
	PatreonTokenURL = "https://www.patreon.com/api/oauth2/token"
)

// Errors for Patreon configuration
var (
	ErrPatreonMissingClientID     = errors.New("patreon: client id is required")
	ErrPatreonMissingClientSecret = errors.New("patreon: client secret is required")
	ErrPatreonMissingRefreshToken = errors.New("patreon: refresh token is required")
	ErrPatreonMissingCampaignID   = errors.New("patreon: campaign id is required")
)

// NewPatreonConfig creates a new Patreon configuration with defaults
func NewPatreonConfig(clientID, clientSecret, refreshToken, campaignID string) *PatreonConfig {
	return &PatreonConfig{
		ClientID:       clientID,
		ClientSecret:   clientSecret,
		RefreshToken:   refreshToken,
		CampaignID:     campaignID,
		APIBaseURL:     PatreonAPIURL,
		TokenURL:       PatreonTokenURL,
		TimeoutSeconds: 30,
	}
}

// Validate validates the Patreon configuration
func (c *PatreonConfig) Validate() error {
	if c.ClientID == "" {
		return ErrPatreonMissingClientID
	}
	if c.ClientSecret == "" {
		return ErrPatreonMissingClientSecret
	}
	if c.RefreshToken == "" {
		return ErrPatreonMissingRefreshToken
	}
	if c.CampaignID == "" {
		return ErrPatreonMissingCampaignID
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = PatreonAPIURL
	}
	if c.TokenURL == "" {
		c.TokenURL = PatreonTokenURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}
