package platformclient

import "errors"

// KoFiConfig holds configuration for the Ko-fi API client
type KoFiConfig struct {
	// APIKey is the Ko-fi API key from the creator dashboard
	APIKey string
	// PageID is the creator's Ko-fi page identifier
	PageID string
	// APIBaseURL is the API endpoint base
	APIBaseURL string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// KoFiAPIURL is the production Ko-fi API endpoint base
const KoFiAPIURL = "https://ko-fi.com/api/v2"

// Errors for Ko-fi configuration
var (
	ErrKoFiMissingAPIKey = errors.New("kofi: api key is required")
	ErrKoFiMissingPageID = errors.New("kofi: page id is required")
)

// NewKoFiConfig creates a new Ko-fi configuration with defaults
func NewKoFiConfig(apiKey, pageID string) *KoFiConfig {
	return &KoFiConfig{
		APIKey:         apiKey,
		PageID:         pageID,
		APIBaseURL:     KoFiAPIURL,
		TimeoutSeconds: 30,
	}
}

// Validate validates the Ko-fi configuration
func (c *KoFiConfig) Validate() error {
	if c.APIKey == "" {
		return ErrKoFiMissingAPIKey
	}
	if c.PageID == "" {
		return ErrKoFiMissingPageID
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = KoFiAPIURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}
