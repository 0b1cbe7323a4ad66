package platformclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ofauto/backend/internal/domain/platform"
)

// KoFiClient implements platform.Client for the Ko-fi API. Ko-fi exposes
// only donation and subscription data, so every content and messaging
// operation reports ErrNotSupported; the client exists for analytics.
type KoFiClient struct {
	config     *KoFiConfig
	httpClient *http.Client
	now        func() time.Time
}

// NewKoFiClient creates a new Ko-fi client from config
func NewKoFiClient(config *KoFiConfig) (*KoFiClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &KoFiClient{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		now: time.Now,
	}, nil
}

// Kind returns the platform kind this client talks to
func (c *KoFiClient) Kind() platform.Kind {
	return platform.KindKoFi
}

// Authenticate verifies the API key by fetching the page
func (c *KoFiClient) Authenticate(ctx context.Context) (*platform.Session, error) {
	if _, err := c.fetchPage(ctx); err != nil {
		return nil, err
	}
	// API keys do not expire on a schedule.
	return &platform.Session{AccessToken: c.config.APIKey}, nil
}

// RefreshToken is a no-op for API-key auth; it re-verifies the key
func (c *KoFiClient) RefreshToken(ctx context.Context) (*platform.Session, error) {
	return c.Authenticate(ctx)
}

// GetProfile fetches the creator's page
func (c *KoFiClient) GetProfile(ctx context.Context) (*platform.Profile, error) {
	page, err := c.fetchPage(ctx)
	if err != nil {
		return nil, err
	}
	return &platform.Profile{
		ExternalID:      page.PageID,
		Username:        page.PageID,
		DisplayName:     page.PageName,
		AvatarURL:       page.AvatarURL,
		SubscriberCount: page.FollowerCount,
	}, nil
}

// PostContent is not supported: Ko-fi has no posting API
func (c *KoFiClient) PostContent(ctx context.Context, post platform.ContentPost) (*platform.PostResult, error) {
	return nil, fmt.Errorf("%w: kofi content posting", platform.ErrNotSupported)
}

// GetContentMetrics is not supported: Ko-fi has no content API
func (c *KoFiClient) GetContentMetrics(ctx context.Context, contentExternalID string) (*platform.Metrics, error) {
	return nil, fmt.Errorf("%w: kofi content metrics", platform.ErrNotSupported)
}

// GetDirectMessages is not supported: Ko-fi has no messaging API
func (c *KoFiClient) GetDirectMessages(ctx context.Context, limit int, cursor string) (*platform.MessagePage, error) {
	return nil, fmt.Errorf("%w: kofi direct messages", platform.ErrNotSupported)
}

// SendDirectMessage is not supported: Ko-fi has no messaging API
func (c *KoFiClient) SendDirectMessage(ctx context.Context, msg platform.OutgoingMessage) (*platform.SendResult, error) {
	return nil, fmt.Errorf("%w: kofi direct messages", platform.ErrNotSupported)
}

// GetComments is not supported: Ko-fi has no content API
func (c *KoFiClient) GetComments(ctx context.Context, contentExternalID string, limit int, cursor string) (*platform.CommentPage, error) {
	return nil, fmt.Errorf("%w: kofi comments", platform.ErrNotSupported)
}

// PostComment is not supported: Ko-fi has no content API
func (c *KoFiClient) PostComment(ctx context.Context, contentExternalID, body string) (*platform.Comment, error) {
	return nil, fmt.Errorf("%w: kofi comments", platform.ErrNotSupported)
}

// GetAnalytics sums donation and subscription transactions in the range
func (c *KoFiClient) GetAnalytics(ctx context.Context, r platform.DateRange) (*platform.Analytics, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("page_id", c.config.PageID)
	query.Set("from", r.Start.UTC().Format(time.RFC3339))
	query.Set("to", r.End.UTC().Format(time.RFC3339))

	body, err := c.doRequest(ctx, http.MethodGet, "/transactions", query)
	if err != nil {
		return nil, err
	}

	var list kofiTransactionList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("%w: kofi transactions: %v", platform.ErrPermanentRejection, err)
	}

	analytics := &platform.Analytics{Range: r, Earnings: decimal.Zero}
	for _, tx := range list.Transactions {
		amount, err := decimal.NewFromString(tx.Amount)
		if err != nil {
			continue
		}
		analytics.Earnings = analytics.Earnings.Add(amount)
		if analytics.Currency == "" {
			analytics.Currency = tx.Currency
		}
		if tx.IsFirstSubscription {
			analytics.NewSubscribers++
		}
	}
	if analytics.Currency == "" {
		analytics.Currency = "USD"
	}
	return analytics, nil
}

// CheckAPIStatus probes the page endpoint
func (c *KoFiClient) CheckAPIStatus(ctx context.Context) (*platform.APIStatus, error) {
	checkedAt := c.now()
	if _, err := c.fetchPage(ctx); err != nil {
		return &platform.APIStatus{Operational: false, Detail: err.Error(), CheckedAt: checkedAt}, nil
	}
	return &platform.APIStatus{Operational: true, CheckedAt: checkedAt}, nil
}

// ---------------------------------------------------------------------------
// Internal Helpers
// ---------------------------------------------------------------------------

// fetchPage loads the creator's page record
func (c *KoFiClient) fetchPage(ctx context.Context) (*kofiPage, error) {
	query := url.Values{}
	query.Set("page_id", c.config.PageID)

	body, err := c.doRequest(ctx, http.MethodGet, "/page", query)
	if err != nil {
		return nil, err
	}

	var page kofiPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("%w: kofi page: %v", platform.ErrPermanentRejection, err)
	}
	return &page, nil
}

// doRequest performs an authenticated HTTP request against the Ko-fi API
func (c *KoFiClient) doRequest(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	endpoint := c.config.APIBaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("kofi: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, normalizeTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, normalizeTransportError(err)
	}

	if statusErr := normalizeHTTPStatus(resp.StatusCode); statusErr != nil {
		var apiErr kofiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("%w: %s", statusErr, apiErr.Error)
		}
		return nil, statusErr
	}
	return body, nil
}

// Ensure KoFiClient implements the platform client port
var _ platform.Client = (*KoFiClient)(nil)
