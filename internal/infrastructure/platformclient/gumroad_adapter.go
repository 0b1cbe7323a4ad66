package platformclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ofauto/backend/internal/domain/platform"
)

// GumroadClient implements platform.Client for the Gumroad v2 API.
// Content posts map to Gumroad products; metrics come from the product's
// sales and view counters.
type GumroadClient struct {
	config     *GumroadConfig
	httpClient *http.Client
	now        func() time.Time
}

// NewGumroadClient creates a new Gumroad client from config
func NewGumroadClient(config *GumroadConfig) (*GumroadClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &GumroadClient{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		now: time.Now,
	}, nil
}

// Kind returns the platform kind this client talks to
func (c *GumroadClient) Kind() platform.Kind {
	return platform.KindGumroad
}

// Authenticate verifies the access token by fetching the user
func (c *GumroadClient) Authenticate(ctx context.Context) (*platform.Session, error) {
	if _, err := c.fetchUser(ctx); err != nil {
		return nil, err
	}
	// Gumroad access tokens do not expire.
	return &platform.Session{AccessToken: c.config.AccessToken}, nil
}

// RefreshToken is a no-op for non-expiring tokens; it re-verifies the token
func (c *GumroadClient) RefreshToken(ctx context.Context) (*platform.Session, error) {
	return c.Authenticate(ctx)
}

// GetProfile fetches the seller's profile
func (c *GumroadClient) GetProfile(ctx context.Context) (*platform.Profile, error) {
	user, err := c.fetchUser(ctx)
	if err != nil {
		return nil, err
	}
	username := strings.TrimPrefix(user.URL, "https://gumroad.com/")
	return &platform.Profile{
		ExternalID:  user.ID,
		Username:    username,
		DisplayName: user.Name,
	}, nil
}

// PostContent creates and publishes a product
func (c *GumroadClient) PostContent(ctx context.Context, post platform.ContentPost) (*platform.PostResult, error) {
	if post.ScheduledAt != nil {
		return nil, fmt.Errorf("%w: gumroad scheduled publishing", platform.ErrNotSupported)
	}

	name := post.Body
	if idx := strings.IndexByte(name, '\n'); idx > 0 {
		name = name[:idx]
	}
	if len(name) > 100 {
		name = name[:100]
	}

	form := url.Values{}
	form.Set("name", name)
	form.Set("description", post.Body)
	form.Set("price", "0")
	if len(post.MediaURLs) > 0 {
		form.Set("preview_url", post.MediaURLs[0])
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/products", form)
	if err != nil {
		return nil, err
	}

	var created gumroadProductResponse
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("%w: gumroad product: %v", platform.ErrPermanentRejection, err)
	}

	// Products are created unpublished; flip the published flag.
	publishForm := url.Values{}
	publishForm.Set("published", "true")
	if _, err := c.doRequest(ctx, http.MethodPut, "/products/"+url.PathEscape(created.Product.ID), publishForm); err != nil {
		return nil, err
	}

	return &platform.PostResult{
		ExternalID:  created.Product.ID,
		URL:         created.Product.ShortURL,
		PublishedAt: c.now(),
	}, nil
}

// GetContentMetrics fetches sales and view counters for one product
func (c *GumroadClient) GetContentMetrics(ctx context.Context, contentExternalID string) (*platform.Metrics, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/products/"+url.PathEscape(contentExternalID), nil)
	if err != nil {
		return nil, err
	}

	var resp gumroadProductResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: gumroad product: %v", platform.ErrPermanentRejection, err)
	}

	return &platform.Metrics{
		ContentExternalID: contentExternalID,
		CapturedAt:        c.now(),
		Counts: map[string]int64{
			"sales": resp.Product.SalesCount,
			"views": resp.Product.ViewCount,
		},
	}, nil
}

// GetDirectMessages is not supported: Gumroad has no messaging API
func (c *GumroadClient) GetDirectMessages(ctx context.Context, limit int, cursor string) (*platform.MessagePage, error) {
	return nil, fmt.Errorf("%w: gumroad direct messages", platform.ErrNotSupported)
}

// SendDirectMessage is not supported: Gumroad has no messaging API
func (c *GumroadClient) SendDirectMessage(ctx context.Context, msg platform.OutgoingMessage) (*platform.SendResult, error) {
	return nil, fmt.Errorf("%w: gumroad direct messages", platform.ErrNotSupported)
}

// GetComments is not supported: Gumroad has no comments API
func (c *GumroadClient) GetComments(ctx context.Context, contentExternalID string, limit int, cursor string) (*platform.CommentPage, error) {
	return nil, fmt.Errorf("%w: gumroad comments", platform.ErrNotSupported)
}

// PostComment is not supported: Gumroad has no comments API
func (c *GumroadClient) PostComment(ctx context.Context, contentExternalID, body string) (*platform.Comment, error) {
	return nil, fmt.Errorf("%w: gumroad comments", platform.ErrNotSupported)
}

// GetAnalytics sums sales in the range across all products
func (c *GumroadClient) GetAnalytics(ctx context.Context, r platform.DateRange) (*platform.Analytics, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	analytics := &platform.Analytics{Range: r, Earnings: decimal.Zero}
	pageKey := ""
	for {
		query := url.Values{}
		query.Set("after", r.Start.UTC().Format("2006-01-02"))
		query.Set("before", r.End.UTC().Format("2006-01-02"))
		if pageKey != "" {
			query.Set("page_key", pageKey)
		}

		body, err := c.doRequest(ctx, http.MethodGet, "/sales?"+query.Encode(), nil)
		if err != nil {
			return nil, err
		}

		var resp gumroadSalesResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("%w: gumroad sales: %v", platform.ErrPermanentRejection, err)
		}

		for _, sale := range resp.Sales {
			analytics.Earnings = analytics.Earnings.Add(decimal.New(sale.Price, -2))
			if analytics.Currency == "" {
				analytics.Currency = strings.ToUpper(sale.Currency)
			}
		}
		if resp.NextPageKey == "" {
			break
		}
		pageKey = resp.NextPageKey
	}

	if analytics.Currency == "" {
		analytics.Currency = "USD"
	}
	return analytics, nil
}

// CheckAPIStatus probes the user endpoint
func (c *GumroadClient) CheckAPIStatus(ctx context.Context) (*platform.APIStatus, error) {
	checkedAt := c.now()
	if _, err := c.fetchUser(ctx); err != nil {
		return &platform.APIStatus{Operational: false, Detail: err.Error(), CheckedAt: checkedAt}, nil
	}
	return &platform.APIStatus{Operational: true, CheckedAt: checkedAt}, nil
}

// ---------------------------------------------------------------------------
// Internal Helpers
// ---------------------------------------------------------------------------

// fetchUser loads the authenticated seller
func (c *GumroadClient) fetchUser(ctx context.Context) (*gumroadUser, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/user", nil)
	if err != nil {
		return nil, err
	}
	var resp gumroadUserResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: gumroad user: %v", platform.ErrPermanentRejection, err)
	}
	return &resp.User, nil
}

// doRequest performs an authenticated HTTP request. Gumroad takes
// form-encoded bodies and reports failures both via HTTP status and a
// success flag in the payload.
func (c *GumroadClient) doRequest(ctx context.Context, method, path string, form url.Values) ([]byte, error) {
	endpoint := c.config.APIBaseURL + path

	var reqBody io.Reader
	if form != nil {
		reqBody = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("gumroad: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.AccessToken)
	req.Header.Set("Accept", "application/json")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

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
		var envelope gumroadEnvelope
		if json.Unmarshal(body, &envelope) == nil && envelope.Message != "" {
			return nil, fmt.Errorf("%w: %s", statusErr, envelope.Message)
		}
		return nil, statusErr
	}

	var envelope gumroadEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: gumroad response: %v", platform.ErrPermanentRejection, err)
	}
	if !envelope.Success {
		if envelope.Message != "" {
			return nil, fmt.Errorf("%w: %s", platform.ErrPermanentRejection, envelope.Message)
		}
		return nil, fmt.Errorf("%w: gumroad reported failure", platform.ErrPermanentRejection)
	}
	return body, nil
}

// Ensure GumroadClient implements the platform client port
var _ platform.Client = (*GumroadClient)(nil)
