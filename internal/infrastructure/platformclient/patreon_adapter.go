package platformclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ofauto/backend/internal/domain/platform"
)

// PatreonClient implements platform.Client for the Patreon v2 API. It owns
// one account's OAuth token pair and refreshes the access token lazily
// before it expires.
type PatreonClient struct {
	config     *PatreonConfig
	httpClient *http.Client
	now        func() time.Time

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

// NewPatreonClient creates a new Patreon client from config
func NewPatreonClient(config *PatreonConfig) (*PatreonClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &PatreonClient{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		now: time.Now,
	}, nil
}

// Kind returns the platform kind this client talks to
func (c *PatreonClient) Kind() platform.Kind {
	return platform.KindPatreon
}

// Authenticate exchanges the refresh token for a fresh access token
func (c *PatreonClient) Authenticate(ctx context.Context) (*platform.Session, error) {
	return c.refreshAccessToken(ctx)
}

// RefreshToken renews the access token via the OAuth refresh grant
func (c *PatreonClient) RefreshToken(ctx context.Context) (*platform.Session, error) {
	return c.refreshAccessToken(ctx)
}

// GetProfile fetches the creator's identity
func (c *PatreonClient) GetProfile(ctx context.Context) (*platform.Profile, error) {
	query := url.Values{}
	query.Set("fields[user]", "full_name,vanity,image_url")

	doc, err := c.doRequest(ctx, http.MethodGet, "/identity", query, nil)
	if err != nil {
		return nil, err
	}

	var user patreonResource
	if err := json.Unmarshal(doc.Data, &user); err != nil {
		return nil, fmt.Errorf("%w: patreon identity: %v", platform.ErrPermanentRejection, err)
	}
	var attrs patreonUserAttrs
	if err := json.Unmarshal(user.Attributes, &attrs); err != nil {
		return nil, fmt.Errorf("%w: patreon identity: %v", platform.ErrPermanentRejection, err)
	}

	profile := &platform.Profile{
		ExternalID:  user.ID,
		Username:    attrs.Vanity,
		DisplayName: attrs.FullName,
		AvatarURL:   attrs.ImageURL,
	}

	// Subscriber count lives on the campaign, not the user.
	if campaign, err := c.fetchCampaign(ctx); err == nil {
		profile.SubscriberCount = campaign.PatronCount
	}
	return profile, nil
}

// PostContent publishes a post on the campaign
func (c *PatreonClient) PostContent(ctx context.Context, post platform.ContentPost) (*platform.PostResult, error) {
	attrs := map[string]interface{}{
		"content": post.Body,
	}
	if len(post.MediaURLs) > 0 {
		attrs["embed_url"] = post.MediaURLs[0]
	}
	if post.ScheduledAt != nil {
		attrs["scheduled_for"] = post.ScheduledAt.UTC().Format(time.RFC3339)
	}
	payload := map[string]interface{}{
		"data": map[string]interface{}{
			"type":       "post",
			"attributes": attrs,
		},
	}

	doc, err := c.doRequest(ctx, http.MethodPost, "/campaigns/"+url.PathEscape(c.config.CampaignID)+"/posts", nil, payload)
	if err != nil {
		return nil, err
	}

	var created patreonResource
	if err := json.Unmarshal(doc.Data, &created); err != nil {
		return nil, fmt.Errorf("%w: patreon post: %v", platform.ErrPermanentRejection, err)
	}
	var postAttrs patreonPostAttrs
	_ = json.Unmarshal(created.Attributes, &postAttrs)

	result := &platform.PostResult{
		ExternalID:  created.ID,
		URL:         postAttrs.URL,
		PublishedAt: c.now(),
	}
	if t, err := time.Parse(time.RFC3339, postAttrs.PublishedAt); err == nil {
		result.PublishedAt = t
	}
	return result, nil
}

// GetContentMetrics fetches engagement counters for one post
func (c *PatreonClient) GetContentMetrics(ctx context.Context, contentExternalID string) (*platform.Metrics, error) {
	query := url.Values{}
	query.Set("fields[post]", "like_count,comment_count")

	doc, err := c.doRequest(ctx, http.MethodGet, "/posts/"+url.PathEscape(contentExternalID), query, nil)
	if err != nil {
		return nil, err
	}

	var post patreonResource
	if err := json.Unmarshal(doc.Data, &post); err != nil {
		return nil, fmt.Errorf("%w: patreon metrics: %v", platform.ErrPermanentRejection, err)
	}
	var attrs patreonPostAttrs
	if err := json.Unmarshal(post.Attributes, &attrs); err != nil {
		return nil, fmt.Errorf("%w: patreon metrics: %v", platform.ErrPermanentRejection, err)
	}

	return &platform.Metrics{
		ContentExternalID: contentExternalID,
		CapturedAt:        c.now(),
		Counts: map[string]int64{
			"likes":    attrs.LikeCount,
			"comments": attrs.CommentCount,
		},
	}, nil
}

// GetDirectMessages is not supported: Patreon has no DM API
func (c *PatreonClient) GetDirectMessages(ctx context.Context, limit int, cursor string) (*platform.MessagePage, error) {
	return nil, fmt.Errorf("%w: patreon direct messages", platform.ErrNotSupported)
}

// SendDirectMessage is not supported: Patreon has no DM API
func (c *PatreonClient) SendDirectMessage(ctx context.Context, msg platform.OutgoingMessage) (*platform.SendResult, error) {
	return nil, fmt.Errorf("%w: patreon direct messages", platform.ErrNotSupported)
}

// GetComments fetches one page of comments. The cursor is Patreon's own
// pagination cursor, passed through opaquely.
func (c *PatreonClient) GetComments(ctx context.Context, contentExternalID string, limit int, cursor string) (*platform.CommentPage, error) {
	query := url.Values{}
	query.Set("page[count]", fmt.Sprintf("%d", normalizeLimit(limit)))
	query.Set("fields[comment]", "body,created,commenter_id")
	if cursor != "" {
		query.Set("page[cursor]", cursor)
	}

	doc, err := c.doRequest(ctx, http.MethodGet, "/posts/"+url.PathEscape(contentExternalID)+"/comments", query, nil)
	if err != nil {
		return nil, err
	}

	var resources []patreonResource
	if err := json.Unmarshal(doc.Data, &resources); err != nil {
		return nil, fmt.Errorf("%w: patreon comments: %v", platform.ErrPermanentRejection, err)
	}

	page := &platform.CommentPage{
		Comments:   make([]platform.Comment, 0, len(resources)),
		NextCursor: doc.Meta.Pagination.Cursors.Next,
	}
	for _, res := range resources {
		var attrs patreonCommentAttrs
		if err := json.Unmarshal(res.Attributes, &attrs); err != nil {
			continue
		}
		comment := platform.Comment{
			ExternalID:        res.ID,
			ContentExternalID: contentExternalID,
			AuthorID:          attrs.AuthorID,
			Body:              attrs.Body,
		}
		if t, err := time.Parse(time.RFC3339, attrs.CreatedAt); err == nil {
			comment.PostedAt = t
		}
		page.Comments = append(page.Comments, comment)
	}
	return page, nil
}

// PostComment posts a comment on a post
func (c *PatreonClient) PostComment(ctx context.Context, contentExternalID, body string) (*platform.Comment, error) {
	payload := map[string]interface{}{
		"data": map[string]interface{}{
			"type": "comment",
			"attributes": map[string]interface{}{
				"body": body,
			},
		},
	}

	doc, err := c.doRequest(ctx, http.MethodPost, "/posts/"+url.PathEscape(contentExternalID)+"/comments", nil, payload)
	if err != nil {
		return nil, err
	}

	var created patreonResource
	if err := json.Unmarshal(doc.Data, &created); err != nil {
		return nil, fmt.Errorf("%w: patreon comment: %v", platform.ErrPermanentRejection, err)
	}
	var attrs patreonCommentAttrs
	_ = json.Unmarshal(created.Attributes, &attrs)

	return &platform.Comment{
		ExternalID:        created.ID,
		ContentExternalID: contentExternalID,
		Body:              body,
		PostedAt:          c.now(),
	}, nil
}

// GetAnalytics summarizes the campaign's pledge figures. Patreon reports
// current totals, not a windowed statement; the range is echoed back.
func (c *PatreonClient) GetAnalytics(ctx context.Context, r platform.DateRange) (*platform.Analytics, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	campaign, err := c.fetchCampaign(ctx)
	if err != nil {
		return nil, err
	}

	currency := campaign.PledgeCurrency
	if currency == "" {
		currency = "USD"
	}
	return &platform.Analytics{
		Range:          r,
		Earnings:       decimal.New(campaign.PledgeSumCents, -2),
		Currency:       currency,
		NewSubscribers: campaign.PatronCount,
	}, nil
}

// CheckAPIStatus probes the identity endpoint
func (c *PatreonClient) CheckAPIStatus(ctx context.Context) (*platform.APIStatus, error) {
	checkedAt := c.now()
	if _, err := c.doRequest(ctx, http.MethodGet, "/identity", nil, nil); err != nil {
		return &platform.APIStatus{Operational: false, Detail: err.Error(), CheckedAt: checkedAt}, nil
	}
	return &platform.APIStatus{Operational: true, CheckedAt: checkedAt}, nil
}

// ---------------------------------------------------------------------------
// Internal Helpers
// ---------------------------------------------------------------------------

// refreshAccessToken exchanges the refresh token at the OAuth endpoint
func (c *PatreonClient) refreshAccessToken(ctx context.Context) (*platform.Session, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", c.config.RefreshToken)
	form.Set("client_id", c.config.ClientID)
	form.Set("client_secret", c.config.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("patreon: create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

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
		return nil, statusErr
	}

	var token patreonTokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("%w: patreon token: %v", platform.ErrPermanentRejection, err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty access token", platform.ErrNotAuthenticated)
	}

	expiresAt := c.now().Add(time.Duration(token.ExpiresIn) * time.Second)

	c.mu.Lock()
	c.accessToken = token.AccessToken
	c.expiresAt = expiresAt
	if token.RefreshToken != "" {
		c.config.RefreshToken = token.RefreshToken
	}
	c.mu.Unlock()

	return &platform.Session{AccessToken: token.AccessToken, ExpiresAt: expiresAt}, nil
}

// ensureToken refreshes the access token when missing or near expiry
func (c *PatreonClient) ensureToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	token := c.accessToken
	valid := token != "" && c.now().Before(c.expiresAt.Add(-time.Minute))
	c.mu.Unlock()
	if valid {
		return token, nil
	}
	session, err := c.refreshAccessToken(ctx)
	if err != nil {
		return "", err
	}
	return session.AccessToken, nil
}

// doRequest performs an authenticated HTTP request against the v2 API
func (c *PatreonClient) doRequest(ctx context.Context, method, path string, query url.Values, payload interface{}) (*patreonDocument, error) {
	token, err := c.ensureToken(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := c.config.APIBaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("patreon: encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("patreon: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
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
		var apiErr patreonErrorBody
		if json.Unmarshal(body, &apiErr) == nil && len(apiErr.Errors) > 0 {
			return nil, fmt.Errorf("%w: %s", statusErr, apiErr.Errors[0].Detail)
		}
		return nil, statusErr
	}

	var doc patreonDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: patreon document: %v", platform.ErrPermanentRejection, err)
	}
	return &doc, nil
}

// fetchCampaign loads the campaign's pledge attributes
func (c *PatreonClient) fetchCampaign(ctx context.Context) (*patreonCampaignAttrs, error) {
	query := url.Values{}
	query.Set("fields[campaign]", "patron_count,pledge_sum,pledge_sum_currency,creation_count")

	doc, err := c.doRequest(ctx, http.MethodGet, "/campaigns/"+url.PathEscape(c.config.CampaignID), query, nil)
	if err != nil {
		return nil, err
	}

	var campaign patreonResource
	if err := json.Unmarshal(doc.Data, &campaign); err != nil {
		return nil, fmt.Errorf("%w: patreon campaign: %v", platform.ErrPermanentRejection, err)
	}
	var attrs patreonCampaignAttrs
	if err := json.Unmarshal(campaign.Attributes, &attrs); err != nil {
		return nil, fmt.Errorf("%w: patreon campaign: %v", platform.ErrPermanentRejection, err)
	}
	return &attrs, nil
}

// Ensure PatreonClient implements the platform client port
var _ platform.Client = (*PatreonClient)(nil)
