package platformclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ofauto/backend/internal/domain/platform"
)

// OnlyFansClient implements platform.Client for OnlyFans via session
// emulation: it replays an authenticated browser session (cookie, x-bc
// token, matching user agent) and signs each request the way the web
// client does. One instance owns one account's session.
type OnlyFansClient struct {
	config     *OnlyFansConfig
	httpClient *http.Client
	now        func() time.Time
}

// NewOnlyFansClient creates a new OnlyFans client from config
func NewOnlyFansClient(config *OnlyFansConfig) (*OnlyFansClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport
	if config.ProxyURL != "" {
		proxyURL, err := url.Parse(config.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("onlyfans: invalid proxy url: %w", err)
		}
		transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
	}

	return &OnlyFansClient{
		config: config,
		httpClient: &http.Client{
			Timeout:   time.Duration(config.TimeoutSeconds) * time.Second,
			Transport: transport,
		},
		now: time.Now,
	}, nil
}

// Kind returns the platform kind this client talks to
func (c *OnlyFansClient) Kind() platform.Kind {
	return platform.KindOnlyFans
}

// Authenticate validates the stored session by fetching the own profile.
// Cookie sessions have no token grant; the session cookie doubles as the
// access token and reports no expiry.
func (c *OnlyFansClient) Authenticate(ctx context.Context) (*platform.Session, error) {
	if _, err := c.GetProfile(ctx); err != nil {
		return nil, err
	}
	return &platform.Session{AccessToken: c.config.SessionCookie}, nil
}

// RefreshToken re-validates the cookie session. OnlyFans has no refresh
// grant; an expired cookie requires a new browser login upstream.
func (c *OnlyFansClient) RefreshToken(ctx context.Context) (*platform.Session, error) {
	return c.Authenticate(ctx)
}

// GetProfile fetches the account's own profile
func (c *OnlyFansClient) GetProfile(ctx context.Context) (*platform.Profile, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/users/me", nil, nil)
	if err != nil {
		return nil, err
	}

	var user ofUser
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("%w: onlyfans profile: %v", platform.ErrPermanentRejection, err)
	}

	return &platform.Profile{
		ExternalID:      strconv.FormatInt(user.ID, 10),
		Username:        user.Username,
		DisplayName:     user.Name,
		AvatarURL:       user.Avatar,
		SubscriberCount: user.SubscribersCount,
	}, nil
}

// PostContent publishes a post, optionally platform-scheduled
func (c *OnlyFansClient) PostContent(ctx context.Context, post platform.ContentPost) (*platform.PostResult, error) {
	payload := map[string]interface{}{
		"text":     post.Body,
		"mediaSrc": post.MediaURLs,
	}
	if post.ScheduledAt != nil {
		payload["scheduledDate"] = post.ScheduledAt.UTC().Format(time.RFC3339)
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/posts", nil, payload)
	if err != nil {
		return nil, err
	}

	var created ofPost
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("%w: onlyfans post: %v", platform.ErrPermanentRejection, err)
	}

	result := &platform.PostResult{
		ExternalID:  strconv.FormatInt(created.ID, 10),
		URL:         created.PostURL,
		PublishedAt: c.now(),
	}
	if t, err := time.Parse(time.RFC3339, created.PostedAt); err == nil {
		result.PublishedAt = t
	}
	return result, nil
}

// GetContentMetrics fetches engagement counters for one post
func (c *OnlyFansClient) GetContentMetrics(ctx context.Context, contentExternalID string) (*platform.Metrics, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/posts/"+url.PathEscape(contentExternalID), nil, nil)
	if err != nil {
		return nil, err
	}

	var post ofPost
	if err := json.Unmarshal(body, &post); err != nil {
		return nil, fmt.Errorf("%w: onlyfans metrics: %v", platform.ErrPermanentRejection, err)
	}

	return &platform.Metrics{
		ContentExternalID: contentExternalID,
		CapturedAt:        c.now(),
		Counts: map[string]int64{
			"likes":    post.LikesCount,
			"comments": post.CommentsCount,
			"tips":     post.TipsAmount,
			"views":    post.ViewsCount,
		},
	}, nil
}

// GetDirectMessages fetches one page of chat messages. The cursor is the
// vendor offset rendered as a decimal string.
func (c *OnlyFansClient) GetDirectMessages(ctx context.Context, limit int, cursor string) (*platform.MessagePage, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(normalizeLimit(limit)))
	query.Set("order", "desc")
	if cursor != "" {
		offset, err := strconv.Atoi(cursor)
		if err != nil {
			return nil, fmt.Errorf("%w: bad cursor %q", platform.ErrPermanentRejection, cursor)
		}
		query.Set("offset", strconv.Itoa(offset))
	}

	body, err := c.doRequest(ctx, http.MethodGet, "/chats/messages", query, nil)
	if err != nil {
		return nil, err
	}

	var list ofMessageList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("%w: onlyfans messages: %v", platform.ErrPermanentRejection, err)
	}

	page := &platform.MessagePage{Messages: make([]platform.Message, 0, len(list.List))}
	for _, m := range list.List {
		page.Messages = append(page.Messages, c.convertMessage(m))
	}
	if list.HasMore {
		page.NextCursor = strconv.Itoa(list.NextOffset)
	}
	return page, nil
}

// SendDirectMessage sends one chat message
func (c *OnlyFansClient) SendDirectMessage(ctx context.Context, msg platform.OutgoingMessage) (*platform.SendResult, error) {
	payload := map[string]interface{}{
		"text": msg.Body,
	}
	if msg.AttachmentURL != "" {
		payload["mediaSrc"] = []string{msg.AttachmentURL}
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/chats/"+url.PathEscape(msg.RecipientID)+"/messages", nil, payload)
	if err != nil {
		return nil, err
	}

	var sent ofMessage
	if err := json.Unmarshal(body, &sent); err != nil {
		return nil, fmt.Errorf("%w: onlyfans send: %v", platform.ErrPermanentRejection, err)
	}

	result := &platform.SendResult{
		ExternalID: strconv.FormatInt(sent.ID, 10),
		SentAt:     c.now(),
	}
	if t, err := time.Parse(time.RFC3339, sent.CreatedAt); err == nil {
		result.SentAt = t
	}
	return result, nil
}

// GetComments fetches one page of comments for a post
func (c *OnlyFansClient) GetComments(ctx context.Context, contentExternalID string, limit int, cursor string) (*platform.CommentPage, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(normalizeLimit(limit)))
	if cursor != "" {
		query.Set("offset", cursor)
	}

	body, err := c.doRequest(ctx, http.MethodGet, "/posts/"+url.PathEscape(contentExternalID)+"/comments", query, nil)
	if err != nil {
		return nil, err
	}

	var list ofCommentList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("%w: onlyfans comments: %v", platform.ErrPermanentRejection, err)
	}

	page := &platform.CommentPage{Comments: make([]platform.Comment, 0, len(list.List))}
	for _, cm := range list.List {
		page.Comments = append(page.Comments, convertOFComment(contentExternalID, cm))
	}
	if list.HasMore {
		page.NextCursor = strconv.Itoa(list.NextOffset)
	}
	return page, nil
}

// PostComment posts a comment on a post
func (c *OnlyFansClient) PostComment(ctx context.Context, contentExternalID, body string) (*platform.Comment, error) {
	respBody, err := c.doRequest(ctx, http.MethodPost, "/posts/"+url.PathEscape(contentExternalID)+"/comments", nil, map[string]interface{}{"text": body})
	if err != nil {
		return nil, err
	}

	var created ofComment
	if err := json.Unmarshal(respBody, &created); err != nil {
		return nil, fmt.Errorf("%w: onlyfans comment: %v", platform.ErrPermanentRejection, err)
	}
	comment := convertOFComment(contentExternalID, created)
	return &comment, nil
}

// GetAnalytics fetches the earnings statement for a date range
func (c *OnlyFansClient) GetAnalytics(ctx context.Context, r platform.DateRange) (*platform.Analytics, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("startDate", r.Start.UTC().Format("2006-01-02"))
	query.Set("endDate", r.End.UTC().Format("2006-01-02"))

	body, err := c.doRequest(ctx, http.MethodGet, "/statistics/earnings", query, nil)
	if err != nil {
		return nil, err
	}

	var stats ofEarnings
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("%w: onlyfans analytics: %v", platform.ErrPermanentRejection, err)
	}

	earnings, err := decimal.NewFromString(stats.Total.Gross)
	if err != nil {
		earnings = decimal.Zero
	}
	currency := stats.Total.Currency
	if currency == "" {
		currency = "USD"
	}

	return &platform.Analytics{
		Range:              r,
		Earnings:           earnings,
		Currency:           currency,
		NewSubscribers:     stats.NewSubscribers,
		ChurnedSubscribers: stats.ChurnedSubscribers,
		TotalViews:         stats.ProfileVisits,
	}, nil
}

// CheckAPIStatus probes the API with an unauthenticated init call
func (c *OnlyFansClient) CheckAPIStatus(ctx context.Context) (*platform.APIStatus, error) {
	checkedAt := c.now()
	if _, err := c.doRequest(ctx, http.MethodGet, "/init", nil, nil); err != nil {
		return &platform.APIStatus{Operational: false, Detail: err.Error(), CheckedAt: checkedAt}, nil
	}
	return &platform.APIStatus{Operational: true, CheckedAt: checkedAt}, nil
}

// ---------------------------------------------------------------------------
// Internal Helpers
// ---------------------------------------------------------------------------

// doRequest performs a signed HTTP request against the OnlyFans API
func (c *OnlyFansClient) doRequest(ctx context.Context, method, path string, query url.Values, payload interface{}) ([]byte, error) {
	endpoint := c.config.APIBaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("onlyfans: encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("onlyfans: create request: %w", err)
	}

	signPath := path
	if len(query) > 0 {
		signPath += "?" + query.Encode()
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-bc", c.config.BcToken)
	req.Header.Set("user-id", c.config.UserID)
	req.Header.Set("sign", c.config.Sign(signPath, c.now()))
	req.AddCookie(&http.Cookie{Name: "sess", Value: c.config.SessionCookie})
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
		var apiErr ofError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("%w: %s", statusErr, apiErr.Error.Message)
		}
		return nil, statusErr
	}
	return body, nil
}

func (c *OnlyFansClient) convertMessage(m ofMessage) platform.Message {
	msg := platform.Message{
		ExternalID:  strconv.FormatInt(m.ID, 10),
		SenderID:    strconv.FormatInt(m.FromID, 10),
		RecipientID: strconv.FormatInt(m.ToID, 10),
		Body:        m.Text,
		Incoming:    strconv.FormatInt(m.ToID, 10) == c.config.UserID,
		Read:        m.IsRead,
	}
	if len(m.Media) > 0 {
		msg.AttachmentURL = m.Media[0].URL
	}
	if t, err := time.Parse(time.RFC3339, m.CreatedAt); err == nil {
		msg.SentAt = t
	}
	return msg
}

func convertOFComment(contentExternalID string, cm ofComment) platform.Comment {
	comment := platform.Comment{
		ExternalID:        strconv.FormatInt(cm.ID, 10),
		ContentExternalID: contentExternalID,
		AuthorID:          strconv.FormatInt(cm.Author.ID, 10),
		AuthorName:        cm.Author.Name,
		Body:              cm.Text,
	}
	if t, err := time.Parse(time.RFC3339, cm.PostedAt); err == nil {
		comment.PostedAt = t
	}
	return comment
}

// normalizeLimit clamps a page size into the range the vendors accept
func normalizeLimit(limit int) int {
	if limit < 1 || limit > 100 {
		return 50
	}
	return limit
}

// Ensure OnlyFansClient implements the platform client port
var _ platform.Client = (*OnlyFansClient)(nil)
