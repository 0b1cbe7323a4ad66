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

// FanslyClient implements platform.Client for Fansly's token API. One
// instance owns one account's bearer token.
type FanslyClient struct {
	config     *FanslyConfig
	httpClient *http.Client
	now        func() time.Time
}

// NewFanslyClient creates a new Fansly client from config
func NewFanslyClient(config *FanslyConfig) (*FanslyClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &FanslyClient{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		now: time.Now,
	}, nil
}

// Kind returns the platform kind this client talks to
func (c *FanslyClient) Kind() platform.Kind {
	return platform.KindFansly
}

// Authenticate validates the bearer token by fetching the own account
func (c *FanslyClient) Authenticate(ctx context.Context) (*platform.Session, error) {
	if _, err := c.GetProfile(ctx); err != nil {
		return nil, err
	}
	return &platform.Session{AccessToken: c.config.AuthToken}, nil
}

// RefreshToken re-validates the token. Fansly tokens are long-lived and
// have no refresh grant.
func (c *FanslyClient) RefreshToken(ctx context.Context) (*platform.Session, error) {
	return c.Authenticate(ctx)
}

// GetProfile fetches the account's profile
func (c *FanslyClient) GetProfile(ctx context.Context) (*platform.Profile, error) {
	raw, err := c.doRequest(ctx, http.MethodGet, "/account/me", nil, nil)
	if err != nil {
		return nil, err
	}

	var account fanslyAccount
	if err := json.Unmarshal(raw, &account); err != nil {
		return nil, fmt.Errorf("%w: fansly profile: %v", platform.ErrPermanentRejection, err)
	}

	return &platform.Profile{
		ExternalID:      account.ID,
		Username:        account.Username,
		DisplayName:     account.DisplayName,
		AvatarURL:       account.Avatar.Location,
		SubscriberCount: account.SubscriberCount,
	}, nil
}

// PostContent publishes a post. Fansly has no platform-side scheduling on
// this endpoint; ScheduledAt is handled by the caller's scheduler.
func (c *FanslyClient) PostContent(ctx context.Context, post platform.ContentPost) (*platform.PostResult, error) {
	payload := map[string]interface{}{
		"content":     post.Body,
		"attachments": post.MediaURLs,
	}

	raw, err := c.doRequest(ctx, http.MethodPost, "/posts", nil, payload)
	if err != nil {
		return nil, err
	}

	var created fanslyPost
	if err := json.Unmarshal(raw, &created); err != nil {
		return nil, fmt.Errorf("%w: fansly post: %v", platform.ErrPermanentRejection, err)
	}

	return &platform.PostResult{
		ExternalID:  created.ID,
		PublishedAt: fanslyTime(created.CreatedAt, c.now),
	}, nil
}

// GetContentMetrics fetches engagement counters for one post
func (c *FanslyClient) GetContentMetrics(ctx context.Context, contentExternalID string) (*platform.Metrics, error) {
	query := url.Values{}
	query.Set("ids", contentExternalID)

	raw, err := c.doRequest(ctx, http.MethodGet, "/posts", query, nil)
	if err != nil {
		return nil, err
	}

	var posts []fanslyPost
	if err := json.Unmarshal(raw, &posts); err != nil {
		return nil, fmt.Errorf("%w: fansly metrics: %v", platform.ErrPermanentRejection, err)
	}
	if len(posts) == 0 {
		return nil, fmt.Errorf("%w: post %s", platform.ErrNotFound, contentExternalID)
	}

	p := posts[0]
	return &platform.Metrics{
		ContentExternalID: contentExternalID,
		CapturedAt:        c.now(),
		Counts: map[string]int64{
			"likes":    p.LikeCount,
			"comments": p.ReplyCount,
			"views":    p.ViewCount,
			"tips":     p.TipAmount,
		},
	}, nil
}

// GetDirectMessages fetches one page of messages. The cursor is the oldest
// message id of the previous page ("before" paging).
func (c *FanslyClient) GetDirectMessages(ctx context.Context, limit int, cursor string) (*platform.MessagePage, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(normalizeLimit(limit)))
	if cursor != "" {
		query.Set("before", cursor)
	}

	raw, err := c.doRequest(ctx, http.MethodGet, "/messaging/messages", query, nil)
	if err != nil {
		return nil, err
	}

	var messages []fanslyMessage
	if err := json.Unmarshal(raw, &messages); err != nil {
		return nil, fmt.Errorf("%w: fansly messages: %v", platform.ErrPermanentRejection, err)
	}

	page := &platform.MessagePage{Messages: make([]platform.Message, 0, len(messages))}
	for _, m := range messages {
		page.Messages = append(page.Messages, c.convertMessage(m))
	}
	// A full page signals more history behind the oldest entry.
	if len(messages) == normalizeLimit(limit) {
		page.NextCursor = messages[len(messages)-1].ID
	}
	return page, nil
}

// SendDirectMessage sends one message to a conversation group
func (c *FanslyClient) SendDirectMessage(ctx context.Context, msg platform.OutgoingMessage) (*platform.SendResult, error) {
	payload := map[string]interface{}{
		"groupId": msg.RecipientID,
		"content": msg.Body,
	}
	if msg.AttachmentURL != "" {
		payload["attachments"] = []string{msg.AttachmentURL}
	}

	raw, err := c.doRequest(ctx, http.MethodPost, "/messaging/messages", nil, payload)
	if err != nil {
		return nil, err
	}

	var sent fanslyMessage
	if err := json.Unmarshal(raw, &sent); err != nil {
		return nil, fmt.Errorf("%w: fansly send: %v", platform.ErrPermanentRejection, err)
	}

	return &platform.SendResult{
		ExternalID: sent.ID,
		SentAt:     fanslyTime(sent.CreatedAt, c.now),
	}, nil
}

// GetComments is not available through the Fansly API surface this adapter
// targets
func (c *FanslyClient) GetComments(ctx context.Context, contentExternalID string, limit int, cursor string) (*platform.CommentPage, error) {
	return nil, fmt.Errorf("%w: fansly comments", platform.ErrNotSupported)
}

// PostComment is not available through the Fansly API surface this adapter
// targets
func (c *FanslyClient) PostComment(ctx context.Context, contentExternalID, body string) (*platform.Comment, error) {
	return nil, fmt.Errorf("%w: fansly comments", platform.ErrNotSupported)
}

// GetAnalytics fetches the earnings statement for a date range
func (c *FanslyClient) GetAnalytics(ctx context.Context, r platform.DateRange) (*platform.Analytics, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("start", strconv.FormatInt(r.Start.UnixMilli(), 10))
	query.Set("end", strconv.FormatInt(r.End.UnixMilli(), 10))

	raw, err := c.doRequest(ctx, http.MethodGet, "/statsnew/earnings", query, nil)
	if err != nil {
		return nil, err
	}

	var stats fanslyEarnings
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, fmt.Errorf("%w: fansly analytics: %v", platform.ErrPermanentRejection, err)
	}

	return &platform.Analytics{
		Range:              r,
		Earnings:           decimal.New(stats.GrossCents, -2),
		Currency:           "USD",
		NewSubscribers:     stats.NewSubscribers,
		ChurnedSubscribers: stats.ChurnedSubscribers,
		TotalViews:         stats.Views,
	}, nil
}

// CheckAPIStatus probes the API status endpoint
func (c *FanslyClient) CheckAPIStatus(ctx context.Context) (*platform.APIStatus, error) {
	checkedAt := c.now()
	if _, err := c.doRequest(ctx, http.MethodGet, "/status", nil, nil); err != nil {
		return &platform.APIStatus{Operational: false, Detail: err.Error(), CheckedAt: checkedAt}, nil
	}
	return &platform.APIStatus{Operational: true, CheckedAt: checkedAt}, nil
}

// ---------------------------------------------------------------------------
// Internal Helpers
// ---------------------------------------------------------------------------

// doRequest performs an HTTP request and unwraps the Fansly envelope
func (c *FanslyClient) doRequest(ctx context.Context, method, path string, query url.Values, payload interface{}) (json.RawMessage, error) {
	endpoint := c.config.APIBaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("fansly: encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("fansly: create request: %w", err)
	}
	req.Header.Set("Authorization", c.config.AuthToken)
	req.Header.Set("Accept", "application/json")
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}
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
		var envelope fanslyEnvelope
		if json.Unmarshal(body, &envelope) == nil && envelope.Error.Details != "" {
			return nil, fmt.Errorf("%w: %s", statusErr, envelope.Error.Details)
		}
		return nil, statusErr
	}

	var envelope fanslyEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: fansly envelope: %v", platform.ErrPermanentRejection, err)
	}
	if !envelope.Success {
		return nil, fmt.Errorf("%w: %s", platform.ErrPermanentRejection, envelope.Error.Details)
	}
	return envelope.Response, nil
}

func (c *FanslyClient) convertMessage(m fanslyMessage) platform.Message {
	msg := platform.Message{
		ExternalID:  m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.GroupID,
		Body:        m.Content,
		Incoming:    m.SenderID != c.config.AccountID,
		Read:        m.Read,
		SentAt:      fanslyTime(m.CreatedAt, c.now),
	}
	if len(m.Attachments) > 0 {
		msg.AttachmentURL = m.Attachments[0].Location
	}
	return msg
}

// fanslyTime converts an epoch-millisecond timestamp, falling back to now
// for missing values
func fanslyTime(millis int64, now func() time.Time) time.Time {
	if millis <= 0 {
		return now()
	}
	return time.UnixMilli(millis)
}

// Ensure FanslyClient implements the platform client port
var _ platform.Client = (*FanslyClient)(nil)
