package platform

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Value Objects
// ---------------------------------------------------------------------------

// Session represents an authenticated platform session
type Session struct {
	// AccessToken is the token or session identifier returned by the platform
	AccessToken string
	// ExpiresAt is when the session expires; zero means the platform did
	// not report an expiry
	ExpiresAt time.Time
}

// Profile represents the account's profile on the platform
type Profile struct {
	// ExternalID is the account's identifier on the platform
	ExternalID string
	// Username is the account's handle
	Username string
	// DisplayName is the account's display name
	DisplayName string
	// AvatarURL is the profile picture URL
	AvatarURL string
	// SubscriberCount is the current subscriber/follower count
	SubscriberCount int64
}

// ContentPost is the uniform shape of content to publish
type ContentPost struct {
	// Body is the post text
	Body string
	// MediaURLs are references to already-uploaded media, in display order
	MediaURLs []string
	// ScheduledAt requests platform-side scheduling when non-nil
	ScheduledAt *time.Time
}

// PostResult is the outcome of a successful publish
type PostResult struct {
	// ExternalID is the published post's identifier on the platform
	ExternalID string
	// URL is the public URL of the post, if the platform reports one
	URL string
	// PublishedAt is when the platform accepted the post
	PublishedAt time.Time
}

// Message represents a direct message fetched from the platform
type Message struct {
	// ExternalID is the message identifier on the platform
	ExternalID string
	// SenderID and RecipientID are platform-side participant identifiers
	SenderID    string
	RecipientID string
	// Body is the message text
	Body string
	// AttachmentURL references an attached media item, if any
	AttachmentURL string
	// Incoming is true if the message was received by the account
	Incoming bool
	// Read is true if the message has been read
	Read bool
	// SentAt is when the message was sent
	SentAt time.Time
}

// MessagePage is one page of direct messages. NextCursor is an opaque
// string; empty means end of sequence.
type MessagePage struct {
	Messages   []Message
	NextCursor string
}

// OutgoingMessage is the uniform shape of a direct message to send
type OutgoingMessage struct {
	// RecipientID is the platform-side identifier of the recipient
	RecipientID string
	// Body is the message text
	Body string
	// AttachmentURL references media to attach, if any
	AttachmentURL string
}

// SendResult is the outcome of a successful message send
type SendResult struct {
	ExternalID string
	SentAt     time.Time
}

// Comment represents a comment on a piece of content
type Comment struct {
	ExternalID        string
	ContentExternalID string
	AuthorID          string
	AuthorName        string
	Body              string
	PostedAt          time.Time
}

// CommentPage is one page of comments with an opaque continuation cursor
type CommentPage struct {
	Comments   []Comment
	NextCursor string
}

// Metrics is a point-in-time engagement reading for one piece of content
type Metrics struct {
	// ContentExternalID identifies the content on the platform
	ContentExternalID string
	// Counts maps metric name (likes, views, comments, tips...) to count
	Counts map[string]int64
	// CapturedAt is when the reading was taken
	CapturedAt time.Time
}

// DateRange bounds an analytics query
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Validate validates the date range
func (r DateRange) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return errors.New("platform: analytics range start and end are required")
	}
	if r.Start.After(r.End) {
		return errors.New("platform: analytics range start must be before end")
	}
	return nil
}

// Analytics is an account-level earnings and audience summary
type Analytics struct {
	Range              DateRange
	Earnings           decimal.Decimal
	Currency           string
	NewSubscribers     int64
	ChurnedSubscribers int64
	TotalViews         int64
}

// APIStatus reports whether the platform API is reachable and healthy
type APIStatus struct {
	Operational bool
	Detail      string
	CheckedAt   time.Time
}

// ---------------------------------------------------------------------------
// Client Port Interface
// ---------------------------------------------------------------------------

// Client is the capability contract every platform adapter implements.
// One Client instance owns exactly one account's vendor session state.
// Expected runtime failures are returned as errors from the normalized
// taxonomy in errors.go, never as panics.
type Client interface {
	// Kind returns the platform kind this client talks to
	Kind() Kind

	// Authenticate establishes a fresh session with the platform
	Authenticate(ctx context.Context) (*Session, error)

	// RefreshToken renews the current session without full re-auth
	RefreshToken(ctx context.Context) (*Session, error)

	// GetProfile fetches the account's profile
	GetProfile(ctx context.Context) (*Profile, error)

	// PostContent publishes content and returns its platform identifier
	PostContent(ctx context.Context, post ContentPost) (*PostResult, error)

	// GetContentMetrics fetches current engagement counts for one post
	GetContentMetrics(ctx context.Context, contentExternalID string) (*Metrics, error)

	// GetDirectMessages fetches one page of messages. An empty cursor
	// starts from the newest; the page's NextCursor restarts the sequence.
	GetDirectMessages(ctx context.Context, limit int, cursor string) (*MessagePage, error)

	// SendDirectMessage sends one direct message
	SendDirectMessage(ctx context.Context, msg OutgoingMessage) (*SendResult, error)

	// GetComments fetches one page of comments for a piece of content
	GetComments(ctx context.Context, contentExternalID string, limit int, cursor string) (*CommentPage, error)

	// PostComment posts a comment on a piece of content
	PostComment(ctx context.Context, contentExternalID, body string) (*Comment, error)

	// GetAnalytics fetches an account-level summary for the date range
	GetAnalytics(ctx context.Context, r DateRange) (*Analytics, error)

	// CheckAPIStatus probes the platform API health
	CheckAPIStatus(ctx context.Context) (*APIStatus, error)
}

// ---------------------------------------------------------------------------
// ClientRegistry Port Interface
// ---------------------------------------------------------------------------

// ClientRegistry resolves an account to its cached Client, constructing at
// most once per (accountID, kind) key even under concurrent first access.
type ClientRegistry interface {
	// GetOrCreate returns the cached client for the account, constructing
	// it if absent. Concurrent callers racing on an uninitialized key all
	// receive the single constructed instance.
	GetOrCreate(ctx context.Context, account *Account) (Client, error)

	// Evict drops the cached client for the key, if any. Used on
	// credential rotation and logout.
	Evict(accountID uuid.UUID, kind Kind)

	// EvictAll clears every cached client. Used on shutdown.
	EvictAll()
}
