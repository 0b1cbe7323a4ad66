package content

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ofauto/backend/internal/domain/shared"
)

// Content errors
var (
	ErrContentNotFound          = errors.New("content: content item not found")
	ErrContentMissingAccount    = errors.New("content: account ID is required")
	ErrContentEmptyBody         = errors.New("content: body or media is required")
	ErrContentInvalidTransition = errors.New("content: invalid status transition")
)

// ---------------------------------------------------------------------------
// ContentStatus represents the lifecycle state of a content item
// ---------------------------------------------------------------------------

// ContentStatus represents the lifecycle state of a content item
type ContentStatus string

const (
	// ContentStatusDraft is the initial state
	ContentStatusDraft ContentStatus = "DRAFT"
	// ContentStatusScheduled means the item is queued for publishing
	ContentStatusScheduled ContentStatus = "SCHEDULED"
	// ContentStatusPublished is terminal: the platform accepted the post
	ContentStatusPublished ContentStatus = "PUBLISHED"
	// ContentStatusFailed is terminal: the publish attempt failed
	ContentStatusFailed ContentStatus = "FAILED"
)

// IsValid returns true if the status is valid
func (s ContentStatus) IsValid() bool {
	switch s {
	case ContentStatusDraft, ContentStatusScheduled, ContentStatusPublished, ContentStatusFailed:
		return true
	default:
		return false
	}
}

// String returns the string representation of ContentStatus
func (s ContentStatus) String() string {
	return string(s)
}

// IsFinal returns true if the status is terminal
func (s ContentStatus) IsFinal() bool {
	return s == ContentStatusPublished || s == ContentStatusFailed
}

// ---------------------------------------------------------------------------
// ContentItem Entity
// ---------------------------------------------------------------------------

// ContentItem is one publish attempt against one account. Every attempt is
// recorded, win or lose; PUBLISHED and FAILED rows are never deleted.
type ContentItem struct {
	shared.BaseEntity
	// AccountID is the local account the item was published through
	AccountID uuid.UUID
	// Body is the post text
	Body string
	// MediaRefs are references to media items, in display order
	MediaRefs []string
	// MediaType is inferred from MediaRefs at creation time
	MediaType MediaType
	// ScheduledAt is when the item was or is to be published
	ScheduledAt *time.Time
	// PublishedAt is when the platform accepted the post
	PublishedAt *time.Time
	// ExternalID is the post identifier on the platform, set on success
	ExternalID string
	// Status is the lifecycle state
	Status ContentStatus
	// FailureReason carries the adapter error string on failure, verbatim
	FailureReason string
}

// NewContentItem creates a draft content item for an account
func NewContentItem(accountID uuid.UUID, body string, mediaRefs []string) (*ContentItem, error) {
	if accountID == uuid.Nil {
		return nil, ErrContentMissingAccount
	}
	if body == "" && len(mediaRefs) == 0 {
		return nil, ErrContentEmptyBody
	}
	return &ContentItem{
		BaseEntity: shared.NewBaseEntity(),
		AccountID:  accountID,
		Body:       body,
		MediaRefs:  append([]string(nil), mediaRefs...),
		MediaType:  InferMediaType(mediaRefs),
		Status:     ContentStatusDraft,
	}, nil
}

// Schedule transitions DRAFT → SCHEDULED
func (c *ContentItem) Schedule(at time.Time) error {
	if c.Status != ContentStatusDraft {
		return ErrContentInvalidTransition
	}
	c.Status = ContentStatusScheduled
	c.ScheduledAt = &at
	c.Touch()
	return nil
}

// MarkPublished transitions DRAFT or SCHEDULED → PUBLISHED
func (c *ContentItem) MarkPublished(externalID string, publishedAt time.Time) error {
	if c.Status.IsFinal() {
		return ErrContentInvalidTransition
	}
	c.Status = ContentStatusPublished
	c.ExternalID = externalID
	c.PublishedAt = &publishedAt
	c.Touch()
	return nil
}

// MarkFailed transitions DRAFT or SCHEDULED → FAILED, recording the reason
func (c *ContentItem) MarkFailed(reason string) error {
	if c.Status.IsFinal() {
		return ErrContentInvalidTransition
	}
	c.Status = ContentStatusFailed
	c.FailureReason = reason
	c.Touch()
	return nil
}

// ---------------------------------------------------------------------------
// Repository Port
// ---------------------------------------------------------------------------

// ContentItemRepository is the persistence port for content items.
// Save must be atomic per call.
type ContentItemRepository interface {
	// FindByID finds a content item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ContentItem, error)
	// FindByAccount finds all content items for an account
	FindByAccount(ctx context.Context, accountID uuid.UUID) ([]ContentItem, error)
	// FindPublishedByAccount finds items in PUBLISHED status for an account
	FindPublishedByAccount(ctx context.Context, accountID uuid.UUID) ([]ContentItem, error)
	// Save inserts or updates a content item
	Save(ctx context.Context, item *ContentItem) error
}
