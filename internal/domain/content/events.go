package content

import (
	"github.com/google/uuid"

	"github.com/ofauto/backend/internal/domain/platform"
	"github.com/ofauto/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeContentItem   = "ContentItem"
	AggregateTypeDirectMessage = "DirectMessage"
)

// Event type constants
const (
	EventTypeContentPublished      = "ContentPublished"
	EventTypeContentPublishFailed  = "ContentPublishFailed"
	EventTypeDirectMessageReceived = "DirectMessageReceived"
	EventTypeDirectMessageSent     = "DirectMessageSent"
	EventTypeEngagementSynced      = "EngagementSynced"
)

// ContentPublishedEvent is published when a platform accepts a post
type ContentPublishedEvent struct {
	shared.BaseDomainEvent
	ContentID    uuid.UUID     `json:"content_id"`
	AccountID    uuid.UUID     `json:"account_id"`
	PlatformKind platform.Kind `json:"platform_kind"`
	ExternalID   string        `json:"external_id"`
}

// NewContentPublishedEvent creates a new ContentPublishedEvent
func NewContentPublishedEvent(item *ContentItem, kind platform.Kind) *ContentPublishedEvent {
	return &ContentPublishedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContentPublished, AggregateTypeContentItem, item.ID, item.AccountID),
		ContentID:       item.ID,
		AccountID:       item.AccountID,
		PlatformKind:    kind,
		ExternalID:      item.ExternalID,
	}
}

// ContentPublishFailedEvent is published when a publish attempt fails
type ContentPublishFailedEvent struct {
	shared.BaseDomainEvent
	ContentID    uuid.UUID     `json:"content_id"`
	AccountID    uuid.UUID     `json:"account_id"`
	PlatformKind platform.Kind `json:"platform_kind"`
	Reason       string        `json:"reason"`
}

// NewContentPublishFailedEvent creates a new ContentPublishFailedEvent
func NewContentPublishFailedEvent(item *ContentItem, kind platform.Kind) *ContentPublishFailedEvent {
	return &ContentPublishFailedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContentPublishFailed, AggregateTypeContentItem, item.ID, item.AccountID),
		ContentID:       item.ID,
		AccountID:       item.AccountID,
		PlatformKind:    kind,
		Reason:          item.FailureReason,
	}
}

// DirectMessageReceivedEvent is published when a sync stores a new inbound
// message
type DirectMessageReceivedEvent struct {
	shared.BaseDomainEvent
	MessageID    uuid.UUID     `json:"message_id"`
	AccountID    uuid.UUID     `json:"account_id"`
	PlatformKind platform.Kind `json:"platform_kind"`
	SenderID     string        `json:"sender_id"`
}

// NewDirectMessageReceivedEvent creates a new DirectMessageReceivedEvent
func NewDirectMessageReceivedEvent(msg *DirectMessage) *DirectMessageReceivedEvent {
	return &DirectMessageReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDirectMessageReceived, AggregateTypeDirectMessage, msg.ID, msg.AccountID),
		MessageID:       msg.ID,
		AccountID:       msg.AccountID,
		PlatformKind:    msg.PlatformKind,
		SenderID:        msg.SenderID,
	}
}

// DirectMessageSentEvent is published after an outbound message is sent
// and stored
type DirectMessageSentEvent struct {
	shared.BaseDomainEvent
	MessageID    uuid.UUID     `json:"message_id"`
	AccountID    uuid.UUID     `json:"account_id"`
	PlatformKind platform.Kind `json:"platform_kind"`
	Recipient    string        `json:"recipient_id"`
	AIGenerated  bool          `json:"ai_generated"`
}

// NewDirectMessageSentEvent creates a new DirectMessageSentEvent
func NewDirectMessageSentEvent(msg *DirectMessage) *DirectMessageSentEvent {
	return &DirectMessageSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDirectMessageSent, AggregateTypeDirectMessage, msg.ID, msg.AccountID),
		MessageID:       msg.ID,
		AccountID:       msg.AccountID,
		PlatformKind:    msg.PlatformKind,
		Recipient:       msg.RecipientID,
		AIGenerated:     msg.AIGenerated,
	}
}

// EngagementSyncedEvent is published after a metrics sync pass completes
// for an account
type EngagementSyncedEvent struct {
	shared.BaseDomainEvent
	AccountID uuid.UUID `json:"account_id"`
	Synced    int       `json:"synced"`
	Failed    int       `json:"failed"`
}

// NewEngagementSyncedEvent creates a new EngagementSyncedEvent
func NewEngagementSyncedEvent(accountID uuid.UUID, synced, failed int) *EngagementSyncedEvent {
	return &EngagementSyncedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEngagementSynced, AggregateTypeContentItem, accountID, accountID),
		AccountID:       accountID,
		Synced:          synced,
		Failed:          failed,
	}
}
