package platform

import (
	"time"

	"github.com/google/uuid"

	"github.com/ofauto/backend/internal/domain/platform"
)

// PublishRequest carries the content to publish through one or more accounts
type PublishRequest struct {
	// Body is the post text
	Body string `json:"body"`
	// MediaRefs are references to already-uploaded media, in display order
	MediaRefs []string `json:"media_refs"`
	// ScheduledAt requests platform-side scheduling when non-nil
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

// PublishResult is the persisted outcome of one publish attempt
type PublishResult struct {
	// ContentID is the local content item recording the attempt
	ContentID uuid.UUID `json:"content_id"`
	// AccountID is the account the attempt ran against
	AccountID uuid.UUID `json:"account_id"`
	// Success is true if the platform accepted the post
	Success bool `json:"success"`
	// ExternalID is the platform post identifier, set on success
	ExternalID string `json:"external_id,omitempty"`
	// SavedLocally is false when the platform call succeeded but the
	// local record could not be written. The post exists remotely.
	SavedLocally bool `json:"saved_locally"`
	// Error is the failure description, empty on full success
	Error string `json:"error,omitempty"`
}

// FanOutResult aggregates per-account publish outcomes. It is transient:
// callers inspect it, nothing persists it.
type FanOutResult struct {
	// Results holds one entry per requested account, in input order
	Results []PublishResult `json:"results"`
	// OverallSuccess is computed by the aggregation policy
	OverallSuccess bool `json:"overall_success"`
}

// AggregationPolicy decides OverallSuccess from per-account outcomes
type AggregationPolicy string

const (
	// AggregationAnySuccess reports success if at least one account succeeded
	AggregationAnySuccess AggregationPolicy = "ANY_SUCCESS"
	// AggregationAllSuccess reports success only if every account succeeded
	AggregationAllSuccess AggregationPolicy = "ALL_SUCCESS"
)

// IsValid returns true if the policy is valid
func (p AggregationPolicy) IsValid() bool {
	return p == AggregationAnySuccess || p == AggregationAllSuccess
}

// Evaluate applies the policy to a result set. An empty set is never a
// success under either policy.
func (p AggregationPolicy) Evaluate(results []PublishResult) bool {
	if len(results) == 0 {
		return false
	}
	switch p {
	case AggregationAllSuccess:
		for _, r := range results {
			if !r.Success {
				return false
			}
		}
		return true
	default:
		for _, r := range results {
			if r.Success {
				return true
			}
		}
		return false
	}
}

// SendMessageRequest carries one outbound direct message
type SendMessageRequest struct {
	// RecipientID is the platform-side recipient or conversation identifier
	RecipientID string `json:"recipient_id"`
	// Body is the message text
	Body string `json:"body"`
	// AttachmentURL references media to attach, if any
	AttachmentURL string `json:"attachment_url,omitempty"`
	// AIGenerated marks the message as assistant-produced
	AIGenerated bool `json:"ai_generated"`
	// Prompt is the generation prompt for AI-generated messages
	Prompt string `json:"prompt,omitempty"`
}

// SendMessageResult is the outcome of a successful send
type SendMessageResult struct {
	// MessageID is the local record of the sent message
	MessageID uuid.UUID `json:"message_id"`
	// ExternalID is the message identifier on the platform
	ExternalID string `json:"external_id"`
	// SentAt is when the platform accepted the message
	SentAt time.Time `json:"sent_at"`
	// SavedLocally is false when the send succeeded but the local record
	// could not be written
	SavedLocally bool `json:"saved_locally"`
}

// SyncMessagesResult reports one page of reconciled direct messages
type SyncMessagesResult struct {
	// Fetched is how many messages the platform returned
	Fetched int `json:"fetched"`
	// Stored is how many upserts succeeded
	Stored int `json:"stored"`
	// NextCursor restarts the sequence where this page ended; empty means
	// the end was reached
	NextCursor string `json:"next_cursor,omitempty"`
}

// SyncMetricsResult reports a metrics sync pass over an account's
// published content
type SyncMetricsResult struct {
	// Synced is how many items got a new engagement snapshot
	Synced int `json:"synced"`
	// Failed is how many items could not be read or stored
	Failed int `json:"failed"`
}

// AccountStatus reports an account's platform API health
type AccountStatus struct {
	AccountID   uuid.UUID     `json:"account_id"`
	Kind        platform.Kind `json:"kind"`
	Operational bool          `json:"operational"`
	Detail      string        `json:"detail,omitempty"`
	CheckedAt   time.Time     `json:"checked_at"`
}
