package content

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ofauto/backend/internal/domain/platform"
	"github.com/ofauto/backend/internal/domain/shared"
)

// Direct message errors
var (
	ErrMessageNotFound          = errors.New("content: direct message not found")
	ErrMessageMissingExternalID = errors.New("content: message external ID is required")
	ErrMessageMissingAccount    = errors.New("content: message account ID is required")
)

// MessageDirection indicates whether a message was received or sent
type MessageDirection string

const (
	// DirectionInbound is a message received by the account
	DirectionInbound MessageDirection = "IN"
	// DirectionOutbound is a message sent from the account
	DirectionOutbound MessageDirection = "OUT"
)

// IsValid returns true if the direction is valid
func (d MessageDirection) IsValid() bool {
	return d == DirectionInbound || d == DirectionOutbound
}

// DirectMessage is a locally reconciled copy of a platform direct message.
// (PlatformKind, ExternalID) is the unique upsert key: a message is inserted
// once, and repeated syncs may only flip the Read flag afterwards.
type DirectMessage struct {
	shared.BaseEntity
	// AccountID is the local account the message belongs to
	AccountID uuid.UUID
	// PlatformKind is the platform the message lives on
	PlatformKind platform.Kind
	// ExternalID is the message identifier on the platform
	ExternalID string
	// Direction is IN for received messages, OUT for sent ones
	Direction MessageDirection
	// SenderID and RecipientID are platform-side participant identifiers
	SenderID    string
	RecipientID string
	// Body is the message text
	Body string
	// AttachmentURL references attached media, if any
	AttachmentURL string
	// SentAt is when the message was sent on the platform
	SentAt time.Time
	// Read is the only field repeated syncs may update
	Read bool
	// AIGenerated marks outbound messages produced by an assistant
	AIGenerated bool
	// Prompt is the generation prompt for AI-generated messages
	Prompt string
}

// NewDirectMessage creates a direct message record
func NewDirectMessage(accountID uuid.UUID, kind platform.Kind, externalID string, direction MessageDirection) (*DirectMessage, error) {
	if accountID == uuid.Nil {
		return nil, ErrMessageMissingAccount
	}
	if externalID == "" {
		return nil, ErrMessageMissingExternalID
	}
	if !kind.IsValid() {
		return nil, platform.ErrUnknownKind
	}
	if !direction.IsValid() {
		return nil, shared.ErrInvalidInput
	}
	return &DirectMessage{
		BaseEntity:   shared.NewBaseEntity(),
		AccountID:    accountID,
		PlatformKind: kind,
		ExternalID:   externalID,
		Direction:    direction,
	}, nil
}

// ---------------------------------------------------------------------------
// Repository Port
// ---------------------------------------------------------------------------

// DirectMessageRepository is the persistence port for direct messages.
// Upsert must be atomic per call.
type DirectMessageRepository interface {
	// Upsert inserts the message, or if (PlatformKind, ExternalID) already
	// exists, updates only the Read flag from the given message.
	Upsert(ctx context.Context, msg *DirectMessage) error
	// Insert inserts a new message and fails on conflict. Used for
	// messages this process sent itself.
	Insert(ctx context.Context, msg *DirectMessage) error
	// FindByExternalID finds a message by its platform-scoped key
	FindByExternalID(ctx context.Context, kind platform.Kind, externalID string) (*DirectMessage, error)
	// FindByAccount finds messages for an account, newest first
	FindByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]DirectMessage, error)
	// CountByAccount counts stored messages for an account
	CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error)
}
