package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/ofauto/backend/internal/domain/content"
	"github.com/ofauto/backend/internal/domain/platform"
	"github.com/ofauto/backend/internal/domain/shared"
)

// ContentItemModel is the persistence model for the ContentItem domain entity.
type ContentItemModel struct {
	ID            uuid.UUID             `gorm:"type:uuid;primary_key"`
	AccountID     uuid.UUID             `gorm:"type:uuid;not null;index:idx_content_items_account"`
	Body          string                `gorm:"type:text"`
	MediaRefsJSON string                `gorm:"type:text;column:media_refs"`
	MediaType     content.MediaType     `gorm:"type:varchar(10);not null"`
	ScheduledAt   *time.Time
	PublishedAt   *time.Time
	ExternalID    string                `gorm:"type:varchar(100);index:idx_content_items_external"`
	Status        content.ContentStatus `gorm:"type:varchar(20);not null;index:idx_content_items_status"`
	FailureReason string                `gorm:"type:text"`
	CreatedAt     time.Time             `gorm:"not null"`
	UpdatedAt     time.Time             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ContentItemModel) TableName() string {
	return "content_items"
}

// ToDomain converts the persistence model to a domain ContentItem entity.
func (m *ContentItemModel) ToDomain() *content.ContentItem {
	item := &content.ContentItem{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		AccountID:     m.AccountID,
		Body:          m.Body,
		MediaType:     m.MediaType,
		ScheduledAt:   m.ScheduledAt,
		PublishedAt:   m.PublishedAt,
		ExternalID:    m.ExternalID,
		Status:        m.Status,
		FailureReason: m.FailureReason,
	}
	if m.MediaRefsJSON != "" {
		var refs []string
		if err := json.Unmarshal([]byte(m.MediaRefsJSON), &refs); err == nil {
			item.MediaRefs = refs
		}
	}
	return item
}

// FromDomain populates the persistence model from a domain ContentItem entity.
func (m *ContentItemModel) FromDomain(item *content.ContentItem) {
	m.ID = item.ID
	m.AccountID = item.AccountID
	m.Body = item.Body
	m.MediaType = item.MediaType
	m.ScheduledAt = item.ScheduledAt
	m.PublishedAt = item.PublishedAt
	m.ExternalID = item.ExternalID
	m.Status = item.Status
	m.FailureReason = item.FailureReason
	m.CreatedAt = item.CreatedAt
	m.UpdatedAt = item.UpdatedAt

	if len(item.MediaRefs) > 0 {
		if raw, err := json.Marshal(item.MediaRefs); err == nil {
			m.MediaRefsJSON = string(raw)
		}
	} else {
		m.MediaRefsJSON = "[]"
	}
}

// DirectMessageModel is the persistence model for the DirectMessage domain
// entity. The composite unique index enforces the (platform_kind,
// external_id) upsert key.
type DirectMessageModel struct {
	ID            uuid.UUID                `gorm:"type:uuid;primary_key"`
	AccountID     uuid.UUID                `gorm:"type:uuid;not null;index:idx_direct_messages_account"`
	PlatformKind  platform.Kind            `gorm:"type:varchar(20);not null;uniqueIndex:idx_direct_messages_platform_external,priority:1"`
	ExternalID    string                   `gorm:"type:varchar(100);not null;uniqueIndex:idx_direct_messages_platform_external,priority:2"`
	Direction     content.MessageDirection `gorm:"type:varchar(3);not null"`
	SenderID      string                   `gorm:"type:varchar(100)"`
	RecipientID   string                   `gorm:"type:varchar(100)"`
	Body          string                   `gorm:"type:text"`
	AttachmentURL string                   `gorm:"type:text"`
	SentAt        time.Time                `gorm:"index:idx_direct_messages_sent_at"`
	Read          bool                     `gorm:"not null;default:false"`
	AIGenerated   bool                     `gorm:"not null;default:false;column:ai_generated"`
	Prompt        string                   `gorm:"type:text"`
	CreatedAt     time.Time                `gorm:"not null"`
	UpdatedAt     time.Time                `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DirectMessageModel) TableName() string {
	return "direct_messages"
}

// ToDomain converts the persistence model to a domain DirectMessage entity.
func (m *DirectMessageModel) ToDomain() *content.DirectMessage {
	return &content.DirectMessage{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		AccountID:     m.AccountID,
		PlatformKind:  m.PlatformKind,
		ExternalID:    m.ExternalID,
		Direction:     m.Direction,
		SenderID:      m.SenderID,
		RecipientID:   m.RecipientID,
		Body:          m.Body,
		AttachmentURL: m.AttachmentURL,
		SentAt:        m.SentAt,
		Read:          m.Read,
		AIGenerated:   m.AIGenerated,
		Prompt:        m.Prompt,
	}
}

// FromDomain populates the persistence model from a domain DirectMessage entity.
func (m *DirectMessageModel) FromDomain(msg *content.DirectMessage) {
	m.ID = msg.ID
	m.AccountID = msg.AccountID
	m.PlatformKind = msg.PlatformKind
	m.ExternalID = msg.ExternalID
	m.Direction = msg.Direction
	m.SenderID = msg.SenderID
	m.RecipientID = msg.RecipientID
	m.Body = msg.Body
	m.AttachmentURL = msg.AttachmentURL
	m.SentAt = msg.SentAt
	m.Read = msg.Read
	m.AIGenerated = msg.AIGenerated
	m.Prompt = msg.Prompt
	m.CreatedAt = msg.CreatedAt
	m.UpdatedAt = msg.UpdatedAt
}

// EngagementSnapshotModel is the persistence model for the
// EngagementSnapshot domain entity. Rows are append-only.
type EngagementSnapshotModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	ContentID   uuid.UUID `gorm:"type:uuid;not null;index:idx_engagement_snapshots_content"`
	AccountID   uuid.UUID `gorm:"type:uuid;not null;index:idx_engagement_snapshots_account"`
	CapturedAt  time.Time `gorm:"not null;index:idx_engagement_snapshots_captured"`
	MetricsJSON string    `gorm:"type:text;column:metrics"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (EngagementSnapshotModel) TableName() string {
	return "engagement_snapshots"
}

// ToDomain converts the persistence model to a domain EngagementSnapshot entity.
func (m *EngagementSnapshotModel) ToDomain() *content.EngagementSnapshot {
	snapshot := &content.EngagementSnapshot{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ContentID:  m.ContentID,
		AccountID:  m.AccountID,
		CapturedAt: m.CapturedAt,
		Metrics:    map[string]int64{},
	}
	if m.MetricsJSON != "" {
		var metrics map[string]int64
		if err := json.Unmarshal([]byte(m.MetricsJSON), &metrics); err == nil {
			snapshot.Metrics = metrics
		}
	}
	return snapshot
}

// FromDomain populates the persistence model from a domain EngagementSnapshot entity.
func (m *EngagementSnapshotModel) FromDomain(s *content.EngagementSnapshot) {
	m.ID = s.ID
	m.ContentID = s.ContentID
	m.AccountID = s.AccountID
	m.CapturedAt = s.CapturedAt
	m.CreatedAt = s.CreatedAt
	m.UpdatedAt = s.UpdatedAt

	if len(s.Metrics) > 0 {
		if raw, err := json.Marshal(s.Metrics); err == nil {
			m.MetricsJSON = string(raw)
		}
	} else {
		m.MetricsJSON = "{}"
	}
}
