package content

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ofauto/backend/internal/domain/shared"
)

// ErrSnapshotMissingContent indicates a snapshot without a content reference
var ErrSnapshotMissingContent = errors.New("content: snapshot content ID is required")

// EngagementSnapshot is one point-in-time metrics reading for a content
// item. Snapshots are append-only: every successful metrics sync adds a
// row, forming a time series, never updating earlier readings.
type EngagementSnapshot struct {
	shared.BaseEntity
	// ContentID is the local content item the reading belongs to
	ContentID uuid.UUID
	// AccountID is the owning account, denormalized for account-level queries
	AccountID uuid.UUID
	// CapturedAt is when the reading was taken
	CapturedAt time.Time
	// Metrics maps metric name to count
	Metrics map[string]int64
}

// NewEngagementSnapshot creates a snapshot for a content item
func NewEngagementSnapshot(contentID, accountID uuid.UUID, capturedAt time.Time, metrics map[string]int64) (*EngagementSnapshot, error) {
	if contentID == uuid.Nil {
		return nil, ErrSnapshotMissingContent
	}
	if metrics == nil {
		metrics = map[string]int64{}
	}
	return &EngagementSnapshot{
		BaseEntity: shared.NewBaseEntity(),
		ContentID:  contentID,
		AccountID:  accountID,
		CapturedAt: capturedAt,
		Metrics:    metrics,
	}, nil
}

// ---------------------------------------------------------------------------
// Repository Port
// ---------------------------------------------------------------------------

// EngagementSnapshotRepository is the append-only persistence port for
// engagement snapshots
type EngagementSnapshotRepository interface {
	// Append stores a new snapshot. There is deliberately no update.
	Append(ctx context.Context, snapshot *EngagementSnapshot) error
	// FindByContent returns snapshots for a content item, oldest first
	FindByContent(ctx context.Context, contentID uuid.UUID) ([]EngagementSnapshot, error)
	// CountByContent counts snapshots for a content item
	CountByContent(ctx context.Context, contentID uuid.UUID) (int64, error)
}
