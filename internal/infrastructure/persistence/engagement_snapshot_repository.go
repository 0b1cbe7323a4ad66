package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ofauto/backend/internal/domain/content"
	"github.com/ofauto/backend/internal/infrastructure/persistence/models"
)

// GormEngagementSnapshotRepository implements EngagementSnapshotRepository
// using GORM. Snapshots are append-only; there is no update path.
type GormEngagementSnapshotRepository struct {
	db *gorm.DB
}

// NewGormEngagementSnapshotRepository creates a new GormEngagementSnapshotRepository
func NewGormEngagementSnapshotRepository(db *gorm.DB) *GormEngagementSnapshotRepository {
	return &GormEngagementSnapshotRepository{db: db}
}

// Append stores a new snapshot
func (r *GormEngagementSnapshotRepository) Append(ctx context.Context, snapshot *content.EngagementSnapshot) error {
	var model models.EngagementSnapshotModel
	model.FromDomain(snapshot)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByContent returns snapshots for a content item, oldest first
func (r *GormEngagementSnapshotRepository) FindByContent(ctx context.Context, contentID uuid.UUID) ([]content.EngagementSnapshot, error) {
	var snapshotModels []models.EngagementSnapshotModel
	if err := r.db.WithContext(ctx).
		Where("content_id = ?", contentID).
		Order("captured_at ASC").
		Find(&snapshotModels).Error; err != nil {
		return nil, err
	}

	snapshots := make([]content.EngagementSnapshot, len(snapshotModels))
	for i, model := range snapshotModels {
		snapshots[i] = *model.ToDomain()
	}
	return snapshots, nil
}

// CountByContent counts snapshots for a content item
func (r *GormEngagementSnapshotRepository) CountByContent(ctx context.Context, contentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.EngagementSnapshotModel{}).
		Where("content_id = ?", contentID).
		Count(&count).Error
	return count, err
}

// Ensure GormEngagementSnapshotRepository implements the repository port
var _ content.EngagementSnapshotRepository = (*GormEngagementSnapshotRepository)(nil)
