package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ofauto/backend/internal/domain/content"
	"github.com/ofauto/backend/internal/domain/platform"
	"github.com/ofauto/backend/internal/infrastructure/persistence/models"
)

// GormDirectMessageRepository implements DirectMessageRepository using GORM
type GormDirectMessageRepository struct {
	db *gorm.DB
}

// NewGormDirectMessageRepository creates a new GormDirectMessageRepository
func NewGormDirectMessageRepository(db *gorm.DB) *GormDirectMessageRepository {
	return &GormDirectMessageRepository{db: db}
}

// Upsert inserts the message, or if the (platform_kind, external_id) key
// already exists, updates only the read flag. Repeating a sync page is
// therefore idempotent.
func (r *GormDirectMessageRepository) Upsert(ctx context.Context, msg *content.DirectMessage) error {
	var model models.DirectMessageModel
	model.FromDomain(msg)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "platform_kind"}, {Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"read", "updated_at"}),
	}).Create(&model).Error
}

// Insert inserts a new message and fails on conflict
func (r *GormDirectMessageRepository) Insert(ctx context.Context, msg *content.DirectMessage) error {
	var model models.DirectMessageModel
	model.FromDomain(msg)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByExternalID finds a message by its platform-scoped key
func (r *GormDirectMessageRepository) FindByExternalID(ctx context.Context, kind platform.Kind, externalID string) (*content.DirectMessage, error) {
	var model models.DirectMessageModel
	if err := r.db.WithContext(ctx).
		Where("platform_kind = ? AND external_id = ?", kind, externalID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, content.ErrMessageNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByAccount finds messages for an account, newest first
func (r *GormDirectMessageRepository) FindByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]content.DirectMessage, error) {
	query := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("sent_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var messageModels []models.DirectMessageModel
	if err := query.Find(&messageModels).Error; err != nil {
		return nil, err
	}

	messages := make([]content.DirectMessage, len(messageModels))
	for i, model := range messageModels {
		messages[i] = *model.ToDomain()
	}
	return messages, nil
}

// CountByAccount counts stored messages for an account
func (r *GormDirectMessageRepository) CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.DirectMessageModel{}).
		Where("account_id = ?", accountID).
		Count(&count).Error
	return count, err
}

// Ensure GormDirectMessageRepository implements the repository port
var _ content.DirectMessageRepository = (*GormDirectMessageRepository)(nil)
