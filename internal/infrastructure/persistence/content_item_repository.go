package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ofauto/backend/internal/domain/content"
	"github.com/ofauto/backend/internal/infrastructure/persistence/models"
)

// GormContentItemRepository implements ContentItemRepository using GORM
type GormContentItemRepository struct {
	db *gorm.DB
}

// NewGormContentItemRepository creates a new GormContentItemRepository
func NewGormContentItemRepository(db *gorm.DB) *GormContentItemRepository {
	return &GormContentItemRepository{db: db}
}

// FindByID finds a content item by its ID
func (r *GormContentItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.ContentItem, error) {
	var model models.ContentItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, content.ErrContentNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByAccount finds all content items for an account, newest first
func (r *GormContentItemRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) ([]content.ContentItem, error) {
	var itemModels []models.ContentItemModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&itemModels).Error; err != nil {
		return nil, err
	}
	return toContentItems(itemModels), nil
}

// FindPublishedByAccount finds items in PUBLISHED status for an account
func (r *GormContentItemRepository) FindPublishedByAccount(ctx context.Context, accountID uuid.UUID) ([]content.ContentItem, error) {
	var itemModels []models.ContentItemModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND status = ?", accountID, content.ContentStatusPublished).
		Order("published_at DESC").
		Find(&itemModels).Error; err != nil {
		return nil, err
	}
	return toContentItems(itemModels), nil
}

// Save inserts or updates a content item
func (r *GormContentItemRepository) Save(ctx context.Context, item *content.ContentItem) error {
	var model models.ContentItemModel
	model.FromDomain(item)
	return r.db.WithContext(ctx).Save(&model).Error
}

func toContentItems(itemModels []models.ContentItemModel) []content.ContentItem {
	items := make([]content.ContentItem, len(itemModels))
	for i, model := range itemModels {
		items[i] = *model.ToDomain()
	}
	return items
}

// Ensure GormContentItemRepository implements the repository port
var _ content.ContentItemRepository = (*GormContentItemRepository)(nil)
