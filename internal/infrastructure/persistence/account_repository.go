package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ofauto/backend/internal/domain/platform"
	"github.com/ofauto/backend/internal/infrastructure/persistence/models"
)

// GormAccountRepository implements AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// FindByID finds an account by its ID
func (r *GormAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*platform.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platform.ErrAccountNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds accounts by their IDs, omitting missing ones
func (r *GormAccountRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]platform.Account, error) {
	if len(ids) == 0 {
		return []platform.Account{}, nil
	}
	var accountModels []models.AccountModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&accountModels).Error; err != nil {
		return nil, err
	}
	return toAccounts(accountModels), nil
}

// FindByKind finds all accounts for a platform kind
func (r *GormAccountRepository) FindByKind(ctx context.Context, kind platform.Kind) ([]platform.Account, error) {
	var accountModels []models.AccountModel
	if err := r.db.WithContext(ctx).
		Where("platform_kind = ?", kind).
		Order("created_at ASC").
		Find(&accountModels).Error; err != nil {
		return nil, err
	}
	return toAccounts(accountModels), nil
}

// FindActive finds all active accounts
func (r *GormAccountRepository) FindActive(ctx context.Context) ([]platform.Account, error) {
	var accountModels []models.AccountModel
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("created_at ASC").
		Find(&accountModels).Error; err != nil {
		return nil, err
	}
	return toAccounts(accountModels), nil
}

// Save inserts or updates an account
func (r *GormAccountRepository) Save(ctx context.Context, account *platform.Account) error {
	var model models.AccountModel
	model.FromDomain(account)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes an account
func (r *GormAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.AccountModel{}, "id = ?", id).Error
}

func toAccounts(accountModels []models.AccountModel) []platform.Account {
	accounts := make([]platform.Account, len(accountModels))
	for i, model := range accountModels {
		accounts[i] = *model.ToDomain()
	}
	return accounts
}

// Ensure GormAccountRepository implements the repository port
var _ platform.AccountRepository = (*GormAccountRepository)(nil)
