package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ofauto/backend/internal/domain/platform"
	"github.com/ofauto/backend/internal/domain/shared"
)

// AccountModel is the persistence model for the Account domain entity.
type AccountModel struct {
	ID             uuid.UUID     `gorm:"type:uuid;primary_key"`
	PlatformKind   platform.Kind `gorm:"type:varchar(20);not null;index:idx_accounts_kind"`
	DisplayName    string        `gorm:"type:varchar(255);not null"`
	CredentialsRef string        `gorm:"type:varchar(255);not null"`
	Active         bool          `gorm:"not null;default:true;index:idx_accounts_active"`
	CreatedAt      time.Time     `gorm:"not null"`
	UpdatedAt      time.Time     `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "platform_accounts"
}

// ToDomain converts the persistence model to a domain Account entity.
func (m *AccountModel) ToDomain() *platform.Account {
	return &platform.Account{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		PlatformKind:   m.PlatformKind,
		DisplayName:    m.DisplayName,
		CredentialsRef: m.CredentialsRef,
		Active:         m.Active,
	}
}

// FromDomain populates the persistence model from a domain Account entity.
func (m *AccountModel) FromDomain(a *platform.Account) {
	m.ID = a.ID
	m.PlatformKind = a.PlatformKind
	m.DisplayName = a.DisplayName
	m.CredentialsRef = a.CredentialsRef
	m.Active = a.Active
	m.CreatedAt = a.CreatedAt
	m.UpdatedAt = a.UpdatedAt
}
