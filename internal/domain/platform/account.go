package platform

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ofauto/backend/internal/domain/shared"
)

// Account validation errors
var (
	ErrAccountInvalidKind        = errors.New("platform: invalid platform kind for account")
	ErrAccountMissingName        = errors.New("platform: account display name is required")
	ErrAccountMissingCredentials = errors.New("platform: account credentials reference is required")
)

// Account is a connected external-platform identity. Credentials are not
// stored here; CredentialsRef points at the secret store entry the adapter
// resolves at construction time.
type Account struct {
	shared.BaseEntity
	// PlatformKind is the platform this account belongs to
	PlatformKind Kind
	// DisplayName is the label shown to the operator
	DisplayName string
	// CredentialsRef is an opaque reference into the credential store
	CredentialsRef string
	// Active is false once the account is disconnected or its credentials
	// are known to be invalid
	Active bool
}

// NewAccount creates a new connected account
func NewAccount(kind Kind, displayName, credentialsRef string) (*Account, error) {
	a := &Account{
		BaseEntity:     shared.NewBaseEntity(),
		PlatformKind:   kind,
		DisplayName:    displayName,
		CredentialsRef: credentialsRef,
		Active:         true,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate validates the account
func (a *Account) Validate() error {
	if !a.PlatformKind.IsValid() {
		return ErrAccountInvalidKind
	}
	if a.DisplayName == "" {
		return ErrAccountMissingName
	}
	if a.CredentialsRef == "" {
		return ErrAccountMissingCredentials
	}
	return nil
}

// Capabilities returns this account's platform capability metadata
func (a *Account) Capabilities() CapabilityMetadata {
	meta, _ := Capabilities(a.PlatformKind)
	return meta
}

// SupportsDMs reports whether the account's platform has a DM channel
func (a *Account) SupportsDMs() bool {
	meta, ok := Capabilities(a.PlatformKind)
	return ok && meta.SupportsDMs
}

// RotateCredentials points the account at a new credential store entry.
// Callers must evict the account's cached client afterwards.
func (a *Account) RotateCredentials(credentialsRef string) error {
	if credentialsRef == "" {
		return ErrAccountMissingCredentials
	}
	a.CredentialsRef = credentialsRef
	a.Touch()
	return nil
}

// Deactivate marks the account as disconnected
func (a *Account) Deactivate() {
	a.Active = false
	a.Touch()
}

// ---------------------------------------------------------------------------
// Repository Port
// ---------------------------------------------------------------------------

// AccountRepository is the persistence port for connected accounts
type AccountRepository interface {
	// FindByID finds an account by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	// FindByIDs finds accounts by their IDs, omitting missing ones
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Account, error)
	// FindByKind finds all accounts for a platform kind
	FindByKind(ctx context.Context, kind Kind) ([]Account, error)
	// FindActive finds all active accounts
	FindActive(ctx context.Context) ([]Account, error)
	// Save inserts or updates an account
	Save(ctx context.Context, account *Account) error
	// Delete removes an account
	Delete(ctx context.Context, id uuid.UUID) error
}
