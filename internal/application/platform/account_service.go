package platform

import (
	"context"

	"github.com/google/uuid"

	"github.com/ofauto/backend/internal/domain/platform"
)

// AccountService manages connected account records and keeps the client
// registry consistent with credential changes
type AccountService struct {
	accounts platform.AccountRepository
	registry platform.ClientRegistry
}

// NewAccountService creates a new AccountService
func NewAccountService(accounts platform.AccountRepository, registry platform.ClientRegistry) *AccountService {
	return &AccountService{
		accounts: accounts,
		registry: registry,
	}
}

// ConnectAccount registers a new platform account
func (s *AccountService) ConnectAccount(ctx context.Context, kind platform.Kind, displayName, credentialsRef string) (*platform.Account, error) {
	account, err := platform.NewAccount(kind, displayName, credentialsRef)
	if err != nil {
		return nil, err
	}
	if err := s.accounts.Save(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// GetAccount retrieves an account by ID
func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*platform.Account, error) {
	return s.accounts.FindByID(ctx, id)
}

// ListActiveAccounts lists all active accounts
func (s *AccountService) ListActiveAccounts(ctx context.Context) ([]platform.Account, error) {
	return s.accounts.FindActive(ctx)
}

// ListAccountsByKind lists all accounts for a platform kind
func (s *AccountService) ListAccountsByKind(ctx context.Context, kind platform.Kind) ([]platform.Account, error) {
	if !kind.IsValid() {
		return nil, platform.ErrUnknownKind
	}
	return s.accounts.FindByKind(ctx, kind)
}

// RotateCredentials points the account at new secret material and evicts
// its cached client so the next operation constructs against the new
// credentials
func (s *AccountService) RotateCredentials(ctx context.Context, id uuid.UUID, credentialsRef string) error {
	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := account.RotateCredentials(credentialsRef); err != nil {
		return err
	}
	if err := s.accounts.Save(ctx, account); err != nil {
		return err
	}
	s.registry.Evict(account.ID, account.PlatformKind)
	return nil
}

// DisconnectAccount deactivates the account and drops its cached client
func (s *AccountService) DisconnectAccount(ctx context.Context, id uuid.UUID) error {
	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	account.Deactivate()
	if err := s.accounts.Save(ctx, account); err != nil {
		return err
	}
	s.registry.Evict(account.ID, account.PlatformKind)
	return nil
}
