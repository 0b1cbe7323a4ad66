package platform

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ofauto/backend/internal/domain/platform"
)

func TestAccountService(t *testing.T) {
	t.Run("connect account", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		registry := newStubRegistry()
		service := NewAccountService(accounts, registry)

		accounts.On("Save", mock.Anything, mock.Anything).Return(nil)

		account, err := service.ConnectAccount(context.Background(), platform.KindFansly, "Creator", "vault://creds/1")
		require.NoError(t, err)
		assert.True(t, account.Active)
		assert.Equal(t, platform.KindFansly, account.PlatformKind)
		accounts.AssertCalled(t, "Save", mock.Anything, account)
	})

	t.Run("connect rejects an invalid kind", func(t *testing.T) {
		service := NewAccountService(new(MockAccountRepository), newStubRegistry())

		_, err := service.ConnectAccount(context.Background(), platform.Kind("MYSPACE"), "Creator", "vault://creds/1")
		assert.ErrorIs(t, err, platform.ErrAccountInvalidKind)
	})

	t.Run("rotate credentials evicts the cached client", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		registry := newStubRegistry()
		service := NewAccountService(accounts, registry)

		account, err := platform.NewAccount(platform.KindPatreon, "Creator", "vault://creds/old")
		require.NoError(t, err)
		accounts.On("FindByID", mock.Anything, account.ID).Return(account, nil)
		accounts.On("Save", mock.Anything, account).Return(nil)

		require.NoError(t, service.RotateCredentials(context.Background(), account.ID, "vault://creds/new"))

		assert.Equal(t, "vault://creds/new", account.CredentialsRef)
		assert.Equal(t, []uuid.UUID{account.ID}, registry.evicted)
	})

	t.Run("rotate to an empty ref fails without touching the registry", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		registry := newStubRegistry()
		service := NewAccountService(accounts, registry)

		account, err := platform.NewAccount(platform.KindPatreon, "Creator", "vault://creds/old")
		require.NoError(t, err)
		accounts.On("FindByID", mock.Anything, account.ID).Return(account, nil)

		err = service.RotateCredentials(context.Background(), account.ID, "")
		assert.ErrorIs(t, err, platform.ErrAccountMissingCredentials)
		assert.Empty(t, registry.evicted)
	})

	t.Run("disconnect deactivates and evicts", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		registry := newStubRegistry()
		service := NewAccountService(accounts, registry)

		account, err := platform.NewAccount(platform.KindGumroad, "Creator", "vault://creds/1")
		require.NoError(t, err)
		accounts.On("FindByID", mock.Anything, account.ID).Return(account, nil)
		accounts.On("Save", mock.Anything, account).Return(nil)

		require.NoError(t, service.DisconnectAccount(context.Background(), account.ID))
		assert.False(t, account.Active)
		assert.Equal(t, []uuid.UUID{account.ID}, registry.evicted)
	})

	t.Run("list by kind validates the kind", func(t *testing.T) {
		service := NewAccountService(new(MockAccountRepository), newStubRegistry())

		_, err := service.ListAccountsByKind(context.Background(), platform.Kind("MYSPACE"))
		assert.ErrorIs(t, err, platform.ErrUnknownKind)
	})
}
