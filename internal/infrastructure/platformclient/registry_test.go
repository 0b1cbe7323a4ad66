package platformclient

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ofauto/backend/internal/domain/platform"
)

func testAccount(t *testing.T, kind platform.Kind) *platform.Account {
	t.Helper()
	account, err := platform.NewAccount(kind, "Creator", "vault://creds/1")
	require.NoError(t, err)
	return account
}

func TestRegistryGetOrCreate(t *testing.T) {
	t.Run("constructs once and caches", func(t *testing.T) {
		var constructions int32
		registry := NewRegistry(func(_ context.Context, account *platform.Account) (platform.Client, error) {
			atomic.AddInt32(&constructions, 1)
			return NewFakeClient(account.PlatformKind), nil
		})

		account := testAccount(t, platform.KindFansly)

		first, err := registry.GetOrCreate(context.Background(), account)
		require.NoError(t, err)
		second, err := registry.GetOrCreate(context.Background(), account)
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.Equal(t, int32(1), atomic.LoadInt32(&constructions))
		assert.Equal(t, 1, registry.Size())
	})

	t.Run("concurrent first access constructs once", func(t *testing.T) {
		var constructions int32
		registry := NewRegistry(func(_ context.Context, account *platform.Account) (platform.Client, error) {
			atomic.AddInt32(&constructions, 1)
			return NewFakeClient(account.PlatformKind), nil
		})

		account := testAccount(t, platform.KindOnlyFans)

		const goroutines = 32
		clients := make([]platform.Client, goroutines)
		var wg sync.WaitGroup
		wg.Add(goroutines)
		for i := 0; i < goroutines; i++ {
			go func(i int) {
				defer wg.Done()
				client, err := registry.GetOrCreate(context.Background(), account)
				assert.NoError(t, err)
				clients[i] = client
			}(i)
		}
		wg.Wait()

		assert.Equal(t, int32(1), atomic.LoadInt32(&constructions))
		for i := 1; i < goroutines; i++ {
			assert.Same(t, clients[0], clients[i])
		}
	})

	t.Run("construction failure is not cached", func(t *testing.T) {
		var attempts int32
		registry := NewRegistry(func(_ context.Context, account *platform.Account) (platform.Client, error) {
			if atomic.AddInt32(&attempts, 1) == 1 {
				return nil, errors.New("backend unavailable")
			}
			return NewFakeClient(account.PlatformKind), nil
		})

		account := testAccount(t, platform.KindPatreon)

		_, err := registry.GetOrCreate(context.Background(), account)
		require.Error(t, err)
		assert.Equal(t, 0, registry.Size())

		client, err := registry.GetOrCreate(context.Background(), account)
		require.NoError(t, err)
		assert.NotNil(t, client)
		assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))
	})

	t.Run("nil account", func(t *testing.T) {
		registry := NewRegistry(func(_ context.Context, account *platform.Account) (platform.Client, error) {
			return NewFakeClient(account.PlatformKind), nil
		})
		_, err := registry.GetOrCreate(context.Background(), nil)
		assert.ErrorIs(t, err, platform.ErrAccountNotFound)
	})

	t.Run("unknown kind", func(t *testing.T) {
		registry := NewRegistry(func(_ context.Context, account *platform.Account) (platform.Client, error) {
			return NewFakeClient(account.PlatformKind), nil
		})
		account := testAccount(t, platform.KindKoFi)
		account.PlatformKind = platform.Kind("MYSPACE")

		_, err := registry.GetOrCreate(context.Background(), account)
		assert.ErrorIs(t, err, platform.ErrUnknownKind)
	})
}

func TestRegistryEvict(t *testing.T) {
	t.Run("evicted key constructs a new instance", func(t *testing.T) {
		var constructions int32
		registry := NewRegistry(func(_ context.Context, account *platform.Account) (platform.Client, error) {
			atomic.AddInt32(&constructions, 1)
			return NewFakeClient(account.PlatformKind), nil
		})

		account := testAccount(t, platform.KindGumroad)

		first, err := registry.GetOrCreate(context.Background(), account)
		require.NoError(t, err)

		registry.Evict(account.ID, account.PlatformKind)
		assert.Equal(t, 0, registry.Size())

		second, err := registry.GetOrCreate(context.Background(), account)
		require.NoError(t, err)

		assert.NotSame(t, first, second)
		assert.Equal(t, int32(2), atomic.LoadInt32(&constructions))
	})

	t.Run("evicting an absent key is harmless", func(t *testing.T) {
		registry := NewRegistry(func(_ context.Context, account *platform.Account) (platform.Client, error) {
			return NewFakeClient(account.PlatformKind), nil
		})
		account := testAccount(t, platform.KindFansly)
		registry.Evict(account.ID, account.PlatformKind)
		assert.Equal(t, 0, registry.Size())
	})

	t.Run("evict all", func(t *testing.T) {
		registry := NewRegistry(func(_ context.Context, account *platform.Account) (platform.Client, error) {
			return NewFakeClient(account.PlatformKind), nil
		})

		for _, kind := range []platform.Kind{platform.KindOnlyFans, platform.KindFansly, platform.KindPatreon} {
			_, err := registry.GetOrCreate(context.Background(), testAccount(t, kind))
			require.NoError(t, err)
		}
		require.Equal(t, 3, registry.Size())

		registry.EvictAll()
		assert.Equal(t, 0, registry.Size())
	})
}

func TestRegistrySeparateKeysPerAccount(t *testing.T) {
	registry := NewRegistry(func(_ context.Context, account *platform.Account) (platform.Client, error) {
		return NewFakeClient(account.PlatformKind), nil
	})

	first := testAccount(t, platform.KindFansly)
	second := testAccount(t, platform.KindFansly)

	clientA, err := registry.GetOrCreate(context.Background(), first)
	require.NoError(t, err)
	clientB, err := registry.GetOrCreate(context.Background(), second)
	require.NoError(t, err)

	assert.NotSame(t, clientA, clientB)
	assert.Equal(t, 2, registry.Size())
}
