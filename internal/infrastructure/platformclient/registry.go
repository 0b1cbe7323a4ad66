package platformclient

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/ofauto/backend/internal/domain/platform"
)

// Factory constructs a platform client for an account. The registry calls
// it at most once per (accountID, kind) key while the result stays cached.
type Factory func(ctx context.Context, account *platform.Account) (platform.Client, error)

type clientKey struct {
	accountID uuid.UUID
	kind      platform.Kind
}

func (k clientKey) String() string {
	return k.accountID.String() + "/" + string(k.kind)
}

// Registry caches one client per (account, kind) key. First access for a
// key constructs the client through the factory; concurrent first accesses
// are collapsed into a single construction via singleflight.
type Registry struct {
	mu      sync.RWMutex
	clients map[clientKey]platform.Client
	group   singleflight.Group
	factory Factory
}

// NewRegistry creates a registry around a client factory
func NewRegistry(factory Factory) *Registry {
	return &Registry{
		clients: make(map[clientKey]platform.Client),
		factory: factory,
	}
}

// GetOrCreate returns the cached client for the account, constructing it
// if absent. Construction failures are not cached: the next call retries.
func (r *Registry) GetOrCreate(ctx context.Context, account *platform.Account) (platform.Client, error) {
	if account == nil {
		return nil, platform.ErrAccountNotFound
	}
	if !account.PlatformKind.IsValid() {
		return nil, fmt.Errorf("%w: %q", platform.ErrUnknownKind, account.PlatformKind)
	}
	key := clientKey{accountID: account.ID, kind: account.PlatformKind}

	r.mu.RLock()
	client, ok := r.clients[key]
	r.mu.RUnlock()
	if ok {
		return client, nil
	}

	v, err, _ := r.group.Do(key.String(), func() (interface{}, error) {
		// Re-check under the flight: another caller may have completed
		// between the read miss and the flight starting.
		r.mu.RLock()
		existing, ok := r.clients[key]
		r.mu.RUnlock()
		if ok {
			return existing, nil
		}

		built, err := r.factory(ctx, account)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.clients[key] = built
		r.mu.Unlock()
		return built, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(platform.Client), nil
}

// Evict drops the cached client for the key, if any. The next GetOrCreate
// constructs a fresh instance.
func (r *Registry) Evict(accountID uuid.UUID, kind platform.Kind) {
	key := clientKey{accountID: accountID, kind: kind}
	r.mu.Lock()
	delete(r.clients, key)
	r.mu.Unlock()
	r.group.Forget(key.String())
}

// EvictAll clears every cached client
func (r *Registry) EvictAll() {
	r.mu.Lock()
	r.clients = make(map[clientKey]platform.Client)
	r.mu.Unlock()
}

// Size returns the number of cached clients
func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

var _ platform.ClientRegistry = (*Registry)(nil)
