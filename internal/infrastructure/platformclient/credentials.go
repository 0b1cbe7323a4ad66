package platformclient

import (
	"context"
	"errors"
	"sync"
)

// ErrCredentialsNotFound indicates no credentials exist for a reference
var ErrCredentialsNotFound = errors.New("platformclient: credentials not found")

// Credentials is the resolved secret material for one account. Keys are
// platform-specific ("session_cookie", "auth_token", "api_key", ...).
type Credentials map[string]string

// Get returns the value for a key, or "" if absent
func (c Credentials) Get(key string) string {
	return c[key]
}

// CredentialStore resolves an account's opaque CredentialsRef into secret
// material at client construction time. Implementations must be safe for
// concurrent use.
type CredentialStore interface {
	Resolve(ctx context.Context, ref string) (Credentials, error)
}

// StaticCredentialStore is an in-memory CredentialStore, used in tests and
// demo mode. Production deployments plug a real secret backend in here.
type StaticCredentialStore struct {
	mu      sync.RWMutex
	entries map[string]Credentials
}

// NewStaticCredentialStore creates an empty static store
func NewStaticCredentialStore() *StaticCredentialStore {
	return &StaticCredentialStore{entries: make(map[string]Credentials)}
}

// Put stores credentials under a reference
func (s *StaticCredentialStore) Put(ref string, creds Credentials) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[ref] = creds
}

// Resolve returns the credentials for a reference
func (s *StaticCredentialStore) Resolve(_ context.Context, ref string) (Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	creds, ok := s.entries[ref]
	if !ok {
		return nil, ErrCredentialsNotFound
	}
	out := make(Credentials, len(creds))
	for k, v := range creds {
		out[k] = v
	}
	return out, nil
}
