package platformclient

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// LoadCredentialsFile reads a TOML file of credential references into a
// StaticCredentialStore. Each top-level table is one reference, its keys
// the platform-specific secret material:
//
//	["vault/creator-main"]
//	auth_token = "..."
//	account_id = "..."
//
// An empty path returns an empty store, so demo deployments can run
// without a secrets file.
func LoadCredentialsFile(path string) (*StaticCredentialStore, error) {
	store := NewStaticCredentialStore()
	if path == "" {
		return store, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}

	entries := make(map[string]map[string]string)
	if err := toml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse credentials file %s: %w", path, err)
	}

	for ref, creds := range entries {
		store.Put(ref, Credentials(creds))
	}
	return store, nil
}
