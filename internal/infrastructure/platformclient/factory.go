package platformclient

import (
	"context"
	"fmt"

	"github.com/ofauto/backend/internal/domain/platform"
)

// NewFactory builds the registry factory. It resolves the account's
// credential reference through the store and constructs the adapter for
// the account's platform kind. The kind switch is closed: an unmapped
// kind means a configuration error, not a retryable condition.
func NewFactory(store CredentialStore) Factory {
	return func(ctx context.Context, account *platform.Account) (platform.Client, error) {
		creds, err := store.Resolve(ctx, account.CredentialsRef)
		if err != nil {
			return nil, fmt.Errorf("%w: account %s: %v", platform.ErrNotAuthenticated, account.ID, err)
		}

		switch account.PlatformKind {
		case platform.KindOnlyFans:
			cfg := NewOnlyFansConfig(
				creds["session_cookie"],
				creds["bc_token"],
				creds["user_id"],
				creds["user_agent"],
			)
			cfg.ProxyURL = creds["proxy_url"]
			return NewOnlyFansClient(cfg)

		case platform.KindFansly:
			return NewFanslyClient(NewFanslyConfig(
				creds["auth_token"],
				creds["account_id"],
			))

		case platform.KindPatreon:
			return NewPatreonClient(NewPatreonConfig(
				creds["client_id"],
				creds["client_secret"],
				creds["refresh_token"],
				creds["campaign_id"],
			))

		case platform.KindKoFi:
			return NewKoFiClient(NewKoFiConfig(
				creds["api_key"],
				creds["page_id"],
			))

		case platform.KindGumroad:
			return NewGumroadClient(NewGumroadConfig(
				creds["access_token"],
			))

		default:
			return nil, fmt.Errorf("%w: platform kind %q", platform.ErrUnknownKind, account.PlatformKind)
		}
	}
}
