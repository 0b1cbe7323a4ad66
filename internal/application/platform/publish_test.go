package platform

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ofauto/backend/internal/domain/content"
	"github.com/ofauto/backend/internal/domain/platform"
	"github.com/ofauto/backend/internal/infrastructure/platformclient"
)

type serviceFixture struct {
	service   *OrchestrationService
	accounts  *MockAccountRepository
	contents  *MockContentItemRepository
	messages  *MockDirectMessageRepository
	snapshots *MockEngagementSnapshotRepository
	registry  *stubRegistry
	publisher *capturingPublisher
}

func newServiceFixture(fanOut FanOutSettings) *serviceFixture {
	f := &serviceFixture{
		accounts:  new(MockAccountRepository),
		contents:  new(MockContentItemRepository),
		messages:  new(MockDirectMessageRepository),
		snapshots: new(MockEngagementSnapshotRepository),
		registry:  newStubRegistry(),
		publisher: &capturingPublisher{},
	}
	f.service = NewOrchestrationService(
		f.accounts, f.contents, f.messages, f.snapshots,
		f.registry, f.publisher, fanOut, nil,
	)
	return f
}

// connectedAccount registers an account in the mock repo and a client for
// it in the stub registry
func (f *serviceFixture) connectedAccount(t *testing.T, kind platform.Kind) (*platform.Account, *platformclient.FakeClient) {
	t.Helper()
	account, err := platform.NewAccount(kind, "Creator", "vault://creds/1")
	require.NoError(t, err)
	client := platformclient.NewFakeClient(kind)
	f.accounts.On("FindByID", mock.Anything, account.ID).Return(account, nil)
	f.registry.put(account.ID, client)
	return account, client
}

func TestPublishToAccount(t *testing.T) {
	t.Run("success records a published item", func(t *testing.T) {
		f := newServiceFixture(FanOutSettings{})
		account, client := f.connectedAccount(t, platform.KindFansly)

		client.PostContentFn = func(_ context.Context, post platform.ContentPost) (*platform.PostResult, error) {
			assert.Equal(t, "hello", post.Body)
			return &platform.PostResult{ExternalID: "post-1", PublishedAt: time.Now()}, nil
		}

		var saved *content.ContentItem
		f.contents.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*content.ContentItem)
		}).Return(nil)

		result, err := f.service.PublishToAccount(context.Background(), account.ID, PublishRequest{Body: "hello"})
		require.NoError(t, err)

		assert.True(t, result.Success)
		assert.True(t, result.SavedLocally)
		assert.Equal(t, "post-1", result.ExternalID)

		require.NotNil(t, saved)
		assert.Equal(t, content.ContentStatusPublished, saved.Status)
		assert.Equal(t, "post-1", saved.ExternalID)
		assert.NotNil(t, saved.PublishedAt)

		assert.Equal(t, []string{content.EventTypeContentPublished}, f.publisher.eventTypes())
	})

	t.Run("adapter failure records a failed item with the reason", func(t *testing.T) {
		f := newServiceFixture(FanOutSettings{})
		account, client := f.connectedAccount(t, platform.KindOnlyFans)

		client.PostContentFn = func(_ context.Context, _ platform.ContentPost) (*platform.PostResult, error) {
			return nil, fmt.Errorf("%w: HTTP 429", platform.ErrRateLimited)
		}

		var saved *content.ContentItem
		f.contents.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*content.ContentItem)
		}).Return(nil)

		result, err := f.service.PublishToAccount(context.Background(), account.ID, PublishRequest{Body: "hello"})
		require.NoError(t, err)

		assert.False(t, result.Success)
		assert.True(t, result.SavedLocally)
		assert.Contains(t, result.Error, "rate limited")

		require.NotNil(t, saved)
		assert.Equal(t, content.ContentStatusFailed, saved.Status)
		assert.Contains(t, saved.FailureReason, "rate limited")

		assert.Equal(t, []string{content.EventTypeContentPublishFailed}, f.publisher.eventTypes())
	})

	t.Run("save failure after success is its own outcome", func(t *testing.T) {
		f := newServiceFixture(FanOutSettings{})
		account, client := f.connectedAccount(t, platform.KindGumroad)

		client.PostContentFn = func(_ context.Context, _ platform.ContentPost) (*platform.PostResult, error) {
			return &platform.PostResult{ExternalID: "prod-1", PublishedAt: time.Now()}, nil
		}
		f.contents.On("Save", mock.Anything, mock.Anything).Return(errors.New("disk full"))

		result, err := f.service.PublishToAccount(context.Background(), account.ID, PublishRequest{Body: "hello"})
		require.NoError(t, err)

		assert.True(t, result.Success)
		assert.False(t, result.SavedLocally)
		assert.Contains(t, result.Error, "not saved locally")
		assert.Equal(t, "prod-1", result.ExternalID)
	})

	t.Run("unknown account", func(t *testing.T) {
		f := newServiceFixture(FanOutSettings{})
		missing := uuid.New()
		f.accounts.On("FindByID", mock.Anything, missing).Return(nil, platform.ErrAccountNotFound)

		_, err := f.service.PublishToAccount(context.Background(), missing, PublishRequest{Body: "hello"})
		assert.ErrorIs(t, err, platform.ErrAccountNotFound)
	})

	t.Run("empty content is rejected before any adapter call", func(t *testing.T) {
		f := newServiceFixture(FanOutSettings{})
		account, client := f.connectedAccount(t, platform.KindFansly)

		_, err := f.service.PublishToAccount(context.Background(), account.ID, PublishRequest{})
		assert.ErrorIs(t, err, content.ErrContentEmptyBody)
		assert.Equal(t, 0, client.Calls("PostContent"))
	})

	t.Run("notification failure does not fail the publish", func(t *testing.T) {
		f := newServiceFixture(FanOutSettings{})
		f.publisher.err = errors.New("bus closed")
		account, client := f.connectedAccount(t, platform.KindFansly)

		client.PostContentFn = func(_ context.Context, _ platform.ContentPost) (*platform.PostResult, error) {
			return &platform.PostResult{ExternalID: "post-1", PublishedAt: time.Now()}, nil
		}
		f.contents.On("Save", mock.Anything, mock.Anything).Return(nil)

		result, err := f.service.PublishToAccount(context.Background(), account.ID, PublishRequest{Body: "hello"})
		require.NoError(t, err)
		assert.True(t, result.Success)
	})
}

func TestPublishToAccounts(t *testing.T) {
	t.Run("empty account list", func(t *testing.T) {
		f := newServiceFixture(FanOutSettings{})

		result, err := f.service.PublishToAccounts(context.Background(), nil, PublishRequest{Body: "hello"}, AggregationAnySuccess)
		require.NoError(t, err)
		assert.False(t, result.OverallSuccess)
		assert.Empty(t, result.Results)
	})

	t.Run("one failure does not abort the others", func(t *testing.T) {
		f := newServiceFixture(FanOutSettings{})
		f.contents.On("Save", mock.Anything, mock.Anything).Return(nil)

		good, goodClient := f.connectedAccount(t, platform.KindFansly)
		goodClient.PostContentFn = func(_ context.Context, _ platform.ContentPost) (*platform.PostResult, error) {
			return &platform.PostResult{ExternalID: "post-1", PublishedAt: time.Now()}, nil
		}

		bad, badClient := f.connectedAccount(t, platform.KindOnlyFans)
		badClient.PostContentFn = func(_ context.Context, _ platform.ContentPost) (*platform.PostResult, error) {
			return nil, fmt.Errorf("%w: HTTP 401", platform.ErrNotAuthenticated)
		}

		result, err := f.service.PublishToAccounts(context.Background(), []uuid.UUID{good.ID, bad.ID}, PublishRequest{Body: "hello"}, AggregationAnySuccess)
		require.NoError(t, err)

		require.Len(t, result.Results, 2)
		assert.True(t, result.Results[0].Success)
		assert.False(t, result.Results[1].Success)
		assert.True(t, result.OverallSuccess)
	})

	t.Run("all-success policy needs every account to succeed", func(t *testing.T) {
		f := newServiceFixture(FanOutSettings{})
		f.contents.On("Save", mock.Anything, mock.Anything).Return(nil)

		good, goodClient := f.connectedAccount(t, platform.KindFansly)
		goodClient.PostContentFn = func(_ context.Context, _ platform.ContentPost) (*platform.PostResult, error) {
			return &platform.PostResult{ExternalID: "post-1", PublishedAt: time.Now()}, nil
		}
		bad, badClient := f.connectedAccount(t, platform.KindOnlyFans)
		badClient.PostContentFn = func(_ context.Context, _ platform.ContentPost) (*platform.PostResult, error) {
			return nil, platform.ErrPermanentRejection
		}

		result, err := f.service.PublishToAccounts(context.Background(), []uuid.UUID{good.ID, bad.ID}, PublishRequest{Body: "hello"}, AggregationAllSuccess)
		require.NoError(t, err)
		assert.False(t, result.OverallSuccess)
	})

	t.Run("account resolution failure lands in that account's slot", func(t *testing.T) {
		f := newServiceFixture(FanOutSettings{})
		f.contents.On("Save", mock.Anything, mock.Anything).Return(nil)

		good, goodClient := f.connectedAccount(t, platform.KindFansly)
		goodClient.PostContentFn = func(_ context.Context, _ platform.ContentPost) (*platform.PostResult, error) {
			return &platform.PostResult{ExternalID: "post-1", PublishedAt: time.Now()}, nil
		}
		missing := uuid.New()
		f.accounts.On("FindByID", mock.Anything, missing).Return(nil, platform.ErrAccountNotFound)

		result, err := f.service.PublishToAccounts(context.Background(), []uuid.UUID{good.ID, missing}, PublishRequest{Body: "hello"}, AggregationAnySuccess)
		require.NoError(t, err)

		require.Len(t, result.Results, 2)
		assert.True(t, result.Results[0].Success)
		assert.False(t, result.Results[1].Success)
		assert.Equal(t, missing, result.Results[1].AccountID)
		assert.Contains(t, result.Results[1].Error, "account not found")
		assert.True(t, result.OverallSuccess)
	})

	t.Run("per-account timeout fails only the hung account", func(t *testing.T) {
		f := newServiceFixture(FanOutSettings{AccountTimeout: 50 * time.Millisecond})
		f.contents.On("Save", mock.Anything, mock.Anything).Return(nil)

		fast, fastClient := f.connectedAccount(t, platform.KindFansly)
		fastClient.PostContentFn = func(_ context.Context, _ platform.ContentPost) (*platform.PostResult, error) {
			return &platform.PostResult{ExternalID: "post-1", PublishedAt: time.Now()}, nil
		}

		hung, hungClient := f.connectedAccount(t, platform.KindOnlyFans)
		hungClient.PostContentFn = func(ctx context.Context, _ platform.ContentPost) (*platform.PostResult, error) {
			<-ctx.Done()
			return nil, fmt.Errorf("%w: %v", platform.ErrTransientNetwork, ctx.Err())
		}

		result, err := f.service.PublishToAccounts(context.Background(), []uuid.UUID{fast.ID, hung.ID}, PublishRequest{Body: "hello"}, AggregationAnySuccess)
		require.NoError(t, err)

		require.Len(t, result.Results, 2)
		assert.True(t, result.Results[0].Success)
		assert.False(t, result.Results[1].Success)
		assert.Contains(t, result.Results[1].Error, "transient network")
		assert.True(t, result.OverallSuccess)
	})

	t.Run("invalid policy defaults to any-success", func(t *testing.T) {
		f := newServiceFixture(FanOutSettings{})
		f.contents.On("Save", mock.Anything, mock.Anything).Return(nil)

		account, client := f.connectedAccount(t, platform.KindFansly)
		client.PostContentFn = func(_ context.Context, _ platform.ContentPost) (*platform.PostResult, error) {
			return &platform.PostResult{ExternalID: "post-1", PublishedAt: time.Now()}, nil
		}

		result, err := f.service.PublishToAccounts(context.Background(), []uuid.UUID{account.ID}, PublishRequest{Body: "hello"}, AggregationPolicy(""))
		require.NoError(t, err)
		assert.True(t, result.OverallSuccess)
	})
}
