package platform

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ofauto/backend/internal/domain/content"
	"github.com/ofauto/backend/internal/domain/platform"
)

func TestSyncDirectMessages(t *testing.T) {
	t.Run("upserts every fetched message and returns the next cursor", func(t *testing.T) {
		f := newServiceFixture(FanOutSettings{})
		account, client := f.connectedAccount(t, platform.KindFansly)

		sentAt := time.Now().Add(-time.Hour)
		client.GetDirectMessagesFn = func(_ context.Context, limit int, cursor string) (*platform.MessagePage, error) {
			assert.Equal(t, 50, limit)
			assert.Equal(t, "", cursor)
			return &platform.MessagePage{
				Messages: []platform.Message{
					{ExternalID: "m1", SenderID: "fan-1", Body: "hi", Incoming: true, SentAt: sentAt},
					{ExternalID: "m2", SenderID: "self", Body: "hello", Incoming: false, SentAt: sentAt},
				},
				NextCursor: "m1",
			}, nil
		}

		f.messages.On("FindByExternalID", mock.Anything, platform.KindFansly, mock.Anything).
			Return(nil, content.ErrMessageNotFound)

		var upserted []*content.DirectMessage
		f.messages.On("Upsert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			upserted = append(upserted, args.Get(1).(*content.DirectMessage))
		}).Return(nil)

		result, err := f.service.SyncDirectMessages(context.Background(), account.ID, 50, "")
		require.NoError(t, err)

		assert.Equal(t, 2, result.Fetched)
		assert.Equal(t, 2, result.Stored)
		assert.Equal(t, "m1", result.NextCursor)

		require.Len(t, upserted, 2)
		assert.Equal(t, content.DirectionInbound, upserted[0].Direction)
		assert.Equal(t, content.DirectionOutbound, upserted[1].Direction)
		assert.Equal(t, account.ID, upserted[0].AccountID)

		// Only the new inbound message produces a notification.
		assert.Equal(t, []string{content.EventTypeDirectMessageReceived}, f.publisher.eventTypes())
	})

	t.Run("already stored messages notify nothing", func(t *testing.T) {
		f := newServiceFixture(FanOutSettings{})
		account, client := f.connectedAccount(t, platform.KindFansly)

		client.GetDirectMessagesFn = func(_ context.Context, _ int, _ string) (*platform.MessagePage, error) {
			return &platform.MessagePage{
				Messages: []platform.Message{{ExternalID: "m1", SenderID: "fan-1", Incoming: true}},
			}, nil
		}

		stored, err := content.NewDirectMessage(account.ID, platform.KindFansly, "m1", content.DirectionInbound)
		require.NoError(t, err)
		f.messages.On("FindByExternalID", mock.Anything, platform.KindFansly, "m1").Return(stored, nil)
		f.messages.On("Upsert", mock.Anything, mock.Anything).Return(nil)

		result, err := f.service.SyncDirectMessages(context.Background(), account.ID, 50, "")
		require.NoError(t, err)
		assert.Equal(t, 1, result.Stored)
		assert.Empty(t, f.publisher.eventTypes())
	})

	t.Run("upsert failure is counted out of stored", func(t *testing.T) {
		f := newServiceFixture(FanOutSettings{})
		account, client := f.connectedAccount(t, platform.KindFansly)

		client.GetDirectMessagesFn = func(_ context.Context, _ int, _ string) (*platform.MessagePage, error) {
			return &platform.MessagePage{
				Messages: []platform.Message{
					{ExternalID: "m1", Incoming: true},
					{ExternalID: "m2", Incoming: true},
				},
			}, nil
		}
		f.messages.On("FindByExternalID", mock.Anything, platform.KindFansly, mock.Anything).
			Return(nil, content.ErrMessageNotFound)
		f.messages.On("Upsert", mock.Anything, mock.MatchedBy(func(m *content.DirectMessage) bool {
			return m.ExternalID == "m1"
		})).Return(errors.New("constraint violation"))
		f.messages.On("Upsert", mock.Anything, mock.MatchedBy(func(m *content.DirectMessage) bool {
			return m.ExternalID == "m2"
		})).Return(nil)

		result, err := f.service.SyncDirectMessages(context.Background(), account.ID, 50, "")
		require.NoError(t, err)
		assert.Equal(t, 2, result.Fetched)
		assert.Equal(t, 1, result.Stored)
	})

	t.Run("platform without dms is rejected before the adapter", func(t *testing.T) {
		f := newServiceFixture(FanOutSettings{})
		account, client := f.connectedAccount(t, platform.KindPatreon)

		_, err := f.service.SyncDirectMessages(context.Background(), account.ID, 50, "")
		assert.ErrorIs(t, err, platform.ErrNotSupported)
		assert.Equal(t, 0, client.Calls("GetDirectMessages"))
	})
}

func TestSendDirectMessage(t *testing.T) {
	t.Run("success persists the outbound message", func(t *testing.T) {
		f := newServiceFixture(FanOutSettings{})
		account, client := f.connectedAccount(t, platform.KindFansly)

		sentAt := time.Now()
		client.SendDirectMessageFn = func(_ context.Context, msg platform.OutgoingMessage) (*platform.SendResult, error) {
			assert.Equal(t, "fan-1", msg.RecipientID)
			assert.Equal(t, "thanks for subscribing", msg.Body)
			return &platform.SendResult{ExternalID: "m9", SentAt: sentAt}, nil
		}

		var inserted *content.DirectMessage
		f.messages.On("Insert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			inserted = args.Get(1).(*content.DirectMessage)
		}).Return(nil)

		result, err := f.service.SendDirectMessage(context.Background(), account.ID, SendMessageRequest{
			RecipientID: "fan-1",
			Body:        "thanks for subscribing",
			AIGenerated: true,
			Prompt:      "warm welcome",
		})
		require.NoError(t, err)

		assert.Equal(t, "m9", result.ExternalID)
		assert.True(t, result.SavedLocally)

		require.NotNil(t, inserted)
		assert.Equal(t, content.DirectionOutbound, inserted.Direction)
		assert.True(t, inserted.AIGenerated)
		assert.Equal(t, "warm welcome", inserted.Prompt)
		assert.True(t, inserted.Read)

		assert.Equal(t, []string{content.EventTypeDirectMessageSent}, f.publisher.eventTypes())
	})

	t.Run("capability check rejects before the adapter is called", func(t *testing.T) {
		f := newServiceFixture(FanOutSettings{})
		account, client := f.connectedAccount(t, platform.KindKoFi)

		_, err := f.service.SendDirectMessage(context.Background(), account.ID, SendMessageRequest{
			RecipientID: "fan-1",
			Body:        "hi",
		})
		assert.ErrorIs(t, err, platform.ErrNotSupported)
		assert.Equal(t, 0, client.Calls("SendDirectMessage"))
	})

	t.Run("adapter failure persists nothing", func(t *testing.T) {
		f := newServiceFixture(FanOutSettings{})
		account, client := f.connectedAccount(t, platform.KindFansly)

		client.SendDirectMessageFn = func(_ context.Context, _ platform.OutgoingMessage) (*platform.SendResult, error) {
			return nil, platform.ErrRateLimited
		}

		_, err := f.service.SendDirectMessage(context.Background(), account.ID, SendMessageRequest{
			RecipientID: "fan-1",
			Body:        "hi",
		})
		assert.ErrorIs(t, err, platform.ErrRateLimited)
		f.messages.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("save failure after send is flagged not lost", func(t *testing.T) {
		f := newServiceFixture(FanOutSettings{})
		account, client := f.connectedAccount(t, platform.KindFansly)

		client.SendDirectMessageFn = func(_ context.Context, _ platform.OutgoingMessage) (*platform.SendResult, error) {
			return &platform.SendResult{ExternalID: "m9", SentAt: time.Now()}, nil
		}
		f.messages.On("Insert", mock.Anything, mock.Anything).Return(errors.New("disk full"))

		result, err := f.service.SendDirectMessage(context.Background(), account.ID, SendMessageRequest{
			RecipientID: "fan-1",
			Body:        "hi",
		})
		require.NoError(t, err)
		assert.False(t, result.SavedLocally)
		assert.Equal(t, "m9", result.ExternalID)
	})
}
