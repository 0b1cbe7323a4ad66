package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ofauto/backend/internal/domain/content"
	"github.com/ofauto/backend/internal/domain/platform"
	"github.com/ofauto/backend/internal/domain/shared"
)

type recordingHandler struct {
	types    []string
	received []shared.DomainEvent
	err      error
	panics   bool
}

func (h *recordingHandler) Handle(_ context.Context, evt shared.DomainEvent) error {
	if h.panics {
		panic("handler blew up")
	}
	h.received = append(h.received, evt)
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func publishedEvent(t *testing.T) *content.ContentPublishedEvent {
	t.Helper()
	item, err := content.NewContentItem(uuid.New(), "caption", nil)
	require.NoError(t, err)
	require.NoError(t, item.MarkPublished("ext-1", time.Now()))
	return content.NewContentPublishedEvent(item, platform.KindOnlyFans)
}

func TestInMemoryEventBus(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers to matching handler", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{types: []string{content.EventTypeContentPublished}}
		bus.Subscribe(handler)

		evt := publishedEvent(t)
		require.NoError(t, bus.Publish(ctx, evt))

		require.Len(t, handler.received, 1)
		assert.Equal(t, content.EventTypeContentPublished, handler.received[0].EventType())
	})

	t.Run("drops events with no handler", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{types: []string{content.EventTypeDirectMessageReceived}}
		bus.Subscribe(handler)

		require.NoError(t, bus.Publish(ctx, publishedEvent(t)))
		assert.Empty(t, handler.received)
	})

	t.Run("wildcard handler receives all events", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{}
		bus.Subscribe(handler)

		require.NoError(t, bus.Publish(ctx, publishedEvent(t)))
		require.NoError(t, bus.Publish(ctx, content.NewEngagementSyncedEvent(uuid.New(), 3, 1)))

		assert.Len(t, handler.received, 2)
	})

	t.Run("failing handler does not block others", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		failing := &recordingHandler{
			types: []string{content.EventTypeContentPublished},
			err:   errors.New("handler failed"),
		}
		healthy := &recordingHandler{types: []string{content.EventTypeContentPublished}}
		bus.Subscribe(failing)
		bus.Subscribe(healthy)

		require.NoError(t, bus.Publish(ctx, publishedEvent(t)))
		assert.Len(t, healthy.received, 1)
	})

	t.Run("panicking handler is contained", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		panicking := &recordingHandler{
			types:  []string{content.EventTypeContentPublished},
			panics: true,
		}
		healthy := &recordingHandler{types: []string{content.EventTypeContentPublished}}
		bus.Subscribe(panicking)
		bus.Subscribe(healthy)

		require.NoError(t, bus.Publish(ctx, publishedEvent(t)))
		assert.Len(t, healthy.received, 1)
	})

	t.Run("unsubscribed handler stops receiving", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{types: []string{content.EventTypeContentPublished}}
		bus.Subscribe(handler)
		bus.Unsubscribe(handler)

		require.NoError(t, bus.Publish(ctx, publishedEvent(t)))
		assert.Empty(t, handler.received)
	})

	t.Run("start and stop are idempotent", func(t *testing.T) {
		bus := NewInMemoryEventBus(nil)
		require.NoError(t, bus.Start(ctx))
		require.NoError(t, bus.Stop(ctx))
		require.NoError(t, bus.Stop(ctx))
	})
}
