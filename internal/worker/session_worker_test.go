package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storefront-labs/storefront/internal/events"
	"github.com/storefront-labs/storefront/internal/service"
)

func TestSweeperEvictsIdleViews(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	views := service.NewViewRegistry(time.Nanosecond, 10)
	views.Get("a")
	views.Get("b")

	StartSessionWorker(ctx, nil, views, 5*time.Millisecond, zap.NewNop())
	require.Eventually(t, func() bool { return views.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestWorkerRegistersEventHandlers(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	views := service.NewViewRegistry(time.Hour, 10)
	views.Get("s1")

	StartSessionWorker(context.Background(), service.NewSessionEventService(dispatcher, views, zap.NewNop()), views, 0, zap.NewNop())

	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{Type: events.EventTokenCleared, SessionID: "s1"}))
	assert.Equal(t, 0, views.Len())
}
