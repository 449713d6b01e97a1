package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/storefront-labs/storefront/internal/events"
)

// Subscriber registers handlers for session lifecycle events.
type Subscriber interface {
	Subscribe(eventType events.EventType, handler events.EventHandler)
}

// SessionEventService reacts to token changes of a session.
type SessionEventService struct {
	events Subscriber
	views  *ViewRegistry
	logger *zap.Logger
}

// NewSessionEventService creates the service.
func NewSessionEventService(subscriber Subscriber, views *ViewRegistry, logger *zap.Logger) *SessionEventService {
	return &SessionEventService{events: subscriber, views: views, logger: logger}
}

// RegisterHandlers subscribes to events.
func (s *SessionEventService) RegisterHandlers() {
	if s.events == nil {
		return
	}
	s.events.Subscribe(events.EventTokenStored, s.handleTokenStored)
	s.events.Subscribe(events.EventTokenCleared, s.handleTokenCleared)
}

func (s *SessionEventService) handleTokenStored(_ context.Context, event events.Event) error {
	s.logger.Info("TokenStored", zap.String("session_id", event.SessionID), zap.Any("payload", event.Payload))
	return nil
}

func (s *SessionEventService) handleTokenCleared(ctx context.Context, event events.Event) error {
	s.logger.Info("TokenCleared", zap.String("session_id", event.SessionID))
	if s.views == nil {
		return nil
	}
	return s.views.HandleTokenCleared(ctx, event)
}
