package authstate

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront-labs/storefront/internal/auth"
	"github.com/storefront-labs/storefront/internal/events"
)

// State is the single owner of session tokens. Writers go through Set and
// Clear; readers that need to react subscribe instead of polling the store.
type State struct {
	store      Store
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// NewState constructs the service.
func NewState(store Store, dispatcher events.Dispatcher, logger *zap.Logger) *State {
	return &State{store: store, dispatcher: dispatcher, logger: logger, now: time.Now}
}

// Get returns the token of a session, or "".
func (s *State) Get(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", nil
	}
	return s.store.Get(ctx, sessionID)
}

// Set stores token for the session and announces it.
func (s *State) Set(ctx context.Context, sessionID, token string) error {
	if err := s.store.Set(ctx, sessionID, token); err != nil {
		return err
	}
	claims := auth.DecodeClaims(token)
	s.publish(ctx, events.EventTokenStored, sessionID, events.TokenStoredPayload{
		Subject: claims.Subject,
		Access:  auth.NewPolicy(token != "", claims.Roles).Access().String(),
	})
	return nil
}

// Clear forgets the session token and announces it.
func (s *State) Clear(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.publish(ctx, events.EventTokenCleared, sessionID, nil)
	return nil
}

// Subscribe registers handler for token lifecycle events.
func (s *State) Subscribe(eventType events.EventType, handler events.EventHandler) {
	s.dispatcher.Subscribe(eventType, handler)
}

// Ping checks the backing store.
func (s *State) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *State) publish(ctx context.Context, eventType events.EventType, sessionID string, payload interface{}) {
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SessionID: sessionID,
		Timestamp: s.now(),
		Payload:   payload,
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("session event handler failed", zap.String("type", string(eventType)), zap.Error(err))
	}
}
