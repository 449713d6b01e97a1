package events

import (
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTokenStored  EventType = "token_stored"
	EventTokenCleared EventType = "token_cleared"
)

// Event represents a session lifecycle change.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SessionID string      `json:"session_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// TokenStoredPayload describes the access level of a freshly stored token.
type TokenStoredPayload struct {
	Subject string `json:"subject,omitempty"`
	Access  string `json:"access"`
}
