package dto

import (
	"time"

	"github.com/storefront-labs/storefront/internal/auth"
)

// AuthResponse standard response for login and registration.
type AuthResponse struct {
	Token      string          `json:"token"`
	ExpiresAt  time.Time       `json:"expires_at"`
	Redirect   string          `json:"redirect"`
	Navigation auth.Navigation `json:"navigation"`
}

// SessionResponse describes the caller as derived from the stored token.
type SessionResponse struct {
	SessionID  string          `json:"session_id"`
	Subject    string          `json:"subject,omitempty"`
	Roles      []string        `json:"roles"`
	Navigation auth.Navigation `json:"navigation"`
}

// NoticeResponse carries a user-visible message.
type NoticeResponse struct {
	Notice   string `json:"notice"`
	Redirect string `json:"redirect,omitempty"`
}

// AreaResponse is the landing payload of a guarded area.
type AreaResponse struct {
	Area       string          `json:"area"`
	Navigation auth.Navigation `json:"navigation"`
}
