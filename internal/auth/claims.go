package auth

import (
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	jwt "github.com/golang-jwt/jwt/v5"
)

// Claims is the unverified content of a bearer token's payload segment.
type Claims struct {
	Roles     RoleSet
	Subject   string
	ExpiresAt time.Time
}

type tokenPayload struct {
	Roles       []string         `json:"roles"`
	Authorities []string         `json:"authorities"`
	Subject     string           `json:"sub"`
	UserID      any              `json:"user_id"`
	ExpiresAt   *jwt.NumericDate `json:"exp"`
}

var segmentParser = jwt.NewParser(jwt.WithPaddingAllowed())

// DecodeClaims reads roles, subject and expiry from the token payload.
//
// The signature is NOT verified. The result only decides which UI affordances
// and routes the storefront offers. Every authorization decision that matters
// is taken again by the collaborator services, which verify the token.
//
// DecodeClaims never fails: an empty, malformed or role-less token yields
// empty Claims.
func DecodeClaims(token string) Claims {
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}
	}
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Claims{}
	}
	segment, err := segmentParser.DecodeSegment(parts[1])
	if err != nil {
		return Claims{}
	}
	var payload tokenPayload
	if err := sonic.Unmarshal(segment, &payload); err != nil {
		return Claims{}
	}

	roles := payload.Roles
	if len(roles) == 0 {
		roles = payload.Authorities
	}
	if len(roles) == 0 {
		return Claims{}
	}

	claims := Claims{Roles: NewRoleSet(roles...), Subject: payload.Subject}
	if claims.Subject == "" {
		switch id := payload.UserID.(type) {
		case string:
			claims.Subject = id
		case float64:
			claims.Subject = strconv.FormatFloat(id, 'f', -1, 64)
		}
	}
	if payload.ExpiresAt != nil {
		claims.ExpiresAt = payload.ExpiresAt.Time
	}
	return claims
}

// Expired reports whether the expiry lies strictly before now. Tokens without
// an expiry never expire. Route gating does not consult this.
func (c Claims) Expired(now time.Time) bool {
	if c.ExpiresAt.IsZero() {
		return false
	}
	return c.ExpiresAt.Before(now)
}
