package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sessionKey = "storefront_session"

// TokenReader looks up the bearer token stored for a session.
type TokenReader interface {
	Get(ctx context.Context, sessionID string) (string, error)
}

// Session is the caller as seen by the storefront for one request.
type Session struct {
	ID     string
	Token  string
	Claims Claims
	Policy Policy
}

// HasToken reports whether the caller is logged in.
func (s *Session) HasToken() bool {
	return s != nil && s.Token != ""
}

// SessionMiddleware assigns a session cookie and resolves the caller's token.
type SessionMiddleware struct {
	tokens     TokenReader
	cookieName string
	logger     *zap.Logger
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(tokens TokenReader, cookieName string, logger *zap.Logger) *SessionMiddleware {
	return &SessionMiddleware{tokens: tokens, cookieName: cookieName, logger: logger}
}

// Handle loads the session. The token is read from the store on every request
// so logins and logouts elsewhere are observed on the next navigation.
// An explicit Authorization header takes precedence over the stored token.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	sessionID := utils.CopyString(c.Cookies(m.cookieName))
	if _, err := uuid.Parse(sessionID); err != nil {
		sessionID = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     m.cookieName,
			Value:    sessionID,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}

	token := bearerToken(utils.CopyString(c.Get(fiber.HeaderAuthorization)))
	if token == "" {
		stored, err := m.tokens.Get(c.UserContext(), sessionID)
		if err != nil {
			m.logger.Warn("session token lookup failed", zap.String("session_id", sessionID), zap.Error(err))
		}
		token = stored
	}

	claims := DecodeClaims(token)
	c.Locals(sessionKey, &Session{
		ID:     sessionID,
		Token:  token,
		Claims: claims,
		Policy: NewPolicy(token != "", claims.Roles),
	})
	return c.Next()
}

// SessionFromContext returns the request session, or an anonymous one.
func SessionFromContext(c *fiber.Ctx) *Session {
	if session, ok := c.Locals(sessionKey).(*Session); ok && session != nil {
		return session
	}
	return &Session{}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
