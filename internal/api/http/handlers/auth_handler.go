package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/storefront-labs/storefront/internal/api/dto"
	"github.com/storefront-labs/storefront/internal/auth"
	"github.com/storefront-labs/storefront/internal/service"
	"github.com/storefront-labs/storefront/pkg/util"
)

// AuthHandler exposes the mocked login and session endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Session handles GET /session.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	session := auth.SessionFromContext(c)
	return data(c, fiber.StatusOK, dto.SessionResponse{
		SessionID:  session.ID,
		Subject:    session.Claims.Subject,
		Roles:      session.Policy.Roles().Slice(),
		Navigation: auth.NavigationFor(session.Policy),
	})
}

// LoginForm handles GET /login, where guarded actions send anonymous visitors.
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	session := auth.SessionFromContext(c)
	if session.HasToken() {
		return c.Redirect(auth.LandingPath(session.Policy), fiber.StatusFound)
	}
	return data(c, fiber.StatusOK, dto.NoticeResponse{Notice: "login required"})
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	session := auth.SessionFromContext(c)
	result, err := h.auth.Login(c.UserContext(), session.ID, req)
	if err != nil {
		return err
	}
	return data(c, fiber.StatusOK, authResponse(result))
}

// Register handles POST /register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	session := auth.SessionFromContext(c)
	result, err := h.auth.Register(c.UserContext(), session.ID, req)
	if err != nil {
		return err
	}
	return data(c, fiber.StatusCreated, authResponse(result))
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	session := auth.SessionFromContext(c)
	if err := h.auth.Logout(c.UserContext(), session.ID); err != nil {
		return err
	}
	return data(c, fiber.StatusOK, dto.NoticeResponse{Notice: "signed out", Redirect: auth.RootPath})
}

// BecomeSeller handles POST /seller/apply.
func (h *AuthHandler) BecomeSeller(c *fiber.Ctx) error {
	notice, err := h.auth.BecomeSeller(c.UserContext(), auth.SessionFromContext(c))
	if err != nil {
		return err
	}
	return data(c, fiber.StatusAccepted, dto.NoticeResponse{Notice: notice})
}

func authResponse(result *service.LoginResult) dto.AuthResponse {
	return dto.AuthResponse{
		Token:      result.Token,
		ExpiresAt:  result.ExpiresAt,
		Redirect:   result.Redirect,
		Navigation: auth.NavigationFor(result.Policy),
	}
}
