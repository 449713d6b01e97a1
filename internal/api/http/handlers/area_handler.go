package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/storefront-labs/storefront/internal/api/dto"
	"github.com/storefront-labs/storefront/internal/auth"
	"github.com/storefront-labs/storefront/pkg/util"
)

// AreaHandler serves the landing payloads of the guarded areas. Their
// content is owned by other frontends; only the gate lives here.
type AreaHandler struct{}

// NewAreaHandler constructs handler.
func NewAreaHandler() *AreaHandler {
	return &AreaHandler{}
}

// Area returns a handler announcing area name.
func (h *AreaHandler) Area(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := auth.SessionFromContext(c)
		return data(c, fiber.StatusOK, dto.AreaResponse{
			Area:       name,
			Navigation: auth.NavigationFor(session.Policy),
		})
	}
}

// NotFound is the catch-all for unknown paths.
func (h *AreaHandler) NotFound(c *fiber.Ctx) error {
	return util.NewNotFound("page", map[string]any{"path": c.Path()})
}
