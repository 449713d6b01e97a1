package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/storefront-labs/storefront/internal/api/dto"
	"github.com/storefront-labs/storefront/internal/auth"
	"github.com/storefront-labs/storefront/internal/domain"
	"github.com/storefront-labs/storefront/internal/service"
	"github.com/storefront-labs/storefront/pkg/util"
)

// ReviewHandler serves the review list of a product page.
type ReviewHandler struct {
	reviews *service.ReviewService
	views   *service.ViewRegistry
}

// NewReviewHandler constructs handler.
func NewReviewHandler(reviewService *service.ReviewService, views *service.ViewRegistry) *ReviewHandler {
	return &ReviewHandler{reviews: reviewService, views: views}
}

// List handles GET /product/:id/reviews?sort=&text_only=.
func (h *ReviewHandler) List(c *fiber.Ctx) error {
	q := reviewQuery(c)
	session := auth.SessionFromContext(c)
	page, err := h.reviews.List(c.UserContext(), h.views.Get(session.ID), productKey(c), q)
	if err != nil {
		return err
	}
	return data(c, fiber.StatusOK, reviewList(page, q))
}

// LoadMore handles POST /product/:id/reviews/more.
func (h *ReviewHandler) LoadMore(c *fiber.Ctx) error {
	q := reviewQuery(c)
	session := auth.SessionFromContext(c)
	page, err := h.reviews.LoadMore(c.UserContext(), h.views.Get(session.ID), productKey(c), q)
	if err != nil {
		return err
	}
	return data(c, fiber.StatusOK, reviewList(page, q))
}

// Submit handles POST /product/:id/reviews.
func (h *ReviewHandler) Submit(c *fiber.Ctx) error {
	var req dto.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	session := auth.SessionFromContext(c)
	notice, err := h.reviews.Submit(c.UserContext(), session, h.views.Get(session.ID), productKey(c), domain.ReviewInput{
		Mark: req.Mark,
		Text: req.Text,
	})
	if err != nil {
		return err
	}
	return data(c, fiber.StatusAccepted, dto.NoticeResponse{Notice: notice})
}
