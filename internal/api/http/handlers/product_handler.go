package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/storefront-labs/storefront/internal/api/dto"
	"github.com/storefront-labs/storefront/internal/auth"
	"github.com/storefront-labs/storefront/internal/reviews"
	"github.com/storefront-labs/storefront/internal/service"
	"github.com/storefront-labs/storefront/pkg/util"
)

// ProductHandler serves product pages and their media.
type ProductHandler struct {
	products *service.ProductService
	views    *service.ViewRegistry
}

// NewProductHandler constructs handler.
func NewProductHandler(productService *service.ProductService, views *service.ViewRegistry) *ProductHandler {
	return &ProductHandler{products: productService, views: views}
}

// Detail handles GET /product/:id.
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	session := auth.SessionFromContext(c)
	page, err := h.products.Detail(c.UserContext(), h.views.Get(session.ID), productKey(c))
	if err != nil {
		return err
	}

	rating := dto.RatingResponse{Loaded: page.RatingLoaded, Bars: page.Rating.Bars()}
	if page.RatingLoaded {
		rating.Average = page.Rating.Average
		rating.Count = page.Rating.Count
	}
	q := service.ReviewQuery{Sort: reviews.SortPositive}
	return data(c, fiber.StatusOK, dto.ProductDetailResponse{
		Product: productCard(page.Product, session.Policy),
		Gallery: galleryResponse(page.Gallery),
		Rating:  rating,
		Reviews: reviewList(&service.ReviewPage{
			Reviews:         page.Reviews,
			HasMore:         page.HasMoreReviews,
			RecentAvailable: page.RecentAvailable,
		}, q),
		Actions: dto.ProductActions{
			CanBuy:        session.HasToken(),
			CanReview:     session.HasToken(),
			LoginRequired: !session.HasToken(),
		},
	})
}

// Gallery handles POST /product/:id/gallery.
func (h *ProductHandler) Gallery(c *fiber.Ctx) error {
	var req dto.GalleryRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	session := auth.SessionFromContext(c)
	state, err := h.products.MoveGallery(h.views.Get(session.ID), productKey(c), service.GalleryAction{
		Op:    req.Op,
		Index: req.Index,
	})
	if err != nil {
		return err
	}
	return data(c, fiber.StatusOK, galleryResponse(state))
}

// Buy handles POST /product/:id/buy. Anonymous visitors never reach it.
func (h *ProductHandler) Buy(c *fiber.Ctx) error {
	return data(c, fiber.StatusAccepted, dto.NoticeResponse{Notice: "checkout is not available yet", Redirect: auth.CartPath})
}

// Media handles GET /media/:attachmentId.
func (h *ProductHandler) Media(c *fiber.Ctx) error {
	bin, err := h.products.Media(c.UserContext(), c.Params("attachmentId"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, bin.ContentType)
	c.Set(fiber.HeaderCacheControl, "public, max-age=300")
	return c.Send(bin.Data)
}
