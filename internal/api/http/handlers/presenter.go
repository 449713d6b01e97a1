package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/storefront-labs/storefront/internal/api/dto"
	"github.com/storefront-labs/storefront/internal/auth"
	"github.com/storefront-labs/storefront/internal/domain"
	"github.com/storefront-labs/storefront/internal/reviews"
	"github.com/storefront-labs/storefront/internal/service"
)

// MediaPrefix is the route serving proxied product images.
const MediaPrefix = "/media/"

func mediaURL(attachmentID string) string {
	if attachmentID == "" {
		return ""
	}
	return MediaPrefix + attachmentID
}

func productCard(p domain.Product, policy auth.Policy) dto.ProductCard {
	return dto.ProductCard{
		ID:          p.ID,
		Key:         p.Key(),
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Rating:      p.Rating,
		Category:    p.Category,
		ImageURL:    mediaURL(p.MainAttachmentID),
		CanManage:   policy.IsAdmin(),
		ShowBuy:     policy.HasUserRole(),
	}
}

func galleryResponse(g service.GalleryState) dto.GalleryResponse {
	images := make([]string, 0, len(g.IDs))
	for _, id := range g.IDs {
		images = append(images, mediaURL(id))
	}
	return dto.GalleryResponse{Images: images, Index: g.Index, Current: mediaURL(g.Current)}
}

func reviewItems(list []domain.Review) []dto.ReviewItem {
	items := make([]dto.ReviewItem, 0, len(list))
	for _, r := range list {
		items = append(items, dto.ReviewItem{
			ID:        r.ID,
			Rating:    r.Rating,
			Text:      r.Text,
			CreatedAt: r.CreatedAt,
			Author:    r.MaskedAuthor(),
		})
	}
	return items
}

func reviewList(page *service.ReviewPage, q service.ReviewQuery) dto.ReviewListResponse {
	return dto.ReviewListResponse{
		Items:           reviewItems(page.Reviews),
		Sort:            string(q.Sort),
		OnlyWithText:    q.OnlyWithText,
		HasMore:         page.HasMore,
		Loading:         page.Loading,
		RecentAvailable: page.RecentAvailable,
	}
}

// reviewQuery reads ?sort= and ?text_only= from the request.
func reviewQuery(c *fiber.Ctx) service.ReviewQuery {
	return service.ReviewQuery{
		Sort:         reviews.ParseSortKey(c.Query("sort")),
		OnlyWithText: c.QueryBool("text_only", false),
	}
}

// optionalQuery returns nil when key is absent from the query string. The
// value is copied because fiber reuses the request buffer.
func optionalQuery(c *fiber.Ctx, key string) *string {
	if !c.Context().QueryArgs().Has(key) {
		return nil
	}
	v := utils.CopyString(c.Query(key))
	return &v
}

// productKey copies the :id param so it can outlive the request.
func productKey(c *fiber.Ctx) string {
	return utils.CopyString(c.Params("id"))
}

// optionalInt returns nil when key is absent or not a number.
func optionalInt(c *fiber.Ctx, key string) *int {
	raw := optionalQuery(c, key)
	if raw == nil {
		return nil
	}
	n, err := strconv.Atoi(*raw)
	if err != nil {
		return nil
	}
	return &n
}

func data(c *fiber.Ctx, status int, payload any) error {
	return c.Status(status).JSON(fiber.Map{"data": payload})
}
