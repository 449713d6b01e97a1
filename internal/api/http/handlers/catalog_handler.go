package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/storefront-labs/storefront/internal/api/dto"
	"github.com/storefront-labs/storefront/internal/auth"
	"github.com/storefront-labs/storefront/internal/domain"
	"github.com/storefront-labs/storefront/internal/service"
	"github.com/storefront-labs/storefront/pkg/util"
)

// CatalogHandler serves the product grid and catalog management.
type CatalogHandler struct {
	catalog *service.CatalogService
	views   *service.ViewRegistry
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalogService *service.CatalogService, views *service.ViewRegistry) *CatalogHandler {
	return &CatalogHandler{catalog: catalogService, views: views}
}

// Browse handles GET /?q=&sort=&page=.
func (h *CatalogHandler) Browse(c *fiber.Ctx) error {
	session := auth.SessionFromContext(c)
	page, err := h.catalog.Browse(c.UserContext(), h.views.Get(session.ID), service.BrowseParams{
		Search: optionalQuery(c, "q"),
		Sort:   optionalQuery(c, "sort"),
		Page:   optionalInt(c, "page"),
	})
	if err != nil {
		return err
	}

	cards := make([]dto.ProductCard, 0, len(page.Page.Items))
	for _, p := range page.Page.Items {
		cards = append(cards, productCard(p, session.Policy))
	}
	return data(c, fiber.StatusOK, dto.CatalogResponse{
		Items:      cards,
		Search:     page.State.Search,
		Sort:       string(page.State.Sort),
		Page:       page.State.Page,
		TotalPages: page.Page.TotalPages,
		TotalItems: page.Page.TotalItems,
		Pagination: page.Window,
		CanCreate:  session.Policy.CanManageCatalog(),
	})
}

// Create handles POST /products.
func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	return h.save(c, "", fiber.StatusCreated)
}

// Update handles PATCH /products/:id.
func (h *CatalogHandler) Update(c *fiber.Ctx) error {
	return h.save(c, productKey(c), fiber.StatusOK)
}

func (h *CatalogHandler) save(c *fiber.Ctx, key string, status int) error {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	session := auth.SessionFromContext(c)
	product, err := h.catalog.Save(c.UserContext(), session, key, domain.ProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if errors.Is(err, service.ErrEditInSellerDashboard) {
		return c.Redirect(auth.SellerPath, fiber.StatusFound)
	}
	if err != nil {
		return err
	}
	return data(c, status, productCard(product, session.Policy))
}
