package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/storefront-labs/storefront/internal/auth"
	"github.com/storefront-labs/storefront/internal/catalog"
	"github.com/storefront-labs/storefront/internal/config"
	"github.com/storefront-labs/storefront/internal/domain"
	"github.com/storefront-labs/storefront/pkg/util"
)

// ErrEditInSellerDashboard is returned when a seller tries to edit a product
// from the catalog. Only admins edit there.
var ErrEditInSellerDashboard = errors.New("catalog: sellers edit products from the seller dashboard")

// BrowseParams carries the catalog controls present on a request. Nil fields
// keep the visitor's current value.
type BrowseParams struct {
	Search *string
	Sort   *string
	Page   *int
}

// CatalogPage is the rendered catalog for one visitor.
type CatalogPage struct {
	Page   catalog.Page
	State  catalog.State
	Window catalog.Window
}

// CatalogService renders the catalog and forwards catalog management.
type CatalogService struct {
	products  ProductSource
	query     catalog.Query
	pageSize  int
	fetchSize int
	logger    *zap.Logger
}

// NewCatalogService builds the service.
func NewCatalogService(products ProductSource, cfg config.CatalogConfig, logger *zap.Logger) *CatalogService {
	fetchSize := cfg.FetchSize
	if fetchSize <= 0 {
		fetchSize = 100
	}
	return &CatalogService{
		products:  products,
		query:     catalog.NewQuery(cfg.Locale, cfg.PageSize),
		pageSize:  cfg.PageSize,
		fetchSize: fetchSize,
		logger:    logger,
	}
}

// Browse applies params to the visitor's position and renders the page.
// A page number is only honoured when search and sort did not change on the
// same request, since either change moves back to the first page.
func (s *CatalogService) Browse(ctx context.Context, views *SessionViews, params BrowseParams) (*CatalogPage, error) {
	products, err := s.products.List(ctx, 0, s.fetchSize)
	if err != nil {
		return nil, upstreamError(err, "products", "catalog unavailable")
	}

	browser := views.Catalog
	changed := false
	if params.Search != nil && browser.SetSearch(*params.Search) {
		changed = true
	}
	if params.Sort != nil && browser.SetSort(catalog.ParseSortKey(*params.Sort)) {
		changed = true
	}
	if params.Page != nil && !changed {
		browser.SetPage(*params.Page)
	}

	page := browser.Render(s.query, products, s.pageSize)
	return &CatalogPage{
		Page:   page,
		State:  browser.State(),
		Window: catalog.PageWindow(page.Index, page.TotalPages),
	}, nil
}

// Save creates a product when key is empty and updates it otherwise.
func (s *CatalogService) Save(ctx context.Context, session *auth.Session, key string, input domain.ProductInput) (domain.Product, error) {
	if !session.HasToken() {
		return domain.Product{}, util.NewUnauthorized(loginRequired)
	}
	if !session.Policy.CanManageCatalog() {
		return domain.Product{}, util.NewForbidden("seller or admin role required")
	}
	if key != "" && !session.Policy.IsAdmin() {
		return domain.Product{}, ErrEditInSellerDashboard
	}
	if err := util.ValidateStruct(input); err != nil {
		return domain.Product{}, err
	}

	var (
		product domain.Product
		err     error
	)
	if key == "" {
		product, err = s.products.Create(ctx, session.Token, input)
	} else {
		product, err = s.products.Update(ctx, session.Token, key, input)
		if err == nil && product.Title == "" {
			// some collaborators answer PATCH with an empty body
			product = domain.Product{UUID: key, Title: input.Title, Description: input.Description, Price: input.Price, Stock: input.Stock}
		}
	}
	if err != nil {
		return domain.Product{}, upstreamError(err, "product", "could not save product")
	}

	s.logger.Info("product saved",
		zap.String("session_id", session.ID),
		zap.String("product", product.Key()),
		zap.Bool("created", key == ""),
	)
	return product, nil
}
