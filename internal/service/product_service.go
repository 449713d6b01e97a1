package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/storefront-labs/storefront/internal/domain"
	"github.com/storefront-labs/storefront/internal/reviews"
	"github.com/storefront-labs/storefront/internal/upstream"
	"github.com/storefront-labs/storefront/pkg/util"
)

// ProductPage is everything the product detail view shows.
type ProductPage struct {
	Product         domain.Product
	Gallery         GalleryState
	Rating          domain.RatingSummary
	RatingLoaded    bool
	Reviews         []domain.Review
	HasMoreReviews  bool
	RecentAvailable bool
}

// GalleryState is a snapshot of a product's image carousel.
type GalleryState struct {
	IDs     []string
	Index   int
	Current string
}

func galleryState(c *domain.Carousel) GalleryState {
	return GalleryState{IDs: c.IDs(), Index: c.Index(), Current: c.Current()}
}

// GalleryAction moves the image carousel of a product page.
type GalleryAction struct {
	Op    string `json:"op" validate:"oneof=next prev select"`
	Index int    `json:"index"`
}

// ProductService assembles product detail pages.
type ProductService struct {
	products ProductSource
	reviews  ReviewSource
	logger   *zap.Logger
}

// NewProductService builds the service.
func NewProductService(products ProductSource, reviews ReviewSource, logger *zap.Logger) *ProductService {
	return &ProductService{products: products, reviews: reviews, logger: logger}
}

// Detail opens a product page. The review feed of the page starts over, the
// first review page is loaded, then attachments and the rating summary are
// fetched concurrently. A failure of either of those two leaves its part
// empty instead of failing the page.
func (s *ProductService) Detail(ctx context.Context, views *SessionViews, key string) (*ProductPage, error) {
	product, err := s.products.Get(ctx, key)
	if err != nil {
		return nil, upstreamError(err, "product", "product unavailable")
	}

	feed := views.Feed(key)
	feed.Reset()
	if _, err := feed.LoadMore(ctx, s.fetchReviews(key)); err != nil && !errors.Is(err, reviews.ErrStale) {
		return nil, upstreamError(err, "reviews", "reviews unavailable")
	}

	page := &ProductPage{Product: product}

	var attachments []domain.Attachment
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := s.products.Attachments(gctx, key)
		if err != nil {
			s.logger.Warn("attachments unavailable", zap.String("product", key), zap.Error(err))
			return nil
		}
		attachments = list
		return nil
	})
	g.Go(func() error {
		summary, err := s.reviews.Rating(gctx, key)
		if err != nil {
			s.logger.Warn("rating unavailable", zap.String("product", key), zap.Error(err))
			return nil
		}
		page.Rating = summary
		page.RatingLoaded = true
		return nil
	})
	_ = g.Wait()

	gallery := domain.NewCarousel(attachments, product.MainAttachmentID)
	page.Gallery = galleryState(gallery)
	views.SetGallery(key, gallery)

	items := feed.Items()
	page.Reviews = reviews.View(items, reviews.SortPositive, false)
	page.HasMoreReviews = feed.HasMore()
	page.RecentAvailable = reviews.RecentAvailable(items)
	return page, nil
}

// MoveGallery applies action to the carousel of an opened product page.
// Selecting an index outside the gallery leaves it unchanged.
func (s *ProductService) MoveGallery(views *SessionViews, key string, action GalleryAction) (GalleryState, error) {
	if err := util.ValidateStruct(action); err != nil {
		return GalleryState{}, err
	}
	var state GalleryState
	found := views.withGallery(key, func(c *domain.Carousel) {
		switch action.Op {
		case "next":
			c.Next()
		case "prev":
			c.Prev()
		default:
			c.Select(action.Index)
		}
		state = galleryState(c)
	})
	if !found {
		return GalleryState{}, util.NewNotFound("gallery", map[string]any{"product": key})
	}
	return state, nil
}

// Media fetches an attachment body for proxying.
func (s *ProductService) Media(ctx context.Context, attachmentID string) (upstream.Binary, error) {
	bin, err := s.products.AttachmentBinary(ctx, attachmentID)
	if err != nil {
		return upstream.Binary{}, upstreamError(err, "attachment", "attachment unavailable")
	}
	return bin, nil
}

func (s *ProductService) fetchReviews(key string) reviews.PageFetcher {
	return func(ctx context.Context, limit, offset int) ([]domain.Review, error) {
		return s.reviews.ListByProduct(ctx, key, limit, offset)
	}
}
