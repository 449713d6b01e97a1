package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/storefront-labs/storefront/internal/auth"
	"github.com/storefront-labs/storefront/internal/domain"
	"github.com/storefront-labs/storefront/internal/reviews"
	"github.com/storefront-labs/storefront/internal/upstream"
	"github.com/storefront-labs/storefront/pkg/util"
)

// ReviewQuery selects how the accumulated reviews are shown.
type ReviewQuery struct {
	Sort         reviews.SortKey
	OnlyWithText bool
}

// ReviewPage is the review list of a product view.
type ReviewPage struct {
	Reviews         []domain.Review
	HasMore         bool
	Loading         bool
	RecentAvailable bool
}

// ReviewService pages, orders and submits reviews.
type ReviewService struct {
	reviews ReviewSource
	logger  *zap.Logger
}

// NewReviewService builds the service.
func NewReviewService(source ReviewSource, logger *zap.Logger) *ReviewService {
	return &ReviewService{reviews: source, logger: logger}
}

// List renders the reviews accumulated so far, loading the first page if the
// feed is still empty.
func (s *ReviewService) List(ctx context.Context, views *SessionViews, key string, q ReviewQuery) (*ReviewPage, error) {
	feed := views.Feed(key)
	if !feed.Loaded() {
		if _, err := feed.LoadMore(ctx, s.fetch(key)); err != nil && !errors.Is(err, reviews.ErrBusy) && !errors.Is(err, reviews.ErrStale) {
			return nil, upstreamError(err, "reviews", "reviews unavailable")
		}
	}
	return s.render(feed, q), nil
}

// LoadMore appends the next page. A request made while another page is being
// fetched is rejected with CONFLICT.
func (s *ReviewService) LoadMore(ctx context.Context, views *SessionViews, key string, q ReviewQuery) (*ReviewPage, error) {
	feed := views.Feed(key)
	_, err := feed.LoadMore(ctx, s.fetch(key))
	switch {
	case errors.Is(err, reviews.ErrBusy):
		return nil, util.NewConflict("reviews are already loading", nil)
	case errors.Is(err, reviews.ErrStale):
		// the page was reopened meanwhile; show the fresh feed
	case err != nil:
		return nil, upstreamError(err, "reviews", "reviews unavailable")
	}
	return s.render(feed, q), nil
}

// Submit posts a review for the session's user. An accepted review resets the
// product's feed so the next view starts from the first page again.
func (s *ReviewService) Submit(ctx context.Context, session *auth.Session, views *SessionViews, key string, input domain.ReviewInput) (string, error) {
	if !session.HasToken() {
		return "", util.NewUnauthorized(loginRequired)
	}
	if err := util.ValidateStruct(input); err != nil {
		return "", err
	}

	receipt, err := s.reviews.Submit(ctx, session.Token, key, input)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			return "", util.NewUnauthorized(loginRequired)
		}
		return "", upstreamError(err, "product", "could not submit review")
	}
	if !receipt.Accepted {
		return "Review was not accepted.", nil
	}

	views.Feed(key).Reset()
	s.logger.Info("review accepted", zap.String("product", key), zap.String("session_id", session.ID))
	return "Review accepted. The rating will refresh in a few seconds.", nil
}

func (s *ReviewService) render(feed *reviews.Feed, q ReviewQuery) *ReviewPage {
	items := feed.Items()
	return &ReviewPage{
		Reviews:         reviews.View(items, q.Sort, q.OnlyWithText),
		HasMore:         feed.HasMore(),
		Loading:         feed.Busy(),
		RecentAvailable: reviews.RecentAvailable(items),
	}
}

func (s *ReviewService) fetch(key string) reviews.PageFetcher {
	return func(ctx context.Context, limit, offset int) ([]domain.Review, error) {
		return s.reviews.ListByProduct(ctx, key, limit, offset)
	}
}
