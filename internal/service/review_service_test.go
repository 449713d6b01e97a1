package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storefront-labs/storefront/internal/domain"
	"github.com/storefront-labs/storefront/internal/reviews"
	"github.com/storefront-labs/storefront/internal/upstream"
)

func TestReviewListAndLoadMore(t *testing.T) {
	source := &fakeReviews{all: reviewsOf(15)}
	svc := NewReviewService(source, zap.NewNop())
	views := NewViewRegistry(time.Minute, 10).Get("s1")
	ctx := context.Background()

	page, err := svc.List(ctx, views, "p1", ReviewQuery{Sort: reviews.SortNegative})
	require.NoError(t, err)
	assert.Len(t, page.Reviews, 10)
	assert.True(t, page.HasMore)
	assert.Equal(t, 1.0, page.Reviews[0].Rating)

	page, err = svc.List(ctx, views, "p1", ReviewQuery{})
	require.NoError(t, err)
	assert.Len(t, page.Reviews, 10, "listing again does not fetch")

	page, err = svc.LoadMore(ctx, views, "p1", ReviewQuery{Sort: reviews.SortPositive})
	require.NoError(t, err)
	assert.Len(t, page.Reviews, 15)
	assert.False(t, page.HasMore)
	assert.False(t, page.RecentAvailable)
	assert.Equal(t, []int{0, 10}, source.offsets)
}

func TestRecentOrderMatchesRecentAvailable(t *testing.T) {
	dated := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	source := &fakeReviews{all: []domain.Review{
		{ID: "a", Rating: 1, Text: "meh"},
		{ID: "b", Rating: 5, Text: "great"},
		{ID: "c", Rating: 3, CreatedAt: &dated},
	}}
	svc := NewReviewService(source, zap.NewNop())
	views := NewViewRegistry(time.Minute, 10).Get("s1")

	page, err := svc.List(context.Background(), views, "p1", ReviewQuery{Sort: reviews.SortRecent, OnlyWithText: true})
	require.NoError(t, err)
	assert.True(t, page.RecentAvailable)
	require.Len(t, page.Reviews, 2)
	assert.Equal(t, "a", page.Reviews[0].ID)
	assert.Equal(t, "b", page.Reviews[1].ID)
}

func TestSubmitReview(t *testing.T) {
	source := &fakeReviews{all: reviewsOf(3), receipt: domain.ReviewReceipt{Accepted: true}}
	svc := NewReviewService(source, zap.NewNop())
	views := NewViewRegistry(time.Minute, 10).Get("s1")
	ctx := context.Background()

	_, err := svc.Submit(ctx, sessionWithRoles(), views, "p1", domain.ReviewInput{Mark: 5})
	assert.Equal(t, "UNAUTHORIZED", domainCode(t, err))

	_, err = svc.Submit(ctx, sessionWithRoles("USER"), views, "p1", domain.ReviewInput{Mark: 0})
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
	assert.Empty(t, source.submitted, "invalid reviews are never sent")

	_, err = svc.List(ctx, views, "p1", ReviewQuery{})
	require.NoError(t, err)
	require.True(t, views.Feed("p1").Loaded())

	notice, err := svc.Submit(ctx, sessionWithRoles("USER"), views, "p1", domain.ReviewInput{Mark: 4, Text: "ok"})
	require.NoError(t, err)
	assert.Contains(t, notice, "accepted")
	assert.False(t, views.Feed("p1").Loaded(), "accepted review resets the feed")
}

func TestSubmitReviewUnauthorizedUpstream(t *testing.T) {
	source := &fakeReviews{submitErr: upstream.ErrUnauthorized}
	svc := NewReviewService(source, zap.NewNop())

	_, err := svc.Submit(context.Background(), sessionWithRoles("USER"), NewViewRegistry(time.Minute, 10).Get("s1"), "p1", domain.ReviewInput{Mark: 3})
	assert.Equal(t, "UNAUTHORIZED", domainCode(t, err))
}

func TestSubmitReviewNotAccepted(t *testing.T) {
	svc := NewReviewService(&fakeReviews{}, zap.NewNop())
	notice, err := svc.Submit(context.Background(), sessionWithRoles("USER"), NewViewRegistry(time.Minute, 10).Get("s1"), "p1", domain.ReviewInput{Mark: 3})
	require.NoError(t, err)
	assert.Contains(t, notice, "not accepted")
}
