package reviews

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront-labs/storefront/internal/domain"
)

// pagedSource serves total reviews in pages and records requested offsets.
type pagedSource struct {
	total   int
	offsets []int
}

func (s *pagedSource) fetch(_ context.Context, limit, offset int) ([]domain.Review, error) {
	s.offsets = append(s.offsets, offset)
	var page []domain.Review
	for i := offset; i < offset+limit && i < s.total; i++ {
		page = append(page, domain.Review{ID: fmt.Sprintf("r%d", i), Rating: float64(i%5 + 1)})
	}
	return page, nil
}

func TestFeedLoadsUntilShortPage(t *testing.T) {
	ctx := context.Background()
	src := &pagedSource{total: 23}
	feed := NewFeed(10)
	assert.False(t, feed.Loaded())

	for feed.HasMore() {
		_, err := feed.LoadMore(ctx, src.fetch)
		require.NoError(t, err)
	}

	assert.Equal(t, []int{0, 10, 20}, src.offsets)
	assert.Len(t, feed.Items(), 23)
	assert.True(t, feed.Loaded())

	n, err := feed.LoadMore(ctx, src.fetch)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, src.offsets, 3, "no request once the feed is exhausted")
}

func TestFeedRenderSortsAccumulatedSet(t *testing.T) {
	ctx := context.Background()
	feed := NewFeed(2)
	pages := [][]domain.Review{
		{{ID: "a", Rating: 2}, {ID: "b", Rating: 3}},
		{{ID: "c", Rating: 5}},
	}
	for _, page := range pages {
		page := page
		_, err := feed.LoadMore(ctx, func(context.Context, int, int) ([]domain.Review, error) { return page, nil })
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"c", "b", "a"}, ids(feed.Render(SortPositive, false)))
	assert.False(t, feed.HasMore())
}

func TestFeedRejectsReentry(t *testing.T) {
	ctx := context.Background()
	feed := NewFeed(1)
	release := make(chan struct{})
	started := make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := feed.LoadMore(ctx, func(context.Context, int, int) ([]domain.Review, error) {
			close(started)
			<-release
			return []domain.Review{{ID: "first"}}, nil
		})
		done <- err
	}()
	<-started

	assert.True(t, feed.Busy())
	_, err := feed.LoadMore(ctx, func(context.Context, int, int) ([]domain.Review, error) {
		t.Fatal("second fetch must not start")
		return nil, nil
	})
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, feed.Busy())
	assert.Equal(t, []string{"first"}, ids(feed.Items()))
}

func TestFeedResetDiscardsInflightLoad(t *testing.T) {
	ctx := context.Background()
	feed := NewFeed(1)
	release := make(chan struct{})
	started := make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := feed.LoadMore(ctx, func(context.Context, int, int) ([]domain.Review, error) {
			close(started)
			<-release
			return []domain.Review{{ID: "stale"}}, nil
		})
		done <- err
	}()
	<-started

	feed.Reset()
	close(release)
	assert.ErrorIs(t, <-done, ErrStale)
	assert.Empty(t, feed.Items())
	assert.True(t, feed.HasMore())
	assert.False(t, feed.Busy())
}

func TestFeedFetchErrorKeepsState(t *testing.T) {
	feed := NewFeed(5)
	boom := errors.New("unavailable")

	_, err := feed.LoadMore(context.Background(), func(context.Context, int, int) ([]domain.Review, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, feed.Busy())
	assert.False(t, feed.Loaded())
	assert.True(t, feed.HasMore())
}
