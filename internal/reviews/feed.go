package reviews

import (
	"context"
	"errors"
	"sync"

	"github.com/storefront-labs/storefront/internal/domain"
)

// DefaultPageSize is the number of reviews requested per page.
const DefaultPageSize = 10

var (
	// ErrBusy is returned when a page is already being fetched.
	ErrBusy = errors.New("reviews: load already in progress")
	// ErrStale is returned for a load whose feed was reset before it completed.
	ErrStale = errors.New("reviews: feed reset during load")
)

// PageFetcher loads one page of reviews.
type PageFetcher func(ctx context.Context, limit, offset int) ([]domain.Review, error)

// Feed accumulates the server-paginated reviews of one product view. At most
// one page fetch runs at a time. Reset bumps the generation so results of
// loads started before it are dropped.
type Feed struct {
	mu         sync.Mutex
	pageSize   int
	items      []domain.Review
	pages      int
	hasMore    bool
	busy       bool
	generation uint64
}

// NewFeed returns an empty feed.
func NewFeed(pageSize int) *Feed {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Feed{pageSize: pageSize, hasMore: true}
}

// LoadMore fetches the next page and appends it. It returns the number of
// reviews added. Once a short page has been seen it does nothing.
func (f *Feed) LoadMore(ctx context.Context, fetch PageFetcher) (int, error) {
	f.mu.Lock()
	if f.busy {
		f.mu.Unlock()
		return 0, ErrBusy
	}
	if !f.hasMore {
		f.mu.Unlock()
		return 0, nil
	}
	f.busy = true
	gen := f.generation
	offset := f.pages * f.pageSize
	f.mu.Unlock()

	page, err := fetch(ctx, f.pageSize, offset)

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.generation {
		return 0, ErrStale
	}
	f.busy = false
	if err != nil {
		return 0, err
	}
	f.items = append(f.items, page...)
	f.pages++
	f.hasMore = len(page) == f.pageSize
	return len(page), nil
}

// Reset empties the feed and invalidates loads in flight.
func (f *Feed) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generation++
	f.items = nil
	f.pages = 0
	f.hasMore = true
	f.busy = false
}

// Loaded reports whether at least one page has been fetched.
func (f *Feed) Loaded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pages > 0
}

// HasMore reports whether the last page came back full.
func (f *Feed) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasMore
}

// Busy reports whether a fetch is outstanding.
func (f *Feed) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

// Items returns a copy of the accumulated reviews in arrival order.
func (f *Feed) Items() []domain.Review {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Review(nil), f.items...)
}

// Render applies View over the whole accumulated set.
func (f *Feed) Render(key SortKey, onlyWithText bool) []domain.Review {
	return View(f.Items(), key, onlyWithText)
}
