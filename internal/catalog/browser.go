package catalog

import (
	"sync"

	"github.com/storefront-labs/storefront/internal/domain"
)

// State is a snapshot of one visitor's browsing position.
type State struct {
	Search string
	Sort   SortKey
	Page   int
}

// Browser keeps the search, sort and page of one visitor. Changing the search
// term or the sort key moves back to the first page.
type Browser struct {
	mu    sync.Mutex
	state State
}

// NewBrowser starts on page 0 sorted by id.
func NewBrowser() *Browser {
	return &Browser{state: State{Sort: SortByID}}
}

// SetSearch updates the search term and reports whether it changed.
func (b *Browser) SetSearch(term string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if term == b.state.Search {
		return false
	}
	b.state.Search = term
	b.state.Page = 0
	return true
}

// SetSort updates the sort key and reports whether it changed.
func (b *Browser) SetSort(key SortKey) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if key == b.state.Sort {
		return false
	}
	b.state.Sort = key
	b.state.Page = 0
	return true
}

// SetPage moves to page i. Negative pages are clamped to 0.
func (b *Browser) SetPage(i int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.Page = max(i, 0)
}

// State returns the current position.
func (b *Browser) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Render applies the current position to products.
func (b *Browser) Render(q Query, products []domain.Product, pageSize int) Page {
	s := b.State()
	return q.View(products, s.Search, s.Sort, s.Page, pageSize)
}
