package service

import (
	"context"
	"sync"
	"time"

	"github.com/storefront-labs/storefront/internal/catalog"
	"github.com/storefront-labs/storefront/internal/domain"
	"github.com/storefront-labs/storefront/internal/events"
	"github.com/storefront-labs/storefront/internal/reviews"
)

// SessionViews is the UI state of one visitor: the catalog position, the
// review feed and the image gallery of every product page opened.
type SessionViews struct {
	Catalog *catalog.Browser

	mu             sync.Mutex
	reviewPageSize int
	feeds          map[string]*reviews.Feed
	galleries      map[string]*domain.Carousel
	lastSeen       time.Time
}

// Feed returns the review feed of a product, creating it on first use.
func (v *SessionViews) Feed(productKey string) *reviews.Feed {
	v.mu.Lock()
	defer v.mu.Unlock()
	feed, ok := v.feeds[productKey]
	if !ok {
		feed = reviews.NewFeed(v.reviewPageSize)
		v.feeds[productKey] = feed
	}
	return feed
}

// SetGallery replaces the carousel of a product.
func (v *SessionViews) SetGallery(productKey string, c *domain.Carousel) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.galleries[productKey] = c
}

// withGallery runs fn on the carousel of a product while holding the views
// lock. It reports false when the product page was never opened.
func (v *SessionViews) withGallery(productKey string, fn func(*domain.Carousel)) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	c, ok := v.galleries[productKey]
	if !ok {
		return false
	}
	fn(c)
	return true
}

// ViewRegistry owns the SessionViews of all visitors. Views not touched for
// longer than idle are evicted by Sweep.
type ViewRegistry struct {
	mu             sync.Mutex
	sessions       map[string]*SessionViews
	idle           time.Duration
	reviewPageSize int
	now            func() time.Time
}

// NewViewRegistry creates an empty registry.
func NewViewRegistry(idle time.Duration, reviewPageSize int) *ViewRegistry {
	return &ViewRegistry{
		sessions:       make(map[string]*SessionViews),
		idle:           idle,
		reviewPageSize: reviewPageSize,
		now:            time.Now,
	}
}

// Get returns the views of a session and marks them as used.
func (r *ViewRegistry) Get(sessionID string) *SessionViews {
	r.mu.Lock()
	defer r.mu.Unlock()
	views, ok := r.sessions[sessionID]
	if !ok {
		views = &SessionViews{
			Catalog:        catalog.NewBrowser(),
			reviewPageSize: r.reviewPageSize,
			feeds:          make(map[string]*reviews.Feed),
			galleries:      make(map[string]*domain.Carousel),
		}
		r.sessions[sessionID] = views
	}
	views.mu.Lock()
	views.lastSeen = r.now()
	views.mu.Unlock()
	return views
}

// Drop forgets a session.
func (r *ViewRegistry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
}

// Sweep evicts idle sessions and returns how many were removed.
func (r *ViewRegistry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-r.idle)
	removed := 0
	for id, views := range r.sessions {
		views.mu.Lock()
		stale := views.lastSeen.Before(cutoff)
		views.mu.Unlock()
		if stale {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of tracked sessions.
func (r *ViewRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// HandleTokenCleared drops the views of a session that logged out.
func (r *ViewRegistry) HandleTokenCleared(_ context.Context, event events.Event) error {
	r.Drop(event.SessionID)
	return nil
}
