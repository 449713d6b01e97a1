package reviews

import (
	"cmp"
	"slices"
	"strings"

	"github.com/storefront-labs/storefront/internal/domain"
)

// SortKey selects the review ordering.
type SortKey string

const (
	SortPositive SortKey = "positive"
	SortNegative SortKey = "negative"
	SortRecent   SortKey = "recent"
)

// ParseSortKey maps a query value to a SortKey, defaulting to positive.
func ParseSortKey(raw string) SortKey {
	switch key := SortKey(strings.ToLower(strings.TrimSpace(raw))); key {
	case SortNegative, SortRecent:
		return key
	default:
		return SortPositive
	}
}

// View returns a filtered and ordered copy of reviews. Sorting is stable.
// Whether recent ordering applies is decided on the whole accumulated set,
// before the text filter.
func View(reviews []domain.Review, key SortKey, onlyWithText bool) []domain.Review {
	if key == SortRecent && !RecentAvailable(reviews) {
		key = SortPositive
	}

	out := make([]domain.Review, 0, len(reviews))
	for _, r := range reviews {
		if onlyWithText && strings.TrimSpace(r.Text) == "" {
			continue
		}
		out = append(out, r)
	}

	switch key {
	case SortNegative:
		slices.SortStableFunc(out, func(a, b domain.Review) int {
			return cmp.Compare(a.Rating, b.Rating)
		})
	case SortRecent:
		slices.SortStableFunc(out, func(a, b domain.Review) int {
			return cmp.Compare(timestamp(b), timestamp(a))
		})
	default:
		slices.SortStableFunc(out, func(a, b domain.Review) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
	}
	return out
}

// RecentAvailable reports whether any review carries a creation time, which
// is what makes the recent ordering meaningful.
func RecentAvailable(reviews []domain.Review) bool {
	return slices.ContainsFunc(reviews, func(r domain.Review) bool {
		return r.CreatedAt != nil
	})
}

// timestamp places reviews without a creation time at the epoch.
func timestamp(r domain.Review) int64 {
	if r.CreatedAt == nil {
		return 0
	}
	return r.CreatedAt.UnixMilli()
}
