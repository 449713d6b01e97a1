package catalog

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/storefront-labs/storefront/internal/domain"
)

// DefaultPageSize is used when a caller passes a non-positive page size.
const DefaultPageSize = 20

// SortKey selects the catalog ordering.
type SortKey string

const (
	SortByID     SortKey = "id"
	SortByPrice  SortKey = "price"
	SortByRating SortKey = "rating"
	SortByTitle  SortKey = "title"
)

// ParseSortKey maps a query value to a SortKey. Unknown values fall back to id.
func ParseSortKey(raw string) SortKey {
	switch key := SortKey(strings.ToLower(strings.TrimSpace(raw))); key {
	case SortByPrice, SortByRating, SortByTitle:
		return key
	default:
		return SortByID
	}
}

// Page is one rendered slice of the filtered and sorted catalog.
type Page struct {
	Items      []domain.Product
	Index      int
	TotalPages int
	TotalItems int
}

// Query filters, orders and paginates product lists.
type Query struct {
	locale          language.Tag
	defaultPageSize int
}

// NewQuery builds a query that collates titles for locale. An unparsable
// locale falls back to the root collation order.
func NewQuery(locale string, defaultPageSize int) Query {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Und
	}
	if defaultPageSize <= 0 {
		defaultPageSize = DefaultPageSize
	}
	return Query{locale: tag, defaultPageSize: defaultPageSize}
}

// View runs the catalog pipeline with root collation.
func View(products []domain.Product, searchTerm string, key SortKey, pageIndex, pageSize int) Page {
	return NewQuery("und", DefaultPageSize).View(products, searchTerm, key, pageIndex, pageSize)
}

// View returns page pageIndex of the products matching searchTerm, ordered by
// key. The input slice is never modified. A page index past the end yields an
// empty page.
func (q Query) View(products []domain.Product, searchTerm string, key SortKey, pageIndex, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = q.defaultPageSize
	}

	filtered := Filter(products, searchTerm)
	q.sort(filtered, key)

	total := len(filtered)
	page := Page{
		Items:      []domain.Product{},
		Index:      pageIndex,
		TotalItems: total,
		TotalPages: (total + pageSize - 1) / pageSize,
	}
	if pageIndex < 0 {
		return page
	}
	start := pageIndex * pageSize
	if start >= total {
		return page
	}
	end := min(start+pageSize, total)
	page.Items = filtered[start:end]
	return page
}

// Filter returns a copy of the products whose title or description contains
// term, ignoring case. A blank term keeps everything.
func Filter(products []domain.Product, term string) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	if strings.TrimSpace(term) == "" {
		return append(out, products...)
	}
	needle := strings.ToLower(term)
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Title), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			out = append(out, p)
		}
	}
	return out
}

func (q Query) sort(products []domain.Product, key SortKey) {
	switch key {
	case SortByPrice:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case SortByRating:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
	case SortByTitle:
		// Collators keep internal buffers and are not safe for concurrent use.
		c := collate.New(q.locale)
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return c.CompareString(a.Title, b.Title)
		})
	default:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return cmp.Compare(a.ID, b.ID)
		})
	}
}
