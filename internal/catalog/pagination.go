package catalog

// windowSize is the number of page links shown at once.
const windowSize = 5

// Window describes the page links rendered under the catalog grid.
type Window struct {
	Current int   `json:"current"`
	Total   int   `json:"total"`
	Pages   []int `json:"pages"`
	HasPrev bool  `json:"has_prev"`
	HasNext bool  `json:"has_next"`
}

// PageWindow centres up to five page numbers on current, clamped to both ends
// of the range. No links are produced for a single page.
func PageWindow(current, total int) Window {
	w := Window{Current: current, Total: total, Pages: []int{}}
	if total <= 1 {
		return w
	}

	var first int
	switch {
	case total <= windowSize, current < 3:
		first = 0
	case current >= total-3:
		first = total - windowSize
	default:
		first = current - 2
	}
	for i := 0; i < min(windowSize, total); i++ {
		w.Pages = append(w.Pages, first+i)
	}
	w.HasPrev = current > 0
	w.HasNext = current < total-1
	return w
}
