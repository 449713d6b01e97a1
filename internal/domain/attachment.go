package domain

import (
	"strconv"

	"github.com/bytedance/sonic"
)

// Attachment references a product image stored by the product collaborator.
type Attachment struct {
	ID string `json:"id"`
}

// UnmarshalJSON accepts a bare id or an object carrying gridFsId or id.
func (a *Attachment) UnmarshalJSON(data []byte) error {
	var raw any
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		a.ID = v
	case float64:
		a.ID = strconv.FormatFloat(v, 'f', -1, 64)
	case map[string]any:
		a.ID = stringField(v, "gridFsId", "id")
	default:
		a.ID = ""
	}
	return nil
}

// Carousel tracks the selected image of a product gallery.
type Carousel struct {
	ids      []string
	index    int
	fallback string
}

// NewCarousel builds a carousel over attachments with a fallback image id
// used when the gallery is empty.
func NewCarousel(attachments []Attachment, fallback string) *Carousel {
	ids := make([]string, 0, len(attachments))
	for _, a := range attachments {
		if a.ID != "" {
			ids = append(ids, a.ID)
		}
	}
	return &Carousel{ids: ids, fallback: fallback}
}

// Len reports the number of images.
func (c *Carousel) Len() int { return len(c.ids) }

// Index reports the selected position.
func (c *Carousel) Index() int { return c.index }

// IDs returns the gallery image ids in order.
func (c *Carousel) IDs() []string { return append([]string(nil), c.ids...) }

// Current returns the selected image id, or the fallback for an empty gallery.
func (c *Carousel) Current() string {
	if len(c.ids) == 0 {
		return c.fallback
	}
	return c.ids[c.index]
}

// Next advances with wrap-around.
func (c *Carousel) Next() {
	if len(c.ids) == 0 {
		return
	}
	c.index = (c.index + 1) % len(c.ids)
}

// Prev steps back with wrap-around.
func (c *Carousel) Prev() {
	if len(c.ids) == 0 {
		return
	}
	c.index = (c.index - 1 + len(c.ids)) % len(c.ids)
}

// Select jumps to position i. Out-of-range positions are ignored.
func (c *Carousel) Select(i int) bool {
	if i < 0 || i >= len(c.ids) {
		return false
	}
	c.index = i
	return true
}
