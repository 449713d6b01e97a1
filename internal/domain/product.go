package domain

import (
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

// Product is the canonical catalog entry. Rating aliases and id shapes from
// the product collaborator are resolved once, at decode time.
type Product struct {
	ID               int64   `json:"id"`
	UUID             string  `json:"productUUID,omitempty"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	Price            float64 `json:"price"`
	Stock            int     `json:"stock"`
	Rating           float64 `json:"rating"`
	Category         string  `json:"category,omitempty"`
	MainAttachmentID string  `json:"mainAttachmentId,omitempty"`
}

// UnmarshalJSON normalizes the collaborator's product payload.
func (p *Product) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = Product{
		UUID:             stringField(raw, "productUUID", "uuid"),
		Title:            stringField(raw, "title"),
		Description:      stringField(raw, "description"),
		Category:         stringField(raw, "category"),
		MainAttachmentID: stringField(raw, "mainAttachmentId"),
	}

	switch id := raw["id"].(type) {
	case float64:
		p.ID = int64(id)
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64); err == nil {
			p.ID = n
		} else if p.UUID == "" {
			p.UUID = id
		}
	}

	if price, ok := numberField(raw, "price"); ok && price > 0 {
		p.Price = price
	}
	if stock, ok := numberField(raw, "stock"); ok && stock > 0 {
		p.Stock = int(stock)
	}
	if rating, ok := numberField(raw, "rating", "ratingAverage", "avgRating", "averageRating"); ok {
		p.Rating = rating
	}
	return nil
}

// Key identifies the product in collaborator URLs.
func (p Product) Key() string {
	if p.UUID != "" {
		return p.UUID
	}
	return strconv.FormatInt(p.ID, 10)
}

// ProductInput is the create/update form of a product.
type ProductInput struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
}
