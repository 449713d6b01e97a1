package dto

import (
	"github.com/storefront-labs/storefront/internal/catalog"
)

// ProductCard is one product tile.
type ProductCard struct {
	ID          int64   `json:"id"`
	Key         string  `json:"key"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Rating      float64 `json:"rating"`
	Category    string  `json:"category,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	CanManage   bool    `json:"can_manage"`
	ShowBuy     bool    `json:"show_buy"`
}

// CatalogResponse is the rendered catalog page.
type CatalogResponse struct {
	Items      []ProductCard  `json:"items"`
	Search     string         `json:"search"`
	Sort       string         `json:"sort"`
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
	TotalItems int            `json:"total_items"`
	Pagination catalog.Window `json:"pagination"`
	CanCreate  bool           `json:"can_create"`
}

// ProductRequest payload for create and update.
type ProductRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}
