package dto

import (
	"time"

	"github.com/storefront-labs/storefront/internal/domain"
)

// GalleryResponse is the image carousel state.
type GalleryResponse struct {
	Images  []string `json:"images"`
	Index   int      `json:"index"`
	Current string   `json:"current,omitempty"`
}

// RatingResponse is the rating summary with its histogram.
type RatingResponse struct {
	Loaded  bool               `json:"loaded"`
	Average float64            `json:"average"`
	Count   int                `json:"count"`
	Bars    []domain.RatingBar `json:"bars"`
}

// ReviewItem is one rendered review.
type ReviewItem struct {
	ID        string     `json:"id"`
	Rating    float64    `json:"rating"`
	Text      string     `json:"text,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	Author    string     `json:"author"`
}

// ReviewListResponse is the review list of a product.
type ReviewListResponse struct {
	Items           []ReviewItem `json:"items"`
	Sort            string       `json:"sort"`
	OnlyWithText    bool         `json:"only_with_text"`
	HasMore         bool         `json:"has_more"`
	Loading         bool         `json:"loading"`
	RecentAvailable bool         `json:"recent_available"`
}

// ProductActions tells the page which actions the caller may take.
type ProductActions struct {
	CanBuy        bool `json:"can_buy"`
	CanReview     bool `json:"can_review"`
	LoginRequired bool `json:"login_required"`
}

// ProductDetailResponse is the product page.
type ProductDetailResponse struct {
	Product ProductCard        `json:"product"`
	Gallery GalleryResponse    `json:"gallery"`
	Rating  RatingResponse     `json:"rating"`
	Reviews ReviewListResponse `json:"reviews"`
	Actions ProductActions     `json:"actions"`
}

// ReviewRequest payload for a new review.
type ReviewRequest struct {
	Mark int    `json:"mark"`
	Text string `json:"text"`
}

// GalleryRequest payload for moving the carousel.
type GalleryRequest struct {
	Op    string `json:"op"`
	Index int    `json:"index"`
}
