package domain

import (
	"time"

	"github.com/bytedance/sonic"
)

// Review is a single product review as delivered by the review collaborator.
type Review struct {
	ID        string     `json:"id"`
	ProductID string     `json:"productId,omitempty"`
	UserID    string     `json:"userId,omitempty"`
	Rating    float64    `json:"rating"`
	Text      string     `json:"text,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// UnmarshalJSON accepts the collaborator's naming variants.
func (r *Review) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return err
	}
	rating, _ := numberField(raw, "rating", "mark")
	*r = Review{
		ID:        stringField(raw, "id", "reviewId"),
		ProductID: stringField(raw, "productId"),
		UserID:    stringField(raw, "userId", "user_id"),
		Rating:    rating,
		Text:      stringField(raw, "text"),
		CreatedAt: timeField(raw, "createdAt", "created_at"),
	}
	return nil
}

// MaskedAuthor shortens the author id for display.
func (r Review) MaskedAuthor() string {
	if r.UserID == "" {
		return "anonymous"
	}
	runes := []rune(r.UserID)
	if len(runes) <= 8 {
		return r.UserID
	}
	return string(runes[:8]) + "…"
}

// ReviewInput is the submission form of a review.
type ReviewInput struct {
	Mark int    `json:"mark" validate:"min=1,max=5"`
	Text string `json:"text" validate:"max=4000"`
}

// ReviewReceipt is the collaborator's answer to a submission.
type ReviewReceipt struct {
	Accepted bool `json:"accepted"`
}
