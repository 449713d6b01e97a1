package upstream

import (
	"context"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/storefront-labs/storefront/internal/domain"
)

// ReviewClient talks to the review collaborator.
type ReviewClient struct {
	client  *Client
	baseURL string
}

// NewReviewClient binds client to the review service root URL.
func NewReviewClient(client *Client, baseURL string) *ReviewClient {
	return &ReviewClient{client: client, baseURL: baseURL}
}

// ListByProduct fetches one page of a product's reviews.
func (r *ReviewClient) ListByProduct(ctx context.Context, productKey string, limit, offset int) ([]domain.Review, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	reviews := []domain.Review{}
	if err := r.client.getList(ctx, r.productURL(productKey)+"?"+q.Encode(), &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// Rating fetches the aggregated rating of a product.
func (r *ReviewClient) Rating(ctx context.Context, productKey string) (domain.RatingSummary, error) {
	var summary domain.RatingSummary
	err := r.client.getJSON(ctx, r.productURL(productKey)+"/rating", &summary)
	return summary, err
}

type reviewSubmission struct {
	ProductID string `json:"productId"`
	Mark      int    `json:"mark"`
	Text      string `json:"text"`
}

// Submit posts a review with the author's bearer token.
func (r *ReviewClient) Submit(ctx context.Context, token, productKey string, input domain.ReviewInput) (domain.ReviewReceipt, error) {
	var receipt domain.ReviewReceipt
	body := reviewSubmission{ProductID: productKey, Mark: input.Mark, Text: input.Text}
	err := r.client.sendJSON(ctx, fiber.MethodPost, r.baseURL+"/reviews", token, body, &receipt)
	return receipt, err
}

func (r *ReviewClient) productURL(productKey string) string {
	return r.baseURL + "/reviews/product/" + url.PathEscape(productKey)
}
