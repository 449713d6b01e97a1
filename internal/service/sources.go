package service

import (
	"context"

	"github.com/storefront-labs/storefront/internal/domain"
	"github.com/storefront-labs/storefront/internal/upstream"
)

// ProductSource is the product collaborator.
type ProductSource interface {
	List(ctx context.Context, page, size int) ([]domain.Product, error)
	Get(ctx context.Context, key string) (domain.Product, error)
	Attachments(ctx context.Context, key string) ([]domain.Attachment, error)
	AttachmentBinary(ctx context.Context, attachmentID string) (upstream.Binary, error)
	Create(ctx context.Context, token string, input domain.ProductInput) (domain.Product, error)
	Update(ctx context.Context, token, key string, input domain.ProductInput) (domain.Product, error)
}

// ReviewSource is the review collaborator.
type ReviewSource interface {
	ListByProduct(ctx context.Context, productKey string, limit, offset int) ([]domain.Review, error)
	Rating(ctx context.Context, productKey string) (domain.RatingSummary, error)
	Submit(ctx context.Context, token, productKey string, input domain.ReviewInput) (domain.ReviewReceipt, error)
}
