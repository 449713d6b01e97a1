package upstream

import (
	"context"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/storefront-labs/storefront/internal/domain"
)

// Binary is an attachment body with its media type.
type Binary struct {
	ContentType string
	Data        []byte
}

// ProductClient talks to the product collaborator.
type ProductClient struct {
	client  *Client
	baseURL string
}

// NewProductClient binds client to the product service root URL.
func NewProductClient(client *Client, baseURL string) *ProductClient {
	return &ProductClient{client: client, baseURL: baseURL}
}

// List fetches one page of the catalog.
func (p *ProductClient) List(ctx context.Context, page, size int) ([]domain.Product, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))

	products := []domain.Product{}
	if err := p.client.getList(ctx, p.baseURL+"/products?"+q.Encode(), &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Get fetches a single product. A missing product yields ErrNotFound.
func (p *ProductClient) Get(ctx context.Context, key string) (domain.Product, error) {
	var product domain.Product
	err := p.client.getJSON(ctx, p.productURL(key), &product)
	return product, err
}

// Attachments lists the image references of a product.
func (p *ProductClient) Attachments(ctx context.Context, key string) ([]domain.Attachment, error) {
	attachments := []domain.Attachment{}
	if err := p.client.getList(ctx, p.productURL(key)+"/attachments", &attachments); err != nil {
		return nil, err
	}
	return attachments, nil
}

// AttachmentBinary downloads a stored image.
func (p *ProductClient) AttachmentBinary(ctx context.Context, attachmentID string) (Binary, error) {
	res, err := p.client.do(ctx, call{method: fiber.MethodGet, url: p.productURL(attachmentID) + "/attachments-fs"})
	if err != nil {
		return Binary{}, err
	}
	contentType := res.contentType
	if contentType == "" {
		contentType = fiber.MIMEOctetStream
	}
	return Binary{ContentType: contentType, Data: res.body}, nil
}

// Create adds a product on behalf of the bearer of token.
func (p *ProductClient) Create(ctx context.Context, token string, input domain.ProductInput) (domain.Product, error) {
	var product domain.Product
	err := p.client.sendJSON(ctx, fiber.MethodPost, p.baseURL+"/products", token, input, &product)
	return product, err
}

// Update patches a product on behalf of the bearer of token.
func (p *ProductClient) Update(ctx context.Context, token, key string, input domain.ProductInput) (domain.Product, error) {
	var product domain.Product
	err := p.client.sendJSON(ctx, fiber.MethodPatch, p.productURL(key), token, input, &product)
	return product, err
}

func (p *ProductClient) productURL(key string) string {
	return p.baseURL + "/products/" + url.PathEscape(key)
}
