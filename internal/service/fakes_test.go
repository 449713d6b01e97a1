package service

import (
	"context"
	"sync"

	"github.com/storefront-labs/storefront/internal/auth"
	"github.com/storefront-labs/storefront/internal/domain"
	"github.com/storefront-labs/storefront/internal/upstream"
)

type fakeProducts struct {
	mu          sync.Mutex
	list        []domain.Product
	listErr     error
	byKey       map[string]domain.Product
	attachments []domain.Attachment
	attachErr   error
	created     []domain.ProductInput
	updated     map[string]domain.ProductInput
	writeErr    error
}

func (f *fakeProducts) List(context.Context, int, int) ([]domain.Product, error) {
	return f.list, f.listErr
}

func (f *fakeProducts) Get(_ context.Context, key string) (domain.Product, error) {
	p, ok := f.byKey[key]
	if !ok {
		return domain.Product{}, upstream.ErrNotFound
	}
	return p, nil
}

func (f *fakeProducts) Attachments(context.Context, string) ([]domain.Attachment, error) {
	return f.attachments, f.attachErr
}

func (f *fakeProducts) AttachmentBinary(_ context.Context, id string) (upstream.Binary, error) {
	if id == "missing" {
		return upstream.Binary{}, upstream.ErrNotFound
	}
	return upstream.Binary{ContentType: "image/jpeg", Data: []byte(id)}, nil
}

func (f *fakeProducts) Create(_ context.Context, _ string, in domain.ProductInput) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return domain.Product{}, f.writeErr
	}
	f.created = append(f.created, in)
	return domain.Product{ID: int64(len(f.created)), Title: in.Title, Price: in.Price}, nil
}

func (f *fakeProducts) Update(_ context.Context, _ string, key string, in domain.ProductInput) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return domain.Product{}, f.writeErr
	}
	if f.updated == nil {
		f.updated = map[string]domain.ProductInput{}
	}
	f.updated[key] = in
	return domain.Product{}, nil
}

type fakeReviews struct {
	mu        sync.Mutex
	all       []domain.Review
	offsets   []int
	listErr   error
	rating    domain.RatingSummary
	ratingErr error
	receipt   domain.ReviewReceipt
	submitErr error
	submitted []domain.ReviewInput
}

func (f *fakeReviews) ListByProduct(_ context.Context, _ string, limit, offset int) ([]domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.offsets = append(f.offsets, offset)
	if f.listErr != nil {
		return nil, f.listErr
	}
	if offset >= len(f.all) {
		return []domain.Review{}, nil
	}
	return f.all[offset:min(offset+limit, len(f.all))], nil
}

func (f *fakeReviews) Rating(context.Context, string) (domain.RatingSummary, error) {
	return f.rating, f.ratingErr
}

func (f *fakeReviews) Submit(_ context.Context, _ string, _ string, in domain.ReviewInput) (domain.ReviewReceipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, in)
	return f.receipt, f.submitErr
}

type memTokens struct {
	mu     sync.Mutex
	tokens map[string]string
}

func newMemTokens() *memTokens { return &memTokens{tokens: map[string]string{}} }

func (m *memTokens) Set(_ context.Context, id, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[id] = token
	return nil
}

func (m *memTokens) Clear(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, id)
	return nil
}

func (m *memTokens) get(id string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tokens[id]
}

func sessionWithRoles(roles ...string) *auth.Session {
	token := ""
	if roles != nil {
		token = "token"
	}
	return &auth.Session{ID: "s1", Token: token, Policy: auth.NewPolicy(token != "", auth.NewRoleSet(roles...))}
}
