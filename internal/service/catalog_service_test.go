package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storefront-labs/storefront/internal/config"
	"github.com/storefront-labs/storefront/internal/domain"
	"github.com/storefront-labs/storefront/internal/upstream"
)

func newCatalogService(products *fakeProducts) *CatalogService {
	return NewCatalogService(products, config.CatalogConfig{PageSize: 2, FetchSize: 100, Locale: "en"}, zap.NewNop())
}

func ptr[T any](v T) *T { return &v }

func TestBrowseHonoursPageOnlyWithoutResets(t *testing.T) {
	products := &fakeProducts{list: []domain.Product{
		{ID: 5, Title: "lamp"}, {ID: 1, Title: "desk lamp"}, {ID: 3, Title: "chair"},
		{ID: 2, Title: "floor lamp"}, {ID: 4, Title: "table"},
	}}
	svc := newCatalogService(products)
	views := NewViewRegistry(time.Minute, 10).Get("s1")
	ctx := context.Background()

	page, err := svc.Browse(ctx, views, BrowseParams{Page: ptr(1)})
	require.NoError(t, err)
	assert.Equal(t, 1, page.State.Page)
	assert.Equal(t, 3, page.Page.TotalPages)
	assert.Equal(t, []int{0, 1, 2}, page.Window.Pages)

	page, err = svc.Browse(ctx, views, BrowseParams{Search: ptr("lamp"), Page: ptr(1)})
	require.NoError(t, err)
	assert.Equal(t, 0, page.State.Page, "a new search starts from the first page")
	assert.Equal(t, 3, page.Page.TotalItems)
	require.Len(t, page.Page.Items, 2)
	assert.Equal(t, int64(1), page.Page.Items[0].ID)

	page, err = svc.Browse(ctx, views, BrowseParams{Search: ptr("lamp"), Page: ptr(1)})
	require.NoError(t, err)
	assert.Equal(t, 1, page.State.Page)
	require.Len(t, page.Page.Items, 1)
	assert.Equal(t, int64(5), page.Page.Items[0].ID)
}

func TestBrowseReportsUpstreamFailure(t *testing.T) {
	svc := newCatalogService(&fakeProducts{listErr: errors.New("connection refused")})
	_, err := svc.Browse(context.Background(), NewViewRegistry(time.Minute, 10).Get("s"), BrowseParams{})
	assert.Equal(t, "UPSTREAM_FAILED", domainCode(t, err))
}

func TestSaveGating(t *testing.T) {
	products := &fakeProducts{}
	svc := newCatalogService(products)
	ctx := context.Background()
	input := domain.ProductInput{Title: "Lamp", Price: 10, Stock: 1}

	_, err := svc.Save(ctx, sessionWithRoles(), "", input)
	assert.Equal(t, "UNAUTHORIZED", domainCode(t, err))

	_, err = svc.Save(ctx, sessionWithRoles("USER"), "", input)
	assert.Equal(t, "FORBIDDEN", domainCode(t, err))

	_, err = svc.Save(ctx, sessionWithRoles("SELLER"), "p1", input)
	assert.ErrorIs(t, err, ErrEditInSellerDashboard)

	_, err = svc.Save(ctx, sessionWithRoles("SELLER"), "", domain.ProductInput{Price: -1})
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))

	created, err := svc.Save(ctx, sessionWithRoles("SELLER"), "", input)
	require.NoError(t, err)
	assert.Equal(t, "Lamp", created.Title)

	updated, err := svc.Save(ctx, sessionWithRoles("ROLE_ADMIN"), "p1", input)
	require.NoError(t, err)
	assert.Equal(t, "p1", updated.Key())
	assert.Equal(t, input, products.updated["p1"])
}

func TestSaveMapsCollaboratorErrors(t *testing.T) {
	svc := newCatalogService(&fakeProducts{writeErr: upstream.ErrForbidden})
	_, err := svc.Save(context.Background(), sessionWithRoles("ADMIN"), "", domain.ProductInput{Title: "x"})
	assert.Equal(t, "FORBIDDEN", domainCode(t, err))
}
