package upstream

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront-labs/storefront/internal/domain"
)

func newTestClients(t *testing.T, handler http.HandlerFunc) (*ProductClient, *ReviewClient) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(2*time.Second, nil)
	return NewProductClient(client, srv.URL+"/productservice/api/v1"), NewReviewClient(client, srv.URL+"/reviewservice/api/v1")
}

func TestProductListNormalizesPayload(t *testing.T) {
	products, _ := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/productservice/api/v1/products", r.URL.Path)
		assert.Equal(t, "0", r.URL.Query().Get("page"))
		assert.Equal(t, "100", r.URL.Query().Get("size"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[
			{"id": 7, "title": "Lamp", "price": 12.5, "stock": 3, "avgRating": 4.2},
			{"id": "abc-uuid", "title": "Desk", "ratingAverage": 3}
		]`)
	})

	list, err := products.List(context.Background(), 0, 100)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(7), list[0].ID)
	assert.Equal(t, 4.2, list[0].Rating)
	assert.Equal(t, "abc-uuid", list[1].UUID)
	assert.Equal(t, 3.0, list[1].Rating)
}

func TestProductListNonArrayIsEmpty(t *testing.T) {
	products, _ := newTestClients(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"content": []}`)
	})

	list, err := products.List(context.Background(), 0, 20)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{http.StatusNotFound, "", func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrNotFound) }},
		{http.StatusUnauthorized, "", func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrUnauthorized) }},
		{http.StatusForbidden, "", func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrForbidden) }},
		{http.StatusInternalServerError, `{"message":"db down"}`, func(t *testing.T, err error) {
			var se *StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, 500, se.Status)
			assert.Equal(t, "db down", se.Message)
		}},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			products, _ := newTestClients(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			_, err := products.Get(context.Background(), "1")
			tt.check(t, err)
		})
	}
}

func TestCallHonoursContext(t *testing.T) {
	release := make(chan struct{})
	products, _ := newTestClients(t, func(w http.ResponseWriter, _ *http.Request) {
		<-release
		_, _ = io.WriteString(w, `{"id":1}`)
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := products.Get(ctx, "1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAttachmentsAndBinary(t *testing.T) {
	products, _ := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/productservice/api/v1/products/p1/attachments":
			_, _ = io.WriteString(w, `[{"gridFsId":"g1","id":"x"},{"id":"g2"},"g3"]`)
		case "/productservice/api/v1/products/g1/attachments-fs":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte{0x89, 'P', 'N', 'G'})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	attachments, err := products.Attachments(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, []domain.Attachment{{ID: "g1"}, {ID: "g2"}, {ID: "g3"}}, attachments)

	bin, err := products.AttachmentBinary(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, "image/png", bin.ContentType)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, bin.Data)
}

func TestProductWritesCarryBearer(t *testing.T) {
	products, _ := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"title":"Lamp","description":"","price":10,"stock":2}`, string(body))
		switch r.Method {
		case http.MethodPost:
			_, _ = io.WriteString(w, `{"id":9,"title":"Lamp","price":10,"stock":2}`)
		case http.MethodPatch:
			assert.Equal(t, "/productservice/api/v1/products/9", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		}
	})

	input := domain.ProductInput{Title: "Lamp", Price: 10, Stock: 2}
	created, err := products.Create(context.Background(), "tok", input)
	require.NoError(t, err)
	assert.Equal(t, int64(9), created.ID)

	_, err = products.Update(context.Background(), "tok", "9", input)
	require.NoError(t, err)
}

func TestReviewEndpoints(t *testing.T) {
	_, reviews := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/reviewservice/api/v1/reviews/product/p1":
			assert.Equal(t, "10", r.URL.Query().Get("limit"))
			assert.Equal(t, "20", r.URL.Query().Get("offset"))
			_, _ = io.WriteString(w, `[{"id":"r1","mark":4,"user_id":"user-123456789","created_at":"2024-03-01T10:00:00Z"}]`)
		case r.URL.Path == "/reviewservice/api/v1/reviews/product/p1/rating":
			_, _ = io.WriteString(w, `{"average":4.5,"cnt":2,"b4":1,"b5":1}`)
		case r.Method == http.MethodPost && r.URL.Path == "/reviewservice/api/v1/reviews":
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			body, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"productId":"p1","mark":5,"text":"great"}`, string(body))
			_, _ = io.WriteString(w, `{"accepted":true}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	list, err := reviews.ListByProduct(ctx, "p1", 10, 20)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 4.0, list[0].Rating)
	assert.Equal(t, "user-123456789", list[0].UserID)
	require.NotNil(t, list[0].CreatedAt)

	summary, err := reviews.Rating(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 4.5, summary.Average)
	assert.Equal(t, 2, summary.Count)

	receipt, err := reviews.Submit(ctx, "tok", "p1", domain.ReviewInput{Mark: 5, Text: "great"})
	require.NoError(t, err)
	assert.True(t, receipt.Accepted)
}
