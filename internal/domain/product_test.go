package domain

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductNormalizesRatingAliases(t *testing.T) {
	payload := `[
		{"id": 3, "title": "Lamp", "description": "desk lamp", "price": 12.5, "stock": 4, "rating": 4.5},
		{"id": "7", "title": "Chair", "ratingAverage": 3.1},
		{"productUUID": "a1b2", "title": "Desk", "avgRating": "2.5"},
		{"id": "c3d4-uuid", "title": "Rug", "averageRating": 1},
		{"title": "Mystery", "price": -3}
	]`

	var products []Product
	require.NoError(t, sonic.Unmarshal([]byte(payload), &products))
	require.Len(t, products, 5)

	assert.Equal(t, int64(3), products[0].ID)
	assert.Equal(t, 4.5, products[0].Rating)
	assert.Equal(t, 4, products[0].Stock)
	assert.Equal(t, "3", products[0].Key())

	assert.Equal(t, int64(7), products[1].ID)
	assert.Equal(t, 3.1, products[1].Rating)

	assert.Equal(t, "a1b2", products[2].Key())
	assert.Equal(t, 2.5, products[2].Rating)

	assert.Equal(t, int64(0), products[3].ID)
	assert.Equal(t, "c3d4-uuid", products[3].UUID)
	assert.Equal(t, 1.0, products[3].Rating)

	assert.Zero(t, products[4].ID)
	assert.Zero(t, products[4].Rating)
	assert.Zero(t, products[4].Price)
}

func TestReviewDecodesTimestampsAndAliases(t *testing.T) {
	payload := `[
		{"id": 1, "rating": 5, "text": "great", "createdAt": "2024-03-01T10:00:00Z", "userId": "0123456789abcdef"},
		{"id": "r2", "mark": 2, "created_at": "2024-01-01"},
		{"id": "r3", "rating": 4, "createdAt": null}
	]`

	var reviews []Review
	require.NoError(t, sonic.Unmarshal([]byte(payload), &reviews))
	require.Len(t, reviews, 3)

	assert.Equal(t, "1", reviews[0].ID)
	require.NotNil(t, reviews[0].CreatedAt)
	assert.Equal(t, 2024, reviews[0].CreatedAt.Year())
	assert.Equal(t, "01234567…", reviews[0].MaskedAuthor())

	assert.Equal(t, 2.0, reviews[1].Rating)
	require.NotNil(t, reviews[1].CreatedAt)

	assert.Nil(t, reviews[2].CreatedAt)
	assert.Equal(t, "anonymous", reviews[2].MaskedAuthor())
}

func TestRatingSummaryBars(t *testing.T) {
	var summary RatingSummary
	require.NoError(t, sonic.Unmarshal([]byte(`{"average": 4.2, "count": 3, "b5": 2, "b1": 1}`), &summary))

	assert.Equal(t, 4.2, summary.Average)
	assert.Equal(t, 3, summary.Count)

	bars := summary.Bars()
	require.Len(t, bars, 5)
	assert.Equal(t, RatingBar{Stars: 5, Count: 2, Percent: 67}, bars[0])
	assert.Equal(t, RatingBar{Stars: 1, Count: 1, Percent: 33}, bars[4])

	var empty RatingSummary
	require.NoError(t, sonic.Unmarshal([]byte(`{"avg": "NaN"}`), &empty))
	assert.Zero(t, empty.Average)
	for _, bar := range empty.Bars() {
		assert.Zero(t, bar.Percent)
	}
}

func TestCarouselNavigation(t *testing.T) {
	var attachments []Attachment
	require.NoError(t, sonic.Unmarshal([]byte(`[{"gridFsId": "g1", "id": "x"}, {"id": "a2"}, "a3", {}]`), &attachments))

	c := NewCarousel(attachments, "main")
	require.Equal(t, 3, c.Len())
	assert.Equal(t, []string{"g1", "a2", "a3"}, c.IDs())
	assert.Equal(t, "g1", c.Current())

	c.Prev()
	assert.Equal(t, "a3", c.Current())
	c.Next()
	c.Next()
	assert.Equal(t, "a2", c.Current())

	assert.False(t, c.Select(3))
	assert.Equal(t, 1, c.Index())
	assert.True(t, c.Select(0))
	assert.Equal(t, "g1", c.Current())

	empty := NewCarousel(nil, "main")
	empty.Next()
	assert.Equal(t, "main", empty.Current())
}
