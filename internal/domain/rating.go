package domain

import (
	"math"

	"github.com/bytedance/sonic"
)

// RatingSummary is the aggregate rating of a product.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
	// Buckets[i] holds the number of (i+1)-star reviews.
	Buckets [5]int `json:"buckets"`
}

// UnmarshalJSON resolves avg|average, cnt|count and b1..b5.
func (s *RatingSummary) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = RatingSummary{}
	if avg, ok := numberField(raw, "avg", "average"); ok {
		s.Average = avg
	}
	if cnt, ok := numberField(raw, "cnt", "count"); ok {
		s.Count = int(cnt)
	}
	for i, key := range []string{"b1", "b2", "b3", "b4", "b5"} {
		if n, ok := numberField(raw, key); ok {
			s.Buckets[i] = int(n)
		}
	}
	return nil
}

// RatingBar is one row of the rating histogram.
type RatingBar struct {
	Stars   int `json:"stars"`
	Count   int `json:"count"`
	Percent int `json:"percent"`
}

// Bars returns histogram rows from five stars down to one.
func (s RatingSummary) Bars() []RatingBar {
	bars := make([]RatingBar, 0, len(s.Buckets))
	for stars := len(s.Buckets); stars >= 1; stars-- {
		value := s.Buckets[stars-1]
		pct := 0
		if s.Count > 0 {
			pct = int(math.Round(float64(value*100) / float64(s.Count)))
		}
		bars = append(bars, RatingBar{Stars: stars, Count: value, Percent: pct})
	}
	return bars
}
