package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Collaborators disagree on field names and value types, so payloads are
// decoded into maps first and read through these helpers.

func numberField(m map[string]any, keys ...string) (float64, bool) {
	for _, key := range keys {
		raw, ok := m[key]
		if !ok || raw == nil {
			continue
		}
		switch v := raw.(type) {
		case float64:
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				return v, true
			}
		case int64:
			return float64(v), true
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
				return f, true
			}
		}
	}
	return 0, false
}

func stringField(m map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := m[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func timeField(m map[string]any, keys ...string) *time.Time {
	for _, key := range keys {
		switch v := m[key].(type) {
		case string:
			v = strings.TrimSpace(v)
			for _, layout := range timestampLayouts {
				if t, err := time.Parse(layout, v); err == nil {
					return &t
				}
			}
		case float64:
			if v > 0 {
				t := time.UnixMilli(int64(v)).UTC()
				return &t
			}
		}
	}
	return nil
}
