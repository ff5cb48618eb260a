package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		wantOffset uint64
		wantSize   int
	}{
		{name: "first page", page: 1, limit: 10, wantOffset: 0, wantSize: 10},
		{name: "third page", page: 3, limit: 10, wantOffset: 20, wantSize: 10},
		{name: "zero page falls back to first", page: 0, limit: 10, wantOffset: 0, wantSize: 10},
		{name: "negative page falls back to first", page: -2, limit: 5, wantOffset: 0, wantSize: 5},
		{name: "zero limit falls back to default", page: 2, limit: 0, wantOffset: 10, wantSize: DefaultPageSize},
		{name: "oversized limit falls back to default", page: 1, limit: 500, wantOffset: 0, wantSize: DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, size := CalculateOffsetLimit(tt.page, tt.limit)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantSize, size)
		})
	}
}

func TestNewPageMeta(t *testing.T) {
	t.Run("partial last page", func(t *testing.T) {
		meta := NewPageMeta(25, 1, 10)
		assert.Equal(t, 1, meta.Page)
		assert.Equal(t, 3, meta.Pages)
		assert.Equal(t, int64(25), meta.Total)
		assert.True(t, meta.HasMore)
	})

	t.Run("middle page still has more", func(t *testing.T) {
		meta := NewPageMeta(25, 2, 10)
		assert.True(t, meta.HasMore)
	})

	t.Run("last page has no more", func(t *testing.T) {
		meta := NewPageMeta(25, 3, 10)
		assert.False(t, meta.HasMore)
	})

	t.Run("exact multiple", func(t *testing.T) {
		meta := NewPageMeta(20, 2, 10)
		assert.Equal(t, 2, meta.Pages)
		assert.False(t, meta.HasMore)
	})

	t.Run("empty result", func(t *testing.T) {
		meta := NewPageMeta(0, 1, 10)
		assert.Equal(t, 0, meta.Pages)
		assert.Equal(t, int64(0), meta.Total)
		assert.False(t, meta.HasMore)
	})
}
