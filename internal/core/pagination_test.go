// AngelaMos | 2026
// pagination_test.go

package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		size  int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 1, 25},
		{5, 0, 0},
		{2, math.MaxInt, 1},
		{5, math.MaxInt, 1},
		{math.MaxInt64, math.MaxInt, 1},
		{math.MaxInt64, 2, math.MaxInt64/2 + 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.total, tt.size), "total=%d size=%d", tt.total, tt.size)
	}
}

func TestClampPage(t *testing.T) {
	page, size := ClampPage(-3, 0)
	assert.Equal(t, 0, page)
	assert.Equal(t, 1, size)

	page, size = ClampPage(2, 25)
	assert.Equal(t, 2, page)
	assert.Equal(t, 25, size)

	assert.Equal(t, 50, Offset(2, 25))
}

func TestNewPage(t *testing.T) {
	p := NewPage[string](nil, 1, 5, 12)

	assert.NotNil(t, p.Items)
	assert.Empty(t, p.Items)
	assert.Equal(t, 3, p.TotalPages())
}

func TestOffset_Saturates(t *testing.T) {
	tests := []struct {
		page, size int
		want       int
	}{
		{0, math.MaxInt, 0},
		{-1, 10, 0},
		{3, 0, 0},
		{4, math.MaxInt / 2, math.MaxInt},
		{2, math.MaxInt / 2, math.MaxInt - 1},
		{math.MaxInt, math.MaxInt, math.MaxInt},
	}

	for _, tt := range tests {
		got := Offset(tt.page, tt.size)
		assert.Equal(t, tt.want, got, "page=%d size=%d", tt.page, tt.size)
		assert.GreaterOrEqual(t, got, 0)
	}
}
