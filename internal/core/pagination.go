// AngelaMos | 2026
// pagination.go

package core

import (
	"math"
)

// Page is a zero-based window of results with totals over the full match set.
type Page[T any] struct {
	Items []T
	Page  int
	Size  int
	Total int64
}

func NewPage[T any](items []T, page, size int, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items: items,
		Page:  page,
		Size:  size,
		Total: total,
	}
}

func (p Page[T]) TotalPages() int {
	return TotalPages(p.Total, p.Size)
}

func TotalPages(total int64, size int) int {
	if size < 1 || total <= 0 {
		return 0
	}
	pages := total / int64(size)
	if total%int64(size) != 0 {
		pages++
	}
	return int(pages)
}

// ClampPage normalizes a zero-based page request: page >= 0, size >= 1.
func ClampPage(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size < 1 {
		size = 1
	}
	return page, size
}

// Offset is the row offset of page. It saturates at math.MaxInt instead of
// wrapping, so an oversized request yields an empty window.
func Offset(page, size int) int {
	if page <= 0 || size <= 0 {
		return 0
	}
	if page > math.MaxInt/size {
		return math.MaxInt
	}
	return page * size
}
