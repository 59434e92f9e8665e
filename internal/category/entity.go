// AngelaMos | 2026
// entity.go

package category

import (
	"time"

	"github.com/carterperez-dev/templates/feedback-backend/internal/core"
)

type Category struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

// SearchParams is a zero-based page request over category names.
type SearchParams struct {
	Name string
	Page int
	Size int
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

func (p *SearchParams) Normalize() {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
}

func (p SearchParams) Offset() int {
	return core.Offset(p.Page, p.Size)
}
