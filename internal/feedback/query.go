// AngelaMos | 2026
// query.go

package feedback

import (
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/carterperez-dev/templates/feedback-backend/internal/core"
)

const (
	DefaultPageSize = 10
	DefaultSortBy   = "createdAt"
)

var ErrInvalidSort = fmt.Errorf("unsupported sort field: %w", core.ErrInvalidInput)

var dialect = goqu.Dialect("postgres")

// sortColumns maps request sort keys, with case and underscores folded away,
// to qualified columns of the feedback/category join.
var sortColumns = map[string]string{
	"id":             "f.id",
	"createdat":      "f.created_at",
	"rating":         "f.rating",
	"status":         "f.status",
	"submittername":  "f.submitter_name",
	"submitteremail": "f.submitter_email",
	"productid":      "f.product_id",
	"userid":         "f.user_id",
	"category":       "c.name",
}

var selectColumns = []any{
	goqu.I("f.id"),
	goqu.I("f.user_id"),
	goqu.I("f.product_id"),
	goqu.I("f.rating"),
	goqu.I("f.comment"),
	goqu.I("f.submitter_name"),
	goqu.I("f.submitter_email"),
	goqu.I("f.status"),
	goqu.I("f.category_id"),
	goqu.I("c.name").As("category_name"),
	goqu.I("f.created_at"),
}

// SearchParams is the raw admin search request. Empty strings and nil
// pointers mean "no constraint".
type SearchParams struct {
	Page       int
	Size       int
	SortBy     string
	SortOrder  string
	Name       string
	Email      string
	Status     string
	Rating     *int
	CategoryID *int64
}

// Filter holds the validated criteria. Each present field contributes one
// predicate; the predicates are ANDed.
type Filter struct {
	Name       string
	Email      string
	Status     *Status
	Rating     *int
	CategoryID *int64
}

// Query is a normalized search: clamped window, whitelisted sort column and
// a validated filter.
type Query struct {
	Page       int
	Size       int
	SortColumn string
	Descending bool
	Filter     Filter
}

// Normalize validates params and clamps the page window. It fails with
// core.ErrInvalidInput before any SQL is built.
func (p SearchParams) Normalize() (Query, error) {
	page, size := core.ClampPage(p.Page, p.Size)

	sortBy := strings.TrimSpace(p.SortBy)
	if sortBy == "" {
		sortBy = DefaultSortBy
	}
	column, ok := sortColumns[foldSortKey(sortBy)]
	if !ok {
		return Query{}, fmt.Errorf("sort by %q: %w", p.SortBy, ErrInvalidSort)
	}

	filter := Filter{
		Name:       strings.TrimSpace(p.Name),
		Email:      strings.TrimSpace(p.Email),
		Rating:     p.Rating,
		CategoryID: p.CategoryID,
	}

	if strings.TrimSpace(p.Status) != "" {
		status, err := ParseStatus(p.Status)
		if err != nil {
			return Query{}, err
		}
		filter.Status = &status
	}

	return Query{
		Page:       page,
		Size:       size,
		SortColumn: column,
		Descending: !strings.EqualFold(strings.TrimSpace(p.SortOrder), "asc"),
		Filter:     filter,
	}, nil
}

func foldSortKey(key string) string {
	return strings.ToLower(strings.ReplaceAll(key, "_", ""))
}

// Expressions returns one predicate per present criterion, in a fixed order.
// The dataset ANDs them; an empty list matches every row.
func (f Filter) Expressions() []exp.Expression {
	var exprs []exp.Expression

	if f.Name != "" {
		exprs = append(exprs, goqu.I("f.submitter_name").ILike(containsPattern(f.Name)))
	}
	if f.Email != "" {
		exprs = append(exprs, goqu.I("f.submitter_email").ILike(containsPattern(f.Email)))
	}
	if f.Status != nil {
		exprs = append(exprs, goqu.I("f.status").Eq(f.Status.String()))
	}
	if f.Rating != nil {
		exprs = append(exprs, goqu.I("f.rating").Eq(*f.Rating))
	}
	if f.CategoryID != nil {
		exprs = append(exprs, goqu.I("f.category_id").Eq(*f.CategoryID))
	}

	return exprs
}

func (f Filter) IsEmpty() bool {
	return len(f.Expressions()) == 0
}

func containsPattern(s string) string {
	return "%" + core.EscapeLike(s) + "%"
}

func baseSelect() *goqu.SelectDataset {
	return dialect.
		From(goqu.T("feedback").As("f")).
		LeftJoin(
			goqu.T("categories").As("c"),
			goqu.On(goqu.I("f.category_id").Eq(goqu.I("c.id"))),
		).
		Prepared(true)
}

// CountSQL counts every row matching the filter, ignoring the page window.
func (q Query) CountSQL() (string, []any, error) {
	return baseSelect().
		Select(goqu.COUNT(goqu.Star())).
		Where(q.Filter.Expressions()...).
		ToSQL()
}

// PageSQL selects one ordered window. Ties on the sort column fall back to
// id in the same direction so pages never overlap.
func (q Query) PageSQL() (string, []any, error) {
	//nolint:gosec // G115: page and size are clamped non-negative
	limit, offset := uint(q.Size), uint(core.Offset(q.Page, q.Size))

	return baseSelect().
		Select(selectColumns...).
		Where(q.Filter.Expressions()...).
		Order(q.orderBy()...).
		Limit(limit).
		Offset(offset).
		ToSQL()
}

func (q Query) orderBy() []exp.OrderedExpression {
	order := func(col string) exp.OrderedExpression {
		if q.Descending {
			return goqu.I(col).Desc()
		}
		return goqu.I(col).Asc()
	}

	if q.SortColumn == "f.id" {
		return []exp.OrderedExpression{order("f.id")}
	}
	return []exp.OrderedExpression{order(q.SortColumn), order("f.id")}
}
