// AngelaMos | 2026
// query_test.go

package feedback

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/feedback-backend/internal/core"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func TestSearchParams_NormalizeDefaults(t *testing.T) {
	q, err := SearchParams{Page: -2, Size: 0}.Normalize()
	require.NoError(t, err)

	assert.Equal(t, 0, q.Page)
	assert.Equal(t, 1, q.Size)
	assert.Equal(t, "f.created_at", q.SortColumn)
	assert.True(t, q.Descending)
	assert.True(t, q.Filter.IsEmpty())
}

func TestSearchParams_NormalizeSort(t *testing.T) {
	tests := []struct {
		sortBy    string
		sortOrder string
		column    string
		desc      bool
	}{
		{"rating", "asc", "f.rating", false},
		{"RATING", "ASC", "f.rating", false},
		{"submitterName", "desc", "f.submitter_name", true},
		{"submitter_email", "", "f.submitter_email", true},
		{"category", "sideways", "c.name", true},
		{"id", "asc", "f.id", false},
	}

	for _, tt := range tests {
		t.Run(tt.sortBy, func(t *testing.T) {
			q, err := SearchParams{Size: 10, SortBy: tt.sortBy, SortOrder: tt.sortOrder}.Normalize()
			require.NoError(t, err)
			assert.Equal(t, tt.column, q.SortColumn)
			assert.Equal(t, tt.desc, q.Descending)
		})
	}
}

func TestSearchParams_NormalizeRejects(t *testing.T) {
	_, err := SearchParams{SortBy: "password_hash"}.Normalize()
	assert.ErrorIs(t, err, ErrInvalidSort)
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = SearchParams{Status: "ARCHIVED"}.Normalize()
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestFilter_Expressions(t *testing.T) {
	q, err := SearchParams{
		Size:       10,
		Name:       "  ann ",
		Email:      "example",
		Status:     "pending",
		Rating:     intPtr(5),
		CategoryID: int64Ptr(3),
	}.Normalize()
	require.NoError(t, err)

	assert.Equal(t, "ann", q.Filter.Name)
	require.NotNil(t, q.Filter.Status)
	assert.Equal(t, StatusPending, *q.Filter.Status)
	assert.Len(t, q.Filter.Expressions(), 5)
	assert.False(t, q.Filter.IsEmpty())
}

func TestQuery_CountSQL(t *testing.T) {
	q, err := SearchParams{
		Size:   10,
		Name:   "ann",
		Status: "PENDING",
		Rating: intPtr(5),
	}.Normalize()
	require.NoError(t, err)

	sql, args, err := q.CountSQL()
	require.NoError(t, err)

	assert.Contains(t, sql, "COUNT(*)")
	assert.Contains(t, sql, `LEFT JOIN "categories" AS "c"`)
	assert.Contains(t, sql, `"f"."submitter_name" ILIKE $1`)
	assert.Contains(t, sql, `"f"."status" = $2`)
	assert.Contains(t, sql, `"f"."rating" = $3`)
	assert.NotContains(t, sql, "LIMIT")
	require.Len(t, args, 3)
	assert.Equal(t, "%ann%", args[0])
	assert.Equal(t, "PENDING", args[1])
	assert.EqualValues(t, 5, args[2])
}

func TestQuery_CountSQL_NoFilter(t *testing.T) {
	q, err := SearchParams{Size: 10}.Normalize()
	require.NoError(t, err)

	sql, args, err := q.CountSQL()
	require.NoError(t, err)

	assert.NotContains(t, sql, "WHERE")
	assert.Empty(t, args)
}

func TestQuery_PageSQL(t *testing.T) {
	q, err := SearchParams{
		Page:      2,
		Size:      5,
		SortBy:    "rating",
		SortOrder: "asc",
		Email:     "50%_off",
	}.Normalize()
	require.NoError(t, err)

	sql, args, err := q.PageSQL()
	require.NoError(t, err)

	assert.Contains(t, sql, `"c"."name" AS "category_name"`)
	assert.Contains(t, sql, `"f"."submitter_email" ILIKE $1`)
	assert.Contains(t, sql, `ORDER BY "f"."rating" ASC, "f"."id" ASC`)
	assert.Contains(t, sql, "LIMIT $2")
	assert.Contains(t, sql, "OFFSET $3")

	require.Len(t, args, 3)
	assert.Equal(t, `%50\%\_off%`, args[0])
	assert.EqualValues(t, 5, args[1])
	assert.EqualValues(t, 10, args[2])
}

func TestQuery_PageSQL_HugeWindowStaysBindable(t *testing.T) {
	q, err := SearchParams{Page: 4, Size: math.MaxInt / 2}.Normalize()
	require.NoError(t, err)

	_, args, err := q.PageSQL()
	require.NoError(t, err)

	require.Len(t, args, 2)
	assert.EqualValues(t, uint64(math.MaxInt/2), args[0])
	assert.EqualValues(t, uint64(math.MaxInt64), args[1])
}

func TestQuery_PageSQL_IDSortHasNoTieBreak(t *testing.T) {
	q, err := SearchParams{Size: 5, SortBy: "id"}.Normalize()
	require.NoError(t, err)

	sql, _, err := q.PageSQL()
	require.NoError(t, err)

	assert.Contains(t, sql, `ORDER BY "f"."id" DESC`)
	assert.NotContains(t, sql, `"f"."id" DESC, "f"."id"`)
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus(" in_progress ")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, s)

	_, err = ParseStatus("")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	assert.Equal(t, "PENDING, IN_PROGRESS, APPROVED, RESOLVED, REJECTED", statusNames())
}
