// AngelaMos | 2026
// repository.go

package feedback

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/carterperez-dev/templates/feedback-backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, f *Feedback) error
	GetByID(ctx context.Context, id int64) (*Feedback, error)
	ListByUser(ctx context.Context, userID string) ([]Feedback, error)
	ListAll(ctx context.Context) ([]Feedback, error)
	Search(ctx context.Context, q Query) ([]Feedback, int64, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
	UpdateCategory(ctx context.Context, id, categoryID int64) error
	Delete(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context) ([]StatusCount, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// Create inserts f with status and category already resolved. The database
// assigns id and created_at.
func (r *repository) Create(ctx context.Context, f *Feedback) error {
	var categoryID any
	if f.CategoryID != nil {
		categoryID = *f.CategoryID
	}

	record := goqu.Record{
		"user_id":         f.UserID,
		"product_id":      f.ProductID,
		"rating":          f.Rating,
		"comment":         f.Comment,
		"submitter_name":  f.SubmitterName,
		"submitter_email": f.SubmitterEmail,
		"status":          f.Status.String(),
		"category_id":     categoryID,
	}

	query, args, err := dialect.
		Insert("feedback").
		Rows(record).
		Returning("id", "created_at").
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert feedback: %w", err)
	}

	row := struct {
		ID        int64        `db:"id"`
		CreatedAt sql.NullTime `db:"created_at"`
	}{}

	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if core.IsForeignKeyError(err) {
			return fmt.Errorf("create feedback: %w", ErrCategoryNotFound)
		}
		return fmt.Errorf("create feedback: %w", err)
	}

	f.ID = row.ID
	f.CreatedAt = row.CreatedAt.Time

	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Feedback, error) {
	query, args, err := baseSelect().
		Select(selectColumns...).
		Where(goqu.I("f.id").Eq(id)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get feedback: %w", err)
	}

	var f Feedback
	err = r.db.GetContext(ctx, &f, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get feedback: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get feedback: %w", err)
	}

	return &f, nil
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]Feedback, error) {
	return r.list(ctx, "list feedback by user", goqu.I("f.user_id").Eq(userID))
}

func (r *repository) ListAll(ctx context.Context) ([]Feedback, error) {
	return r.list(ctx, "list feedback")
}

func (r *repository) list(
	ctx context.Context,
	op string,
	where ...exp.Expression,
) ([]Feedback, error) {
	query, args, err := baseSelect().
		Select(selectColumns...).
		Where(where...).
		Order(goqu.I("f.created_at").Desc(), goqu.I("f.id").Desc()).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", op, err)
	}

	items := []Feedback{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// Search runs the count and the page window against the same predicate.
func (r *repository) Search(ctx context.Context, q Query) ([]Feedback, int64, error) {
	countQuery, countArgs, err := q.CountSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build count feedback: %w", err)
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count feedback: %w", err)
	}

	items := []Feedback{}
	if total == 0 {
		return items, 0, nil
	}

	pageQuery, pageArgs, err := q.PageSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build search feedback: %w", err)
	}

	if err := r.db.SelectContext(ctx, &items, pageQuery, pageArgs...); err != nil {
		return nil, 0, fmt.Errorf("search feedback: %w", err)
	}

	return items, total, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	query, args, err := dialect.
		Update("feedback").
		Set(goqu.Record{"status": status.String()}).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update feedback status: %w", err)
	}

	return r.execOne(ctx, "update feedback status", query, args)
}

func (r *repository) UpdateCategory(ctx context.Context, id, categoryID int64) error {
	query, args, err := dialect.
		Update("feedback").
		Set(goqu.Record{"category_id": categoryID}).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update feedback category: %w", err)
	}

	return r.execOne(ctx, "update feedback category", query, args)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	query, args, err := dialect.
		Delete("feedback").
		Where(goqu.C("id").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete feedback: %w", err)
	}

	return r.execOne(ctx, "delete feedback", query, args)
}

func (r *repository) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	query, args, err := dialect.
		From("feedback").
		Select(goqu.C("status"), goqu.COUNT(goqu.Star()).As("count")).
		GroupBy(goqu.C("status")).
		Order(goqu.C("status").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build count feedback by status: %w", err)
	}

	counts := []StatusCount{}
	if err := r.db.SelectContext(ctx, &counts, query, args...); err != nil {
		return nil, fmt.Errorf("count feedback by status: %w", err)
	}

	return counts, nil
}

// execOne runs a single-row write and maps zero affected rows to
// core.ErrNotFound.
func (r *repository) execOne(ctx context.Context, op, query string, args []any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if core.IsForeignKeyError(err) {
			return fmt.Errorf("%s: %w", op, ErrCategoryNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}

	return nil
}
