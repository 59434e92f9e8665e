// AngelaMos | 2026
// repository.go

package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/carterperez-dev/templates/feedback-backend/internal/core"
)

var dialect = goqu.Dialect("postgres")

type Repository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id int64) (*Category, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]Category, error)
	Search(ctx context.Context, params SearchParams) ([]Category, int64, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Category) error {
	query := `
		INSERT INTO categories (name)
		VALUES ($1)
		RETURNING id, created_at`

	err := r.db.GetContext(ctx, c, query, c.Name)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("create category: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create category: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Category, error) {
	query := `
		SELECT id, name, created_at
		FROM categories
		WHERE id = $1`

	var c Category
	err := r.db.GetContext(ctx, &c, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get category: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}

	return &c, nil
}

func (r *repository) ExistsByName(ctx context.Context, name string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, name); err != nil {
		return false, fmt.Errorf("check category name exists: %w", err)
	}

	return exists, nil
}

func (r *repository) Update(ctx context.Context, c *Category) error {
	query := `
		UPDATE categories
		SET name = $2
		WHERE id = $1
		RETURNING created_at`

	err := r.db.GetContext(ctx, &c.CreatedAt, query, c.ID, c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update category: %w", core.ErrNotFound)
	}
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("update category: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update category: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM categories WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete category: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListAll(ctx context.Context) ([]Category, error) {
	query := `
		SELECT id, name, created_at
		FROM categories
		ORDER BY name ASC, id ASC`

	var categories []Category
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return categories, nil
}

func (r *repository) Search(
	ctx context.Context,
	params SearchParams,
) ([]Category, int64, error) {
	params.Normalize()

	ds := dialect.From("categories").Prepared(true)
	if params.Name != "" {
		ds = ds.Where(goqu.C("name").ILike("%" + core.EscapeLike(params.Name) + "%"))
	}

	countQuery, countArgs, err := ds.Select(goqu.COUNT(goqu.Star())).ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build category count: %w", err)
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}

	//nolint:gosec // G115: Normalize keeps page and size non-negative
	query, args, err := ds.
		Select("id", "name", "created_at").
		Order(goqu.C("name").Asc(), goqu.C("id").Asc()).
		Limit(uint(params.Size)).
		Offset(uint(params.Offset())).
		ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build category search: %w", err)
	}

	var categories []Category
	if err := r.db.SelectContext(ctx, &categories, query, args...); err != nil {
		return nil, 0, fmt.Errorf("search categories: %w", err)
	}

	return categories, total, nil
}
