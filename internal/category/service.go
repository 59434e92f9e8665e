// AngelaMos | 2026
// service.go

package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/carterperez-dev/templates/feedback-backend/internal/core"
)

var ErrBlankName = fmt.Errorf("category name must not be blank: %w", core.ErrInvalidInput)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBlankName
	}

	exists, err := s.repo.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("create category %q: %w", name, core.ErrDuplicateKey)
	}

	c := &Category{Name: name}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Category, error) {
	return s.repo.GetByID(ctx, id)
}

// Update renames a category. Keeping the current name is not a conflict.
func (s *Service) Update(ctx context.Context, id int64, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBlankName
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name == c.Name {
		return c, nil
	}

	exists, err := s.repo.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("rename category to %q: %w", name, core.ErrDuplicateKey)
	}

	c.Name = name
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// Delete removes the category; feedback referencing it becomes uncategorized.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) All(ctx context.Context) ([]Category, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) Search(
	ctx context.Context,
	params SearchParams,
) (core.Page[Category], error) {
	params.Name = strings.TrimSpace(params.Name)
	params.Normalize()

	categories, total, err := s.repo.Search(ctx, params)
	if err != nil {
		return core.Page[Category]{}, err
	}

	return core.NewPage(categories, params.Page, params.Size, total), nil
}
