// AngelaMos | 2026
// service.go

package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/templates/feedback-backend/internal/category"
	"github.com/carterperez-dev/templates/feedback-backend/internal/core"
)

var ErrCategoryNotFound = fmt.Errorf("category %w", core.ErrNotFound)

var tracer = otel.Tracer("github.com/carterperez-dev/templates/feedback-backend/internal/feedback")

type CategoryLookup interface {
	Get(ctx context.Context, id int64) (*category.Category, error)
}

type Service struct {
	repo       Repository
	categories CategoryLookup
}

func NewService(repo Repository, categories CategoryLookup) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
	}
}

// Submit stores new feedback as PENDING whatever status the caller sent. A
// referenced category must exist.
func (s *Service) Submit(
	ctx context.Context,
	req SubmitFeedbackRequest,
) (*Feedback, error) {
	f := &Feedback{
		UserID:         strings.TrimSpace(req.UserID),
		ProductID:      strings.TrimSpace(req.ProductID),
		Rating:         req.Rating,
		Comment:        req.Comment,
		SubmitterName:  strings.TrimSpace(req.SubmitterName),
		SubmitterEmail: strings.TrimSpace(req.SubmitterEmail),
		Status:         StatusPending,
	}

	if id := req.CategoryID(); id != nil {
		c, err := s.lookupCategory(ctx, *id)
		if err != nil {
			return nil, fmt.Errorf("submit feedback: %w", err)
		}
		f.CategoryID = &c.ID
		f.CategoryName = &c.Name
	}

	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}

	return f, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Feedback, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Feedback, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context) ([]Feedback, error) {
	return s.repo.ListAll(ctx)
}

// Search validates params, then returns one page of matches with totals
// over the full filtered set.
func (s *Service) Search(
	ctx context.Context,
	params SearchParams,
) (core.Page[Feedback], error) {
	ctx, span := tracer.Start(ctx, "feedback.Search")
	defer span.End()

	q, err := params.Normalize()
	if err != nil {
		return core.Page[Feedback]{}, err
	}

	span.SetAttributes(
		attribute.Int("search.page", q.Page),
		attribute.Int("search.size", q.Size),
		attribute.String("search.sort", q.SortColumn),
		attribute.Int("search.filters", len(q.Filter.Expressions())),
	)

	items, total, err := s.repo.Search(ctx, q)
	if err != nil {
		return core.Page[Feedback]{}, err
	}

	span.SetAttributes(attribute.Int64("search.total", total))

	return core.NewPage(items, q.Page, q.Size, total), nil
}

// UpdateStatus allows any transition.
func (s *Service) UpdateStatus(
	ctx context.Context,
	id int64,
	rawStatus string,
) (Status, error) {
	status, err := ParseStatus(rawStatus)
	if err != nil {
		return "", err
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return "", err
	}

	return status, nil
}

func (s *Service) UpdateCategory(
	ctx context.Context,
	id, categoryID int64,
) (*Feedback, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	c, err := s.lookupCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("update feedback category: %w", err)
	}

	if err := s.repo.UpdateCategory(ctx, id, c.ID); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{ByStatus: make(map[string]int64, len(Statuses))}
	for _, status := range Statuses {
		stats.ByStatus[status.String()] = 0
	}

	for _, c := range counts {
		stats.ByStatus[c.Status.String()] += c.Count
		stats.Total += c.Count
	}

	return stats, nil
}

func (s *Service) lookupCategory(ctx context.Context, id int64) (*category.Category, error) {
	c, err := s.categories.Get(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return c, nil
}
