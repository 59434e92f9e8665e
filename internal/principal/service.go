// AngelaMos | 2026
// service.go

package principal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/carterperez-dev/templates/feedback-backend/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new principal in the table chosen by role. A duplicate
// email within that table is ErrDuplicateKey; the other table is not checked.
func (s *Service) Create(
	ctx context.Context,
	role Role,
	username, email, passwordHash string,
) (*Principal, error) {
	email = normalizeEmail(email)

	exists, err := s.repo.ExistsByEmail(ctx, role, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf(
			"create %s: %w",
			strings.ToLower(role.String()),
			core.ErrDuplicateKey,
		)
	}

	p := &Principal{
		Username:     strings.TrimSpace(username),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	role Role,
	email string,
) (*Principal, error) {
	return s.repo.GetByEmail(ctx, role, normalizeEmail(email))
}

// Resolve finds the principal owning email, probing tables in LookupOrder.
// The first table containing the email wins.
func (s *Service) Resolve(ctx context.Context, email string) (*Principal, error) {
	email = normalizeEmail(email)

	for _, role := range LookupOrder {
		p, err := s.repo.GetByEmail(ctx, role, email)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, core.ErrNotFound) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("resolve principal: %w", core.ErrNotFound)
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	role Role,
	id int64,
	passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, role, id, passwordHash)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
