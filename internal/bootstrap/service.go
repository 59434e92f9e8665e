// AngelaMos | 2026
// service.go

package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/carterperez-dev/templates/feedback-backend/internal/category"
	"github.com/carterperez-dev/templates/feedback-backend/internal/config"
	"github.com/carterperez-dev/templates/feedback-backend/internal/core"
	"github.com/carterperez-dev/templates/feedback-backend/internal/principal"
)

type PrincipalCreator interface {
	CreatePrincipal(
		ctx context.Context,
		role principal.Role,
		username, email, password string,
	) (*principal.Principal, error)
}

type CategoryCreator interface {
	Create(ctx context.Context, name string) (*category.Category, error)
}

// Report lists what a run created and what was already present.
type Report struct {
	Created  []string `json:"created"`
	Existing []string `json:"existing"`
}

func (r *Report) record(label string, err error) error {
	switch {
	case err == nil:
		r.Created = append(r.Created, label)
		return nil
	case errors.Is(err, core.ErrDuplicateKey):
		r.Existing = append(r.Existing, label)
		return nil
	default:
		return fmt.Errorf("seed %s: %w", label, err)
	}
}

// Service seeds the default admin, user and categories. Running it again
// is harmless: anything already present is reported and skipped.
type Service struct {
	principals PrincipalCreator
	categories CategoryCreator
	cfg        config.BootstrapConfig
}

func NewService(
	principals PrincipalCreator,
	categories CategoryCreator,
	cfg config.BootstrapConfig,
) *Service {
	return &Service{
		principals: principals,
		categories: categories,
		cfg:        cfg,
	}
}

func (s *Service) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		Created:  []string{},
		Existing: []string{},
	}

	seeds := []struct {
		role     principal.Role
		username string
		email    string
		password string
	}{
		{principal.RoleAdmin, s.cfg.AdminUsername, s.cfg.AdminEmail, s.cfg.AdminPassword},
		{principal.RoleUser, s.cfg.UserUsername, s.cfg.UserEmail, s.cfg.UserPassword},
	}

	for _, seed := range seeds {
		if seed.email == "" || seed.password == "" {
			continue
		}

		label := strings.ToLower(seed.role.String()) + ":" + seed.email
		_, err := s.principals.CreatePrincipal(
			ctx,
			seed.role,
			seed.username,
			seed.email,
			seed.password,
		)
		if recErr := report.record(label, err); recErr != nil {
			return nil, recErr
		}
		if err != nil {
			slog.InfoContext(ctx, "bootstrap principal already exists", "label", label)
		}
	}

	for _, name := range s.cfg.Categories {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		label := "category:" + name
		_, err := s.categories.Create(ctx, name)
		if recErr := report.record(label, err); recErr != nil {
			return nil, recErr
		}
		if err != nil {
			slog.InfoContext(ctx, "bootstrap category already exists", "name", name)
		}
	}

	slog.InfoContext(ctx, "bootstrap finished",
		"created", len(report.Created),
		"existing", len(report.Existing),
	)

	return report, nil
}
