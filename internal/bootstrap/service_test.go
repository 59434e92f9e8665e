// AngelaMos | 2026
// service_test.go

package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/feedback-backend/internal/category"
	"github.com/carterperez-dev/templates/feedback-backend/internal/config"
	"github.com/carterperez-dev/templates/feedback-backend/internal/core"
	"github.com/carterperez-dev/templates/feedback-backend/internal/principal"
)

type fakePrincipals struct {
	seen map[string]bool
	err  error
}

func (f *fakePrincipals) CreatePrincipal(
	_ context.Context,
	role principal.Role,
	username, email, _ string,
) (*principal.Principal, error) {
	if f.err != nil {
		return nil, f.err
	}
	key := role.String() + "/" + email
	if f.seen[key] {
		return nil, fmt.Errorf("email already exists: %w", core.ErrDuplicateKey)
	}
	f.seen[key] = true
	return &principal.Principal{Username: username, Email: email, Role: role}, nil
}

type fakeCategories struct {
	seen map[string]bool
}

func (f *fakeCategories) Create(_ context.Context, name string) (*category.Category, error) {
	if f.seen[name] {
		return nil, fmt.Errorf("create category %q: %w", name, core.ErrDuplicateKey)
	}
	f.seen[name] = true
	return &category.Category{Name: name}, nil
}

func testBootstrapConfig() config.BootstrapConfig {
	return config.BootstrapConfig{
		AdminUsername: "admin",
		AdminEmail:    "admin@admin.com",
		AdminPassword: "admin123",
		UserUsername:  "user",
		UserEmail:     "user@user.com",
		UserPassword:  "user123",
		Categories:    []string{"Bug Report", " Usability ", ""},
	}
}

func TestService_Run_Idempotent(t *testing.T) {
	principals := &fakePrincipals{seen: map[string]bool{}}
	categories := &fakeCategories{seen: map[string]bool{}}
	svc := NewService(principals, categories, testBootstrapConfig())

	first, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"admin:admin@admin.com",
		"user:user@user.com",
		"category:Bug Report",
		"category:Usability",
	}, first.Created)
	assert.Empty(t, first.Existing)

	second, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, second.Created)
	assert.Len(t, second.Existing, 4)
}

func TestService_Run_SkipsBlankAccounts(t *testing.T) {
	cfg := testBootstrapConfig()
	cfg.UserPassword = ""
	cfg.Categories = nil

	principals := &fakePrincipals{seen: map[string]bool{}}
	svc := NewService(principals, &fakeCategories{seen: map[string]bool{}}, cfg)

	report, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"admin:admin@admin.com"}, report.Created)
}

func TestService_Run_Fault(t *testing.T) {
	principals := &fakePrincipals{seen: map[string]bool{}, err: errors.New("db down")}
	svc := NewService(principals, &fakeCategories{seen: map[string]bool{}}, testBootstrapConfig())

	report, err := svc.Run(context.Background())
	require.Error(t, err)
	assert.Nil(t, report)
	assert.Contains(t, err.Error(), "admin:admin@admin.com")
}
