// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/carterperez-dev/templates/feedback-backend/internal/core"
	"github.com/carterperez-dev/templates/feedback-backend/internal/middleware"
	"github.com/carterperez-dev/templates/feedback-backend/internal/principal"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPrincipalNotFound  = errors.New("principal not found")
	ErrEmailExists        = fmt.Errorf("email already exists: %w", core.ErrDuplicateKey)
)

var tracer = otel.Tracer("github.com/carterperez-dev/templates/feedback-backend/internal/auth")

type PrincipalProvider interface {
	Create(
		ctx context.Context,
		role principal.Role,
		username, email, passwordHash string,
	) (*principal.Principal, error)
	GetByEmail(
		ctx context.Context,
		role principal.Role,
		email string,
	) (*principal.Principal, error)
	Resolve(ctx context.Context, email string) (*principal.Principal, error)
	UpdatePassword(
		ctx context.Context,
		role principal.Role,
		id int64,
		passwordHash string,
	) error
}

type TokenIssuer interface {
	CreateAccessToken(email string) (*IssuedToken, error)
	VerifyAccessToken(ctx context.Context, token string) (*TokenClaims, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	VerifyTimingSafe(password string, encodedHash *string) (bool, string, error)
}

type Service struct {
	principals  PrincipalProvider
	tokens      TokenIssuer
	revocations RevocationStore
	hasher      PasswordHasher
}

func NewService(
	principals PrincipalProvider,
	tokens TokenIssuer,
	revocations RevocationStore,
) *Service {
	return &Service{
		principals:  principals,
		tokens:      tokens,
		revocations: revocations,
		hasher:      core.DefaultHasher(),
	}
}

// Register hashes the password and stores the principal in role's table.
func (s *Service) Register(
	ctx context.Context,
	role principal.Role,
	req RegisterRequest,
) (*principal.Principal, error) {
	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	p, err := s.principals.Create(ctx, role, req.Username, req.Email, passwordHash)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create principal: %w", err)
	}

	return p, nil
}

// Login checks the admin table first and falls back to the user table. Every
// failure collapses into ErrInvalidCredentials, and an absent email still pays
// for one password derivation so the two cases cannot be told apart.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*LoginResponse, error) {
	ctx, span := tracer.Start(ctx, "auth.Login")
	defer span.End()

	for _, role := range principal.LookupOrder {
		p, err := s.principals.GetByEmail(ctx, role, req.Email)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
				_, _, _ = s.hasher.VerifyTimingSafe(req.Password, nil)
				continue
			}
			span.SetStatus(codes.Error, "principal lookup failed")
			return nil, fmt.Errorf("get principal: %w", err)
		}

		valid, newHash, err := s.hasher.VerifyTimingSafe(
			req.Password,
			&p.PasswordHash,
		)
		if err != nil {
			slog.WarnContext(ctx, "stored password hash unreadable",
				"role", role.String(),
				"principal_id", p.ID,
				"error", err,
			)
			continue
		}

		if !valid {
			continue
		}

		if newHash != "" {
			//nolint:errcheck // best-effort rehash upgrade
			_ = s.principals.UpdatePassword(ctx, role, p.ID, newHash)
		}

		issued, err := s.tokens.CreateAccessToken(p.Email)
		if err != nil {
			return nil, fmt.Errorf("create access token: %w", err)
		}

		span.SetAttributes(attribute.String("auth.role", role.String()))

		return &LoginResponse{
			Token:     issued.Token,
			TokenType: "Bearer",
			Role:      role.String(),
			Email:     p.Email,
			ExpiresAt: issued.ExpiresAt,
		}, nil
	}

	return nil, ErrInvalidCredentials
}

// Authenticate verifies the token, rejects revoked ids and derives the role
// from whichever table holds the token's email right now.
func (s *Service) Authenticate(
	ctx context.Context,
	token string,
) (*middleware.Identity, error) {
	ctx, span := tracer.Start(ctx, "auth.Authenticate")
	defer span.End()

	claims, err := s.tokens.VerifyAccessToken(ctx, token)
	if err != nil {
		span.SetStatus(codes.Error, "token rejected")
		return nil, err
	}

	if s.revocations != nil && claims.ID != "" {
		revoked, revErr := s.revocations.IsRevoked(ctx, claims.ID)
		if revErr != nil {
			return nil, fmt.Errorf("authenticate: %w", revErr)
		}
		if revoked {
			return nil, fmt.Errorf("authenticate: %w", core.ErrTokenRevoked)
		}
	}

	p, err := s.principals.Resolve(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			slog.WarnContext(ctx, "token subject has no principal")
			return nil, core.NewAppError(
				ErrPrincipalNotFound,
				"principal not found",
				http.StatusUnauthorized,
				"PRINCIPAL_NOT_FOUND",
			)
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	span.SetAttributes(attribute.String("auth.role", p.Role.String()))

	return &middleware.Identity{
		Email:     p.Email,
		Role:      p.Role.String(),
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

// Logout revokes the presented token until its natural expiry.
func (s *Service) Logout(ctx context.Context, identity *middleware.Identity) error {
	if identity == nil {
		return fmt.Errorf("logout: %w", core.ErrUnauthorized)
	}

	if s.revocations == nil || identity.TokenID == "" {
		return nil
	}

	if err := s.revocations.Revoke(ctx, identity.TokenID, identity.ExpiresAt); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	return nil
}

// CreatePrincipal registers with a plaintext password and skips request
// validation; used when seeding default accounts.
func (s *Service) CreatePrincipal(
	ctx context.Context,
	role principal.Role,
	username, email, password string,
) (*principal.Principal, error) {
	return s.Register(ctx, role, RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
}
