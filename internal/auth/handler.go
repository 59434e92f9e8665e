// AngelaMos | 2026
// handler.go

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/templates/feedback-backend/internal/bootstrap"
	"github.com/carterperez-dev/templates/feedback-backend/internal/core"
	"github.com/carterperez-dev/templates/feedback-backend/internal/middleware"
	"github.com/carterperez-dev/templates/feedback-backend/internal/principal"
)

// Initializer seeds the default principals and categories.
type Initializer interface {
	Run(ctx context.Context) (*bootstrap.Report, error)
}

type Handler struct {
	service     *Service
	initializer Initializer
	validator   *validator.Validate
}

func NewHandler(service *Service, initializer Initializer) *Handler {
	return &Handler{
		service:     service,
		initializer: initializer,
		validator:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts the auth surface. writeLimiter guards the public
// endpoints that create state or check passwords.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	writeLimiter func(http.Handler) http.Handler,
) {
	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(writeLimiter)
			r.Post("/admin/register", h.registerAs(principal.RoleAdmin))
			r.Post("/user/register", h.registerAs(principal.RoleUser))
			r.Post("/login", h.Login)
			r.Post("/init", h.Init)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Get("/validate", h.Validate)
			r.Post("/logout", h.Logout)
		})
	})
}

func (h *Handler) registerAs(role principal.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			core.BadRequest(w, "invalid request body")
			return
		}

		if err := h.validator.Struct(req); err != nil {
			core.BadRequest(w, core.FormatValidationError(err))
			return
		}

		p, err := h.service.Register(r.Context(), role, req)
		if err != nil {
			if errors.Is(err, ErrEmailExists) {
				core.JSONError(w, core.DuplicateError("email"))
				return
			}
			core.InternalServerError(w, err)
			return
		}

		core.Created(w, principal.ToPrincipalResponse(p))
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			core.JSONError(
				w,
				core.UnauthorizedError("invalid email or password"),
			)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Init(w http.ResponseWriter, r *http.Request) {
	report, err := h.initializer.Run(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, report)
}

func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		core.Unauthorized(w, "")
		return
	}

	core.OK(w, IdentityResponse{
		Email: identity.Email,
		Role:  identity.Role,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		core.Unauthorized(w, "")
		return
	}

	if err := h.service.Logout(r.Context(), identity); err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
