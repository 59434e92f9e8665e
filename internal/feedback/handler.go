// AngelaMos | 2026
// handler.go

package feedback

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/templates/feedback-backend/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes registers the unauthenticated submission endpoints.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	writeLimiter func(http.Handler) http.Handler,
) {
	r.Route("/feedback", func(r chi.Router) {
		r.With(writeLimiter).Post("/", h.Submit)
		r.Get("/user/{userID}", h.ListByUser)
	})
}

// RegisterAdminRoutes registers the moderation endpoints.
func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/v1/admin/feedback", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/", h.Search)
		r.Get("/all", h.ListAll)
		r.Get("/{feedbackID}", h.Get)
		r.Put("/{feedbackID}/status", h.UpdateStatus)
		r.Put("/{feedbackID}/category/{categoryID}", h.UpdateCategory)
		r.Delete("/{feedbackID}", h.Delete)
	})
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	f, err := h.service.Submit(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, ToFeedbackResponse(f))
}

func (h *Handler) ListByUser(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListByUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToFeedbackResponseList(items))
}

// Search serves the filtered, sorted, zero-based page of feedback.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	params := SearchParams{
		Page:      parseIntQuery(r, "page", 0),
		Size:      parseIntQuery(r, "size", DefaultPageSize),
		SortBy:    query.Get("sortBy"),
		SortOrder: query.Get("sortOrder"),
		Name:      query.Get("name"),
		Email:     query.Get("email"),
		Status:    query.Get("status"),
	}

	if raw := strings.TrimSpace(query.Get("rating")); raw != "" {
		rating, err := strconv.Atoi(raw)
		if err != nil {
			core.BadRequest(w, "rating must be an integer")
			return
		}
		params.Rating = &rating
	}

	if raw := strings.TrimSpace(query.Get("category")); raw != "" {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			core.BadRequest(w, "category must be an integer id")
			return
		}
		params.CategoryID = &categoryID
	}

	page, err := h.service.Search(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Paginated(
		w,
		ToFeedbackResponseList(page.Items),
		page.Page,
		page.Size,
		page.Total,
	)
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListAll(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToFeedbackResponseList(items))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "feedbackID")
	if !ok {
		return
	}

	f, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToFeedbackResponse(f))
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "feedbackID")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	status, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, StatusResponse{ID: id, Status: status.String()})
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "feedbackID")
	if !ok {
		return
	}

	categoryID, ok := parseIDParam(w, r, "categoryID")
	if !ok {
		return
	}

	f, err := h.service.UpdateCategory(r.Context(), id, categoryID)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToFeedbackResponse(f))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "feedbackID")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	core.NoContent(w)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrCategoryNotFound):
		core.NotFound(w, "category")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "feedback")
	case errors.Is(err, ErrInvalidStatus):
		core.BadRequest(w, "status must be one of: "+statusNames())
	case errors.Is(err, ErrInvalidSort):
		core.BadRequest(w, "unsupported sort field")
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, "invalid request")
	default:
		core.InternalServerError(w, err)
	}
}

func parseIDParam(w http.ResponseWriter, r *http.Request, key string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	if err != nil || id < 1 {
		core.BadRequest(w, "invalid "+strings.TrimSuffix(key, "ID")+" id")
		return 0, false
	}
	return id, true
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
