// AngelaMos | 2026
// handler_test.go

package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/feedback-backend/internal/core"
	"github.com/carterperez-dev/templates/feedback-backend/internal/middleware"
)

func passThrough(next http.Handler) http.Handler { return next }

func newTestRouter() (http.Handler, *memRepo) {
	svc, repo := newTestService()
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		h.RegisterRoutes(r, passThrough)
		h.RegisterAdminRoutes(r, passThrough, passThrough)
	})
	return r, repo
}

func call(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, bytes.NewBufferString(body)))
	return rec
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error.Message
}

func TestHandler_Submit(t *testing.T) {
	h, _ := newTestRouter()

	rec := call(h, http.MethodPost, "/api/feedback", `{
		"user_id": "u-1",
		"product_id": "p-9",
		"rating": 5,
		"comment": "love it",
		"submitter_name": "Ann",
		"submitter_email": "ann@example.com",
		"status": "RESOLVED",
		"category": {"id": 1}
	}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Data FeedbackResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

	assert.Equal(t, "PENDING", body.Data.Status)
	require.NotNil(t, body.Data.Category)
	assert.Equal(t, "Bug Report", body.Data.Category.Name)
}

func TestHandler_Submit_Rejects(t *testing.T) {
	h, repo := newTestRouter()

	rec := call(h, http.MethodPost, "/api/feedback", `{"category": {"id": 42}}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "category not found", errorMessage(t, rec))

	rec = call(h, http.MethodPost, "/api/feedback", `{"submitter_email": "nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	long := make([]byte, 501)
	for i := range long {
		long[i] = 'x'
	}
	rec = call(h, http.MethodPost, "/api/feedback", `{"comment": "`+string(long)+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(h, http.MethodPost, "/api/feedback", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Empty(t, repo.rows)
}

func TestHandler_ListByUser(t *testing.T) {
	h, _ := newTestRouter()

	call(h, http.MethodPost, "/api/feedback", `{"user_id": "u-1", "rating": 1}`)
	call(h, http.MethodPost, "/api/feedback", `{"user_id": "u-2", "rating": 2}`)

	rec := call(h, http.MethodGet, "/api/feedback/user/u-1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []FeedbackResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "u-1", body.Data[0].UserID)
	assert.Nil(t, body.Data[0].Category)
}

func TestHandler_Search(t *testing.T) {
	h, _ := newTestRouter()

	for range 3 {
		call(h, http.MethodPost, "/api/feedback", `{"rating": 4}`)
	}

	rec := call(h, http.MethodGet, "/api/v1/admin/feedback?page=0&size=2&rating=4&sortBy=rating&sortOrder=asc", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []FeedbackResponse `json:"data"`
		Meta struct {
			TotalElements int64 `json:"total_elements"`
			TotalPages    int   `json:"total_pages"`
		} `json:"meta"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Len(t, body.Data, 2)
	assert.Equal(t, int64(3), body.Meta.TotalElements)
	assert.Equal(t, 2, body.Meta.TotalPages)

	tests := []struct {
		query   string
		message string
	}{
		{"?rating=five", "rating must be an integer"},
		{"?category=abc", "category must be an integer id"},
		{"?sortBy=password", "unsupported sort field"},
		{"?status=ARCHIVED", "status must be one of: PENDING, IN_PROGRESS, APPROVED, RESOLVED, REJECTED"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := call(h, http.MethodGet, "/api/v1/admin/feedback"+tt.query, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.message, errorMessage(t, rec))
		})
	}
}

func TestHandler_AdminLifecycle(t *testing.T) {
	h, _ := newTestRouter()

	rec := call(h, http.MethodPost, "/api/feedback", `{"rating": 2}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = call(h, http.MethodGet, "/api/v1/admin/feedback/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = call(h, http.MethodPut, "/api/v1/admin/feedback/1/status", `{"status": "in_progress"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"id":1,"status":"IN_PROGRESS"}}`, rec.Body.String())

	rec = call(h, http.MethodPut, "/api/v1/admin/feedback/1/status", `{"status": "DONE"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(h, http.MethodPut, "/api/v1/admin/feedback/1/category/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"category":{"id":2`)

	rec = call(h, http.MethodPut, "/api/v1/admin/feedback/1/category/55", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "category not found", errorMessage(t, rec))

	rec = call(h, http.MethodGet, "/api/v1/admin/feedback/all", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = call(h, http.MethodDelete, "/api/v1/admin/feedback/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = call(h, http.MethodDelete, "/api/v1/admin/feedback/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "feedback not found", errorMessage(t, rec))

	rec = call(h, http.MethodGet, "/api/v1/admin/feedback/0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid feedback id", errorMessage(t, rec))
}

type tokenRoles map[string]string

func (t tokenRoles) Authenticate(_ context.Context, token string) (*middleware.Identity, error) {
	role, ok := t[token]
	if !ok {
		return nil, core.ErrTokenInvalid
	}
	return &middleware.Identity{Email: role + "@example.com", Role: role}, nil
}

func TestHandler_AdminRoutesRequireAdmin(t *testing.T) {
	svc, _ := newTestService()
	h := NewHandler(svc)
	authenticator := middleware.Authenticator(tokenRoles{
		"admin-token": "ADMIN",
		"user-token":  "USER",
	})

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		h.RegisterRoutes(r, passThrough)
		h.RegisterAdminRoutes(r, authenticator, middleware.RequireAdmin)
	})

	rec := call(r, http.MethodPost, "/api/feedback", `{"rating": 3}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = call(r, http.MethodGet, "/api/feedback/user/u-1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"unknown token", "forged", http.StatusUnauthorized},
		{"user principal", "user-token", http.StatusForbidden},
		{"admin principal", "admin-token", http.StatusOK},
	}

	paths := []string{
		"/api/v1/admin/feedback",
		"/api/v1/admin/feedback/all",
		"/api/v1/admin/feedback/1",
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, path := range paths {
				req := httptest.NewRequest(http.MethodGet, path, nil)
				if tt.token != "" {
					req.Header.Set("Authorization", "Bearer "+tt.token)
				}
				rec := httptest.NewRecorder()
				r.ServeHTTP(rec, req)
				assert.Equal(t, tt.want, rec.Code, path)
			}
		})
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/feedback/1", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = call(r, http.MethodGet, "/api/v1/admin/feedback/1", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
