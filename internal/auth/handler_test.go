// AngelaMos | 2026
// handler_test.go

package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/feedback-backend/internal/bootstrap"
	"github.com/carterperez-dev/templates/feedback-backend/internal/middleware"
	"github.com/carterperez-dev/templates/feedback-backend/internal/principal"
)

type stubInitializer struct {
	report *bootstrap.Report
	err    error
	calls  int
}

func (s *stubInitializer) Run(context.Context) (*bootstrap.Report, error) {
	s.calls++
	return s.report, s.err
}

func passThrough(next http.Handler) http.Handler { return next }

func newTestRouter(t *testing.T, seeder Initializer) (*chi.Mux, *fixture) {
	t.Helper()

	f := newFixture(t)
	h := NewHandler(f.svc, seeder)

	r := chi.NewRouter()
	h.RegisterRoutes(r, middleware.Authenticator(f.svc), passThrough)
	return r, f
}

func doJSON(
	t *testing.T,
	r http.Handler,
	method, path string,
	body any,
	token string,
) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func TestHandler_RegisterAndLogin(t *testing.T) {
	r, _ := newTestRouter(t, &stubInitializer{})

	rec := doJSON(t, r, http.MethodPost, "/auth/user/register", RegisterRequest{
		Username: "ann",
		Email:    "ann@example.com",
		Password: "secret1",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &created))
	assert.Equal(t, "ann@example.com", created.Email)
	assert.Equal(t, "USER", created.Role)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = doJSON(t, r, http.MethodPost, "/auth/user/register", RegisterRequest{
		Username: "ann",
		Email:    "ann@example.com",
		Password: "secret1",
	}, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/auth/login", LoginRequest{
		Email:    "ann@example.com",
		Password: "secret1",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var login LoginResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &login))
	assert.Equal(t, "USER", login.Role)
	assert.NotEmpty(t, login.Token)

	rec = doJSON(t, r, http.MethodGet, "/auth/validate", nil, login.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	var identity IdentityResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &identity))
	assert.Equal(t, IdentityResponse{Email: "ann@example.com", Role: "USER"}, identity)
}

func TestHandler_LoginFailures(t *testing.T) {
	r, _ := newTestRouter(t, &stubInitializer{})

	rec := doJSON(t, r, http.MethodPost, "/auth/login", LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid email or password", decode(t, rec).Error.Message)

	rec = doJSON(t, r, http.MethodPost, "/auth/login", map[string]string{"email": "not-an-email"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString("{"))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_RegisterValidation(t *testing.T) {
	r, _ := newTestRouter(t, &stubInitializer{})

	rec := doJSON(t, r, http.MethodPost, "/auth/admin/register", RegisterRequest{
		Username: "",
		Email:    "boss@example.com",
		Password: "123",
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	msg := decode(t, rec).Error.Message
	assert.Contains(t, msg, "username is required")
	assert.Contains(t, msg, "password must be at least 6 characters")
}

func TestHandler_ValidateRequiresToken(t *testing.T) {
	r, _ := newTestRouter(t, &stubInitializer{})

	rec := doJSON(t, r, http.MethodGet, "/auth/validate", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/auth/validate", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TOKEN_INVALID", decode(t, rec).Error.Code)
}

func TestHandler_Logout(t *testing.T) {
	r, f := newTestRouter(t, &stubInitializer{})

	f.register(t, principal.RoleAdmin, "boss@example.com", "adminpw")

	rec := doJSON(t, r, http.MethodPost, "/auth/login", LoginRequest{
		Email:    "boss@example.com",
		Password: "adminpw",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var login LoginResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &login))
	assert.Equal(t, "ADMIN", login.Role)

	rec = doJSON(t, r, http.MethodPost, "/auth/logout", nil, login.Token)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/auth/validate", nil, login.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TOKEN_REVOKED", decode(t, rec).Error.Code)
}

func TestHandler_Init(t *testing.T) {
	seeder := &stubInitializer{report: &bootstrap.Report{
		Created:  []string{"admin:admin@admin.com"},
		Existing: []string{},
	}}
	r, _ := newTestRouter(t, seeder)

	rec := doJSON(t, r, http.MethodPost, "/auth/init", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, seeder.calls)

	var report bootstrap.Report
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &report))
	assert.Equal(t, []string{"admin:admin@admin.com"}, report.Created)

	seeder.err = errors.New("db down")
	rec = doJSON(t, r, http.MethodPost, "/auth/init", nil, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
