package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lu-nia/lostfound/internal/auth"
	"github.com/lu-nia/lostfound/internal/server/middleware"
)

const testSecret = "middleware-test-secret"

// contextHandler captures context values set by middleware so tests can
// assert that the correct user and role were injected.
type contextHandler struct {
	userID uuid.UUID
	role   string
	called bool
}

func (h *contextHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.called = true
	h.userID, _ = middleware.UserIDFromContext(r.Context())
	h.role, _ = middleware.RoleFromContext(r.Context())
	w.WriteHeader(http.StatusOK)
}

func TestAuth_ValidBearerToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	token, err := auth.IssueAccessToken(testSecret, userID, middleware.RoleStudent, 5*time.Minute)
	require.NoError(t, err)

	h := &contextHandler{}
	handler := middleware.Auth(testSecret)(h)

	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, h.called)
	assert.Equal(t, userID, h.userID)
	assert.Equal(t, middleware.RoleStudent, h.role)
}

func TestAuth_MissingToken(t *testing.T) {
	t.Parallel()

	h := &contextHandler{}
	handler := middleware.Auth(testSecret)(h)

	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, h.called)
}

func TestAuth_InvalidToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage token", token: "not-a-jwt"},
		{name: "wrong secret", token: mustToken(t, "other-secret", uuid.New(), 5*time.Minute)},
		{name: "expired token", token: mustToken(t, testSecret, uuid.New(), -1*time.Minute)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := &contextHandler{}
			handler := middleware.Auth(testSecret)(h)

			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, h.called)
		})
	}
}

func TestAuth_RefreshTokenRejected(t *testing.T) {
	t.Parallel()

	// Refresh tokens must not grant API access.
	refresh, err := auth.IssueRefreshToken(testSecret, uuid.New(), middleware.RoleStudent, time.Hour)
	require.NoError(t, err)

	h := &contextHandler{}
	handler := middleware.Auth(testSecret)(h)

	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+refresh)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, h.called)
}

func mustToken(t *testing.T, secret string, userID uuid.UUID, ttl time.Duration) string {
	t.Helper()
	token, err := auth.IssueAccessToken(secret, userID, middleware.RoleStudent, ttl)
	require.NoError(t, err)
	return token
}
