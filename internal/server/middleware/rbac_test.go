package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lu-nia/lostfound/internal/server/middleware"
)

// setRole injects a role into the request context using the same context key
// that the Auth middleware uses.
func setRole(r *http.Request, role string) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.ContextKeyUserRole, role)
	return r.WithContext(ctx)
}

// okHandler is a simple handler that writes 200 OK.
var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRequireRole_AllowsMatchingRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		allowedRoles []string
		userRole     string
	}{
		{name: "admin allowed for admin-only", allowedRoles: []string{middleware.RoleAdmin}, userRole: middleware.RoleAdmin},
		{name: "student allowed for student-only", allowedRoles: []string{middleware.RoleStudent}, userRole: middleware.RoleStudent},
		{name: "student allowed when both permitted", allowedRoles: []string{middleware.RoleAdmin, middleware.RoleStudent}, userRole: middleware.RoleStudent},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := middleware.RequireRole(tt.allowedRoles...)(okHandler)
			req := setRole(httptest.NewRequest(http.MethodGet, "/", http.NoBody), tt.userRole)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestRequireRole_BlocksNonMatchingRole(t *testing.T) {
	t.Parallel()

	handler := middleware.RequireAdmin()(okHandler)
	req := setRole(httptest.NewRequest(http.MethodGet, "/", http.NoBody), middleware.RoleStudent)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), "insufficient permissions")
}

func TestRequireRole_MissingRole(t *testing.T) {
	t.Parallel()

	handler := middleware.RequireAdmin()(okHandler)
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "authentication required")
}
