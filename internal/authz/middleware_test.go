package authz

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"fridgechef/internal/auth"
	"fridgechef/internal/domain/user"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enforce(t *testing.T, m *Middleware, method, path string, principal *auth.Principal) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if principal != nil {
		c.Set(auth.ContextKeyPrincipal, principal)
	}

	called := false
	err := m.Enforce()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)

	return rec, called
}

func TestEnforce_PublicPathAllowsAnonymous(t *testing.T) {
	m := NewMiddleware(DefaultMatrix(), nil)

	rec, called := enforce(t, m, http.MethodGet, "/health", nil)
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEnforce_AnonymousRejectedOnProtectedPath(t *testing.T) {
	m := NewMiddleware(DefaultMatrix(), nil)

	rec, called := enforce(t, m, http.MethodGet, "/user", nil)
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEnforce_DefaultDenyForUnlistedPath(t *testing.T) {
	m := NewMiddleware(DefaultMatrix(), nil)

	// Not in the table: authentication required, any role passes.
	rec, called := enforce(t, m, http.MethodGet, "/api/internal/unknown", nil)
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	principal := auth.NewPrincipal(uuid.New(), user.RoleUser)
	rec, called = enforce(t, m, http.MethodGet, "/api/internal/unknown", principal)
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEnforce_ExactAuthorityMatching(t *testing.T) {
	m := NewMiddleware(DefaultMatrix(), nil)

	// GET /user requires ROLE_USER; an admin does not hold it. There is no
	// role hierarchy, so the admin is denied.
	admin := auth.NewPrincipal(uuid.New(), user.RoleAdmin)
	rec, called := enforce(t, m, http.MethodGet, "/user", admin)
	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	regular := auth.NewPrincipal(uuid.New(), user.RoleUser)
	rec, called = enforce(t, m, http.MethodGet, "/user", regular)
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEnforce_AnyAuthorityIntersection(t *testing.T) {
	m := NewMiddleware(DefaultMatrix(), nil)

	tests := []struct {
		name    string
		role    user.Role
		path    string
		allowed bool
	}{
		{"user on shared path", user.RoleUser, "/api/user/account", true},
		{"admin on shared path", user.RoleAdmin, "/api/user/account", true},
		{"user on admin path", user.RoleUser, "/api/manager/busines/ingredient", false},
		{"admin on admin path", user.RoleAdmin, "/api/manager/busines/ingredient", true},
		{"user on metrics", user.RoleUser, "/metrics/requests", false},
		{"admin on metrics", user.RoleAdmin, "/metrics/requests", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal := auth.NewPrincipal(uuid.New(), tt.role)
			rec, called := enforce(t, m, http.MethodPost, tt.path, principal)
			if tt.allowed {
				assert.True(t, called)
				assert.Equal(t, http.StatusOK, rec.Code)
			} else {
				assert.False(t, called)
				assert.Equal(t, http.StatusForbidden, rec.Code)
			}
		})
	}
}
