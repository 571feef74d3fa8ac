package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"fridgechef/internal/auth"
	"fridgechef/internal/domain/user"
	apperrors "fridgechef/pkg/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile_ReturnsCallerWithoutToken(t *testing.T) {
	repo := newFakeUserRepo()
	created, err := repo.Create(context.Background(), user.CreateUserInput{
		Provider:       user.ProviderKakao,
		ProviderUserID: "k-1",
		Email:          "me@example.com",
		DisplayName:    "Me",
		Role:           user.RoleUser,
	})
	require.NoError(t, err)

	h := NewUserHandler(repo)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(auth.ContextKeyPrincipal, auth.NewPrincipal(created.ID, created.Role))

	require.NoError(t, h.Profile(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, created.ID.String(), resp.UserID)
	assert.Equal(t, "me@example.com", resp.Email)
	// Profile responses never carry a token.
	assert.Empty(t, resp.Token)
}

func TestProfile_AnonymousRejected(t *testing.T) {
	h := NewUserHandler(newFakeUserRepo())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Profile(c)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestProfile_DeletedUser(t *testing.T) {
	h := NewUserHandler(newFakeUserRepo())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(auth.ContextKeyPrincipal, auth.NewPrincipal(uuid.New(), user.RoleUser))

	err := h.Profile(c)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
