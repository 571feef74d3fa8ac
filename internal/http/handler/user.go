package handler

import (
	"net/http"

	"fridgechef/internal/auth"
	"fridgechef/internal/repository"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	userRepo repository.UserRepository
}

func NewUserHandler(userRepo repository.UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

// Profile handles GET /user. The matrix has already required ROLE_USER by
// the time this runs; the only remaining work is the identity lookup.
func (h *UserHandler) Profile(c echo.Context) error {
	principal, err := auth.GetPrincipal(c)
	if err != nil {
		return err
	}

	u, err := h.userRepo.GetByID(c.Request().Context(), principal.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newUserResponse(u, ""))
}
