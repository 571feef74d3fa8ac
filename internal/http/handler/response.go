package handler

import (
	"fridgechef/internal/domain/user"

	"github.com/labstack/echo/v4"
)

// UserResponse is the login response: the user's profile plus the issued
// application token.
type UserResponse struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	Token       string `json:"token,omitempty"`
}

func newUserResponse(u *user.User, token string) UserResponse {
	return UserResponse{
		UserID:      u.ID.String(),
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
		Token:       token,
	}
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{jsonKeyError: message})
}
