package handler

import (
	"context"
	"net/http"
	"strings"

	"fridgechef/internal/audit"
	"fridgechef/internal/auth"
	"fridgechef/internal/domain/user"
	"fridgechef/internal/oauth"
	"fridgechef/internal/repository"
	apperrors "fridgechef/pkg/errors"
	"fridgechef/pkg/password"
	"fridgechef/pkg/validator"

	"github.com/labstack/echo/v4"
)

// Pre-computed bcrypt hash (cost 12) used to equalize timing on failed lookups.
// The actual plaintext is irrelevant — this just ensures constant-time response.
const dummyBcryptHash = "$2a$12$dWR5CQpS4zNHLavLSIr4o.P6QDQEUJKv7mJ7WekUHHqyRSRMJzH0S"

type mobileLoginService interface {
	MobileLogin(ctx context.Context, registration, accessToken string) (*oauth.LoginResult, error)
}

type AuthHandler struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenService
	login    mobileLoginService
	recorder audit.Recorder
}

func NewAuthHandler(userRepo repository.UserRepository, tokens *auth.TokenService, login mobileLoginService, recorder audit.Recorder) *AuthHandler {
	return &AuthHandler{
		userRepo: userRepo,
		tokens:   tokens,
		login:    login,
		recorder: recorder,
	}
}

type MobileLoginRequest struct {
	Registration string `json:"registration"`
	Token        string `json:"token"`
}

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// MobileLogin handles POST /api/mobile/auth/login. The client already holds
// a provider access token; the whole resolve-normalize-issue flow either
// completes or fails as a unit.
func (h *AuthHandler) MobileLogin(c echo.Context) error {
	var req MobileLoginRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}

	if req.Registration == "" {
		return apperrors.BadRequest(msgRegistrationRequired)
	}
	if req.Token == "" {
		return apperrors.BadRequest(msgTokenRequired)
	}

	result, err := h.login.MobileLogin(c.Request().Context(), req.Registration, req.Token)
	if err != nil {
		event := audit.FromContext(c, audit.ActionLogin, audit.StatusFailure)
		event.Provider = req.Registration
		event.ErrorMessage = err.Error()
		audit.RecordAsync(h.recorder, c, event)
		return err
	}

	event := audit.FromContext(c, audit.ActionLogin, audit.StatusSuccess)
	event.Provider = req.Registration
	actorID := result.User.ID
	event.ActorID = &actorID
	audit.RecordAsync(h.recorder, c, event)

	return c.JSON(http.StatusOK, newUserResponse(result.User, result.Token))
}

// Signup handles POST /api/user/signup for direct-credential accounts.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validator.ValidateEmail(req.Email); err != nil {
		return err
	}
	if err := validator.ValidatePassword(req.Password); err != nil {
		return err
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return apperrors.InternalServer("failed to hash password", err)
	}

	created, err := h.userRepo.Create(c.Request().Context(), user.CreateUserInput{
		Provider:       user.ProviderLocal,
		ProviderUserID: req.Email,
		Email:          req.Email,
		DisplayName:    req.Username,
		PasswordHash:   hash,
		Role:           user.RoleUser,
	})
	if err != nil {
		return err
	}

	token, err := h.tokens.Issue(created.ID, created.Role)
	if err != nil {
		return err
	}

	event := audit.FromContext(c, audit.ActionSignup, audit.StatusSuccess)
	event.Provider = string(user.ProviderLocal)
	actorID := created.ID
	event.ActorID = &actorID
	audit.RecordAsync(h.recorder, c, event)

	return c.JSON(http.StatusCreated, newUserResponse(created, token))
}

// Login handles POST /api/user/login with direct credentials.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	u, err := h.userRepo.GetByEmail(c.Request().Context(), req.Email)
	if err != nil {
		// Burn a comparison anyway so missing accounts are indistinguishable
		// from wrong passwords by timing.
		password.Verify(req.Password, dummyBcryptHash)
		return h.failedLogin(c, apperrors.InvalidCredentials())
	}

	if u.PasswordHash == "" || !password.Verify(req.Password, u.PasswordHash) {
		return h.failedLogin(c, apperrors.InvalidCredentials())
	}

	token, err := h.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return err
	}

	event := audit.FromContext(c, audit.ActionLogin, audit.StatusSuccess)
	event.Provider = string(user.ProviderLocal)
	actorID := u.ID
	event.ActorID = &actorID
	audit.RecordAsync(h.recorder, c, event)

	return c.JSON(http.StatusOK, newUserResponse(u, token))
}

func (h *AuthHandler) failedLogin(c echo.Context, err error) error {
	event := audit.FromContext(c, audit.ActionLogin, audit.StatusFailure)
	event.Provider = string(user.ProviderLocal)
	event.ErrorMessage = err.Error()
	audit.RecordAsync(h.recorder, c, event)
	return err
}
