package handler

import (
	"context"
	"net/http"

	"fridgechef/internal/audit"
	"fridgechef/internal/oauth"

	"github.com/labstack/echo/v4"
)

type webLoginService interface {
	AuthCodeURL(registration, state string) (string, error)
	CompleteWebLogin(ctx context.Context, registration, code string) (*oauth.LoginResult, error)
}

// OAuthHandler runs the web redirect flow. The mobile flow lives on
// AuthHandler; both share the same service tail.
type OAuthHandler struct {
	login    webLoginService
	states   *oauth.StateStore
	recorder audit.Recorder
}

func NewOAuthHandler(login webLoginService, states *oauth.StateStore, recorder audit.Recorder) *OAuthHandler {
	return &OAuthHandler{
		login:    login,
		states:   states,
		recorder: recorder,
	}
}

// Login handles GET /api/auth/:provider - redirects the browser to the
// provider's consent page with a single-use state nonce.
func (h *OAuthHandler) Login(c echo.Context) error {
	registration := c.Param(paramProvider)

	state := h.states.Issue()
	url, err := h.login.AuthCodeURL(registration, state)
	if err != nil {
		return err
	}

	return c.Redirect(http.StatusFound, url)
}

// Callback handles GET /api/auth/:provider/callback after the provider
// redirected back with an authorization code.
func (h *OAuthHandler) Callback(c echo.Context) error {
	registration := c.Param(paramProvider)

	if !h.states.Consume(c.QueryParam(queryState)) {
		return respondError(c, http.StatusUnauthorized, msgInvalidLoginState)
	}

	code := c.QueryParam(queryCode)
	if code == "" {
		return respondError(c, http.StatusBadRequest, msgMissingAuthCode)
	}

	result, err := h.login.CompleteWebLogin(c.Request().Context(), registration, code)
	if err != nil {
		event := audit.FromContext(c, audit.ActionLogin, audit.StatusFailure)
		event.Provider = registration
		event.ErrorMessage = err.Error()
		audit.RecordAsync(h.recorder, c, event)
		return err
	}

	event := audit.FromContext(c, audit.ActionLogin, audit.StatusSuccess)
	event.Provider = registration
	actorID := result.User.ID
	event.ActorID = &actorID
	audit.RecordAsync(h.recorder, c, event)

	return c.JSON(http.StatusOK, newUserResponse(result.User, result.Token))
}
