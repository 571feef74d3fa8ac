package auth

import (
	"net/http"
	"strings"

	apperrors "fridgechef/pkg/errors"

	"github.com/labstack/echo/v4"
)

type Middleware struct {
	tokenService *TokenService
}

func NewMiddleware(tokenService *TokenService) *Middleware {
	return &Middleware{tokenService: tokenService}
}

// Authenticate extracts and verifies a bearer token if one is present.
// Requests without a token continue anonymously; the authorization matrix
// decides whether that is acceptable for the path. A token that is present
// but invalid always fails the request - there is no fallback to public
// access on a verification failure.
func (m *Middleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractBearerToken(c)
			if token == "" {
				return next(c)
			}

			principal, err := m.tokenService.Verify(token)
			if err != nil {
				return respondError(c, http.StatusUnauthorized, msgInvalidOrExpiredToken)
			}

			c.Set(ContextKeyPrincipal, principal)

			return next(c)
		}
	}
}

func extractBearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(headerAuthorization)
	if authHeader == "" {
		return ""
	}

	parts := strings.Fields(authHeader)
	if len(parts) != authHeaderParts || strings.ToLower(parts[0]) != bearerScheme {
		return ""
	}

	return parts[1]
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{jsonKeyError: message})
}

// GetPrincipal returns the verified caller for the request, or an
// unauthorized error when the request is anonymous.
func GetPrincipal(c echo.Context) (*Principal, error) {
	raw := c.Get(ContextKeyPrincipal)
	if raw == nil {
		return nil, apperrors.Unauthorized(msgUserNotAuthenticated)
	}

	principal, ok := raw.(*Principal)
	if !ok {
		return nil, apperrors.InternalServer(msgInvalidPrincipalCtx, nil)
	}

	return principal, nil
}
