package authz

import (
	"net/http"

	"fridgechef/internal/audit"
	"fridgechef/internal/auth"

	"github.com/labstack/echo/v4"
)

const (
	jsonKeyError = "error"

	msgAuthenticationRequired = "authentication required"
	msgInsufficientAuthority  = "insufficient authority"
)

type Middleware struct {
	matrix   *Matrix
	recorder audit.Recorder
}

// NewMiddleware builds the request gate. The recorder may be nil.
func NewMiddleware(matrix *Matrix, recorder audit.Recorder) *Middleware {
	return &Middleware{
		matrix:   matrix,
		recorder: recorder,
	}
}

// Enforce evaluates the matrix for every request before any handler runs.
// It expects the authentication middleware to have already converted a
// bearer token into a principal.
func (m *Middleware) Enforce() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requirement := m.matrix.Evaluate(c.Request().Method, c.Request().URL.Path)

			if requirement.Kind == RequirePublic {
				return next(c)
			}

			principal, err := auth.GetPrincipal(c)
			if err != nil {
				return respondError(c, http.StatusUnauthorized, msgAuthenticationRequired)
			}

			if requirement.Kind == RequireAuthenticated {
				return next(c)
			}

			for _, authority := range requirement.Authorities {
				if principal.HasAuthority(authority) {
					return next(c)
				}
			}

			event := audit.FromContext(c, audit.ActionAuthorize, audit.StatusDenied)
			actorID := principal.UserID
			event.ActorID = &actorID
			audit.RecordAsync(m.recorder, c, event)

			return respondError(c, http.StatusForbidden, msgInsufficientAuthority)
		}
	}
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{jsonKeyError: message})
}
