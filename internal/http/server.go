package http

import (
	"context"
	stdhttp "net/http"

	"fridgechef/internal/audit"
	"fridgechef/internal/auth"
	"fridgechef/internal/authz"
	"fridgechef/internal/config"
	"fridgechef/internal/http/handler"
	"fridgechef/internal/http/middleware"
	"fridgechef/internal/oauth"
	"fridgechef/internal/repository"
	"fridgechef/pkg/metrics"
	"fridgechef/pkg/profiling"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

const (
	jsonKeyStatus    = "status"
	statusOK         = "ok"
	requestBodyLimit = "1M"
)

type ServerDependencies struct {
	Config         *config.Config
	UserRepo       repository.UserRepository
	TokenService   *auth.TokenService
	AuthMiddleware *auth.Middleware
	Matrix         *authz.Matrix
	OAuthService   *oauth.Service
	StateStore     *oauth.StateStore
	AuditRecorder  audit.Recorder
}

type Server struct {
	echo *echo.Echo
	deps *ServerDependencies
}

// NewServer wires the middleware chain. Order matters: authentication turns
// a bearer token into a principal, then the matrix gates every request
// before any handler runs.
func NewServer(deps *ServerDependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Set custom HTTP error handler
	e.HTTPErrorHandler = CustomHTTPErrorHandler

	e.Server.ReadTimeout = deps.Config.Server.ReadTimeout
	e.Server.WriteTimeout = deps.Config.Server.WriteTimeout

	// Request ID middleware (first, so all logs have request ID)
	e.Use(middleware.RequestID())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit(requestBodyLimit))

	// Global rate limiting
	globalRateLimiter := middleware.NewGlobalRateLimiter()
	e.Use(globalRateLimiter.Middleware())

	e.Use(metrics.MetricsMiddleware())

	// Bearer authentication, then the access matrix for every request
	e.Use(deps.AuthMiddleware.Authenticate())
	authzMiddleware := authz.NewMiddleware(deps.Matrix, deps.AuditRecorder)
	e.Use(authzMiddleware.Enforce())

	// Strict rate limiting for login endpoints
	strictRateLimiter := middleware.NewStrictRateLimiter()

	authHandler := handler.NewAuthHandler(deps.UserRepo, deps.TokenService, deps.OAuthService, deps.AuditRecorder)
	oauthHandler := handler.NewOAuthHandler(deps.OAuthService, deps.StateStore, deps.AuditRecorder)
	userHandler := handler.NewUserHandler(deps.UserRepo)

	e.GET("/health", healthCheck)
	e.GET("/user", userHandler.Profile)

	e.POST("/api/user/signup", authHandler.Signup, strictRateLimiter.Middleware())
	e.POST("/api/user/login", authHandler.Login, strictRateLimiter.Middleware())
	e.POST("/api/mobile/auth/login", authHandler.MobileLogin, strictRateLimiter.Middleware())

	e.GET("/api/auth/:provider", oauthHandler.Login, strictRateLimiter.Middleware())
	e.GET("/api/auth/:provider/callback", oauthHandler.Callback, strictRateLimiter.Middleware())

	// Operational endpoints; the access table restricts these to admins
	metrics.RegisterMetricsRoute(e)
	if profiling.IsProfilingEnabled() {
		profiling.RegisterPprofRoutes(e)
		profiling.RegisterMemoryRoute(e)
	}

	return &Server{
		echo: e,
		deps: deps,
	}
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func healthCheck(c echo.Context) error {
	return c.JSON(stdhttp.StatusOK, map[string]string{
		jsonKeyStatus: statusOK,
	})
}
