package app

import (
	"fmt"

	"fridgechef/internal/audit"
	"fridgechef/internal/auth"
	"fridgechef/internal/authz"
	"fridgechef/internal/config"
	httpserver "fridgechef/internal/http"
	"fridgechef/internal/oauth"
	"fridgechef/internal/repository/postgres"

	"fridgechef/internal/domain/user"
)

// Default scope sets requested from each provider. Kakao and Naver return
// profile data without explicit scopes when the app is configured for it;
// Google requires them.
var (
	googleScopes = []string{"openid", "email", "profile"}
	kakaoScopes  = []string{"profile_nickname", "account_email"}
	naverScopes  []string
)

// InitializeService wires up all dependencies and returns a configured Service.
// Signing key generation is fatal on failure: the process must never come up
// issuing unverifiable tokens.
func InitializeService() (*Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	keys, err := auth.NewKeyMaterial(cfg.JWT.KeyBits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate signing key: %w", err)
	}
	tokenService := auth.NewTokenService(keys, cfg.JWT.TTL)

	db, err := postgres.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	userRepo := postgres.NewUserRepository(db)
	recorder := audit.NewPostgresRecorder(db.Pool)

	registry := oauth.NewRegistry(providerClients(cfg)...)
	fetcher := oauth.NewHTTPUserInfoFetcher(cfg.OAuth.UserInfoTimeout)
	loginService := oauth.NewService(registry, fetcher, userRepo, tokenService)
	stateStore := oauth.NewStateStore(cfg.OAuth.LoginStateTTL)

	server := httpserver.NewServer(&httpserver.ServerDependencies{
		Config:         cfg,
		UserRepo:       userRepo,
		TokenService:   tokenService,
		AuthMiddleware: auth.NewMiddleware(tokenService),
		Matrix:         authz.DefaultMatrix(),
		OAuthService:   loginService,
		StateStore:     stateStore,
		AuditRecorder:  recorder,
	})

	return &Service{
		config:     cfg,
		db:         db,
		stateStore: stateStore,
		server:     server,
	}, nil
}

// providerClients builds client configs for every provider with credentials
// present. Providers without credentials are simply absent from the registry.
func providerClients(cfg *config.Config) []oauth.ClientConfig {
	var clients []oauth.ClientConfig

	if cfg.OAuth.Google.Configured() {
		clients = append(clients, oauth.ClientConfig{
			Provider:     user.ProviderGoogle,
			ClientID:     cfg.OAuth.Google.ClientID,
			ClientSecret: cfg.OAuth.Google.ClientSecret,
			RedirectURL:  cfg.OAuth.Google.RedirectURL,
			Scopes:       googleScopes,
			AuthURL:      oauth.GoogleAuthURL,
			TokenURL:     oauth.GoogleTokenURL,
			UserInfoURL:  oauth.GoogleUserInfoURL,
		})
	}

	if cfg.OAuth.Kakao.Configured() {
		clients = append(clients, oauth.ClientConfig{
			Provider:     user.ProviderKakao,
			ClientID:     cfg.OAuth.Kakao.ClientID,
			ClientSecret: cfg.OAuth.Kakao.ClientSecret,
			RedirectURL:  cfg.OAuth.Kakao.RedirectURL,
			Scopes:       kakaoScopes,
			AuthURL:      oauth.KakaoAuthURL,
			TokenURL:     oauth.KakaoTokenURL,
			UserInfoURL:  oauth.KakaoUserInfoURL,
		})
	}

	if cfg.OAuth.Naver.Configured() {
		clients = append(clients, oauth.ClientConfig{
			Provider:     user.ProviderNaver,
			ClientID:     cfg.OAuth.Naver.ClientID,
			ClientSecret: cfg.OAuth.Naver.ClientSecret,
			RedirectURL:  cfg.OAuth.Naver.RedirectURL,
			Scopes:       naverScopes,
			AuthURL:      oauth.NaverAuthURL,
			TokenURL:     oauth.NaverTokenURL,
			UserInfoURL:  oauth.NaverUserInfoURL,
		})
	}

	return clients
}
