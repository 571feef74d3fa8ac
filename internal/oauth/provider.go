package oauth

import (
	"fridgechef/internal/domain/user"
	apperrors "fridgechef/pkg/errors"

	"golang.org/x/oauth2"
)

// Provider endpoint defaults. These can be overridden per client config for
// testing against a local stand-in.
const (
	GoogleAuthURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	GoogleTokenURL    = "https://oauth2.googleapis.com/token"
	GoogleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

	KakaoAuthURL     = "https://kauth.kakao.com/oauth/authorize"
	KakaoTokenURL    = "https://kauth.kakao.com/oauth/token"
	KakaoUserInfoURL = "https://kapi.kakao.com/v2/user/me"

	NaverAuthURL     = "https://nid.naver.com/oauth2.0/authorize"
	NaverTokenURL    = "https://nid.naver.com/oauth2.0/token"
	NaverUserInfoURL = "https://openapi.naver.com/v1/nid/me"
)

// ClientConfig is one provider's OAuth2 client registration.
type ClientConfig struct {
	Provider     user.Provider
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
	AuthURL      string
	TokenURL     string
	UserInfoURL  string
}

// OAuth2 builds the x/oauth2 config used for the web authorization-code flow.
func (c ClientConfig) OAuth2() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURL,
		Scopes:       c.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  c.AuthURL,
			TokenURL: c.TokenURL,
		},
	}
}

// Registry maps registration names to configured provider clients. Only
// providers with credentials configured at startup are present.
type Registry struct {
	clients map[user.Provider]ClientConfig
}

func NewRegistry(configs ...ClientConfig) *Registry {
	clients := make(map[user.Provider]ClientConfig, len(configs))
	for _, cfg := range configs {
		clients[cfg.Provider] = cfg
	}
	return &Registry{clients: clients}
}

// ParseProvider maps a registration name from a request onto the closed
// provider set.
func ParseProvider(registration string) (user.Provider, error) {
	p := user.Provider(registration)
	switch p {
	case user.ProviderGoogle, user.ProviderKakao, user.ProviderNaver:
		return p, nil
	}
	return "", apperrors.UnsupportedProvider(registration)
}

// Lookup resolves a registration name to its client config. A known provider
// without a configured client fails with ErrUnknownProvider.
func (r *Registry) Lookup(registration string) (ClientConfig, error) {
	provider, err := ParseProvider(registration)
	if err != nil {
		return ClientConfig{}, err
	}

	cfg, ok := r.clients[provider]
	if !ok {
		return ClientConfig{}, apperrors.UnknownProvider(registration)
	}

	return cfg, nil
}
