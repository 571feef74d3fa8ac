package oauth

import (
	"context"
	"errors"

	"fridgechef/internal/auth"
	"fridgechef/internal/domain/user"
	"fridgechef/internal/repository"
	apperrors "fridgechef/pkg/errors"
)

const (
	msgUserInfoFetchFailed = "failed to fetch user info from provider"
	msgCodeExchangeFailed  = "failed to exchange authorization code"
	msgUpsertConflict      = "conflicting login for the same identity"
)

// Service runs the login flows: resolve provider config, fetch and normalize
// the external identity, upsert the local user, issue an application token.
type Service struct {
	registry *Registry
	fetcher  UserInfoFetcher
	users    repository.UserRepository
	tokens   *auth.TokenService
}

func NewService(registry *Registry, fetcher UserInfoFetcher, users repository.UserRepository, tokens *auth.TokenService) *Service {
	return &Service{
		registry: registry,
		fetcher:  fetcher,
		users:    users,
		tokens:   tokens,
	}
}

// LoginResult is the terminal state of a successful login flow.
type LoginResult struct {
	User  *user.User
	Token string
}

// MobileLogin runs the mobile flow: the client already holds a provider
// access token and posts it directly. Any failure fails the whole request;
// user creation happens last so no partial state is left behind.
func (s *Service) MobileLogin(ctx context.Context, registration, accessToken string) (*LoginResult, error) {
	cfg, err := s.registry.Lookup(registration)
	if err != nil {
		return nil, err
	}

	raw, err := s.fetcher.Fetch(ctx, cfg, accessToken)
	if err != nil {
		return nil, apperrors.IdentityResolution(msgUserInfoFetchFailed, err)
	}

	return s.completeLogin(ctx, registration, raw)
}

// AuthCodeURL starts the web flow for a provider, binding the redirect to
// the given state nonce.
func (s *Service) AuthCodeURL(registration, state string) (string, error) {
	cfg, err := s.registry.Lookup(registration)
	if err != nil {
		return "", err
	}
	return cfg.OAuth2().AuthCodeURL(state), nil
}

// CompleteWebLogin finishes the web flow after the provider redirected back
// with an authorization code.
func (s *Service) CompleteWebLogin(ctx context.Context, registration, code string) (*LoginResult, error) {
	cfg, err := s.registry.Lookup(registration)
	if err != nil {
		return nil, err
	}

	token, err := cfg.OAuth2().Exchange(ctx, code)
	if err != nil {
		return nil, apperrors.IdentityResolution(msgCodeExchangeFailed, err)
	}

	raw, err := s.fetcher.Fetch(ctx, cfg, token.AccessToken)
	if err != nil {
		return nil, apperrors.IdentityResolution(msgUserInfoFetchFailed, err)
	}

	return s.completeLogin(ctx, registration, raw)
}

func (s *Service) completeLogin(ctx context.Context, registration string, raw map[string]any) (*LoginResult, error) {
	identity, err := Normalize(registration, raw)
	if err != nil {
		return nil, err
	}

	u, err := s.SaveOrUpdate(ctx, identity)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: u, Token: token}, nil
}

// SaveOrUpdate finds the user for an external identity, creating it with the
// default role on first login and refreshing mutable profile fields on later
// ones. Concurrent first logins race on the (provider, provider_user_id)
// unique constraint; the losing insert is retried once as a lookup.
func (s *Service) SaveOrUpdate(ctx context.Context, identity ExternalIdentity) (*user.User, error) {
	existing, err := s.users.GetByProviderID(ctx, identity.Provider, identity.ProviderUserID)
	if err == nil {
		return s.refreshProfile(ctx, existing, identity)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	created, err := s.users.Create(ctx, user.CreateUserInput{
		Provider:       identity.Provider,
		ProviderUserID: identity.ProviderUserID,
		Email:          identity.Email,
		DisplayName:    identity.DisplayName,
		Role:           user.RoleUser,
	})
	if err == nil {
		return created, nil
	}
	if !errors.Is(err, apperrors.ErrConflict) {
		return nil, err
	}

	// Lost the insert race: the row exists now, fall back to the update path.
	existing, err = s.users.GetByProviderID(ctx, identity.Provider, identity.ProviderUserID)
	if err != nil {
		return nil, apperrors.Conflict(msgUpsertConflict)
	}

	return s.refreshProfile(ctx, existing, identity)
}

func (s *Service) refreshProfile(ctx context.Context, existing *user.User, identity ExternalIdentity) (*user.User, error) {
	input := user.UpdateProfileInput{}
	if identity.Email != "" && identity.Email != existing.Email {
		input.Email = &identity.Email
	}
	if identity.DisplayName != "" && identity.DisplayName != existing.DisplayName {
		input.DisplayName = &identity.DisplayName
	}

	if input.Email == nil && input.DisplayName == nil {
		return existing, nil
	}

	if err := s.users.UpdateProfile(ctx, existing.ID, input); err != nil {
		return nil, err
	}

	if input.Email != nil {
		existing.Email = *input.Email
	}
	if input.DisplayName != nil {
		existing.DisplayName = *input.DisplayName
	}

	return existing, nil
}
