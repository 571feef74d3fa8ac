package oauth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fridgechef/internal/auth"
	"fridgechef/internal/domain/user"
	apperrors "fridgechef/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo is an in-memory UserRepository with the same conflict
// semantics as the postgres implementation.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*user.User

	failCreateOnce bool
	createCalls    int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*user.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, input user.CreateUserInput) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++

	if r.failCreateOnce {
		r.failCreateOnce = false
		// Simulate losing the unique-constraint race: the row appears as if a
		// concurrent request inserted it first.
		r.insertLocked(input)
		return nil, apperrors.Conflict("user already exists")
	}

	for _, u := range r.users {
		if u.Provider == input.Provider && u.ProviderUserID == input.ProviderUserID {
			return nil, apperrors.Conflict("user already exists")
		}
	}

	return r.insertLocked(input), nil
}

func (r *fakeUserRepo) insertLocked(input user.CreateUserInput) *user.User {
	now := time.Now()
	u := &user.User{
		ID:             uuid.New(),
		Provider:       input.Provider,
		ProviderUserID: input.ProviderUserID,
		Email:          input.Email,
		DisplayName:    input.DisplayName,
		PasswordHash:   input.PasswordHash,
		Role:           input.Role,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	r.users[u.ID] = u
	return u
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, apperrors.NotFound("user not found")
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.NotFound("user not found")
}

func (r *fakeUserRepo) GetByProviderID(_ context.Context, provider user.Provider, providerUserID string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Provider == provider && u.ProviderUserID == providerUserID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.NotFound("user not found")
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, id uuid.UUID, input user.UpdateProfileInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return apperrors.NotFound("user not found")
	}
	if input.Email != nil {
		u.Email = *input.Email
	}
	if input.DisplayName != nil {
		u.DisplayName = *input.DisplayName
	}
	u.UpdatedAt = time.Now()
	return nil
}

// fakeFetcher returns a canned payload or error regardless of token.
type fakeFetcher struct {
	payload map[string]any
	err     error
}

func (f *fakeFetcher) Fetch(context.Context, ClientConfig, string) (map[string]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

var (
	testSvcKeys     *auth.KeyMaterial
	testSvcKeysOnce sync.Once
)

func newLoginService(t *testing.T, repo *fakeUserRepo, fetcher UserInfoFetcher) (*Service, *auth.TokenService) {
	t.Helper()
	testSvcKeysOnce.Do(func() {
		keys, err := auth.NewKeyMaterial(auth.MinKeyBits)
		if err != nil {
			t.Fatalf("failed to generate key material: %v", err)
		}
		testSvcKeys = keys
	})

	registry := NewRegistry(
		ClientConfig{Provider: user.ProviderGoogle, ClientID: "cid", UserInfoURL: GoogleUserInfoURL},
		ClientConfig{Provider: user.ProviderKakao, ClientID: "cid", UserInfoURL: KakaoUserInfoURL},
	)
	tokens := auth.NewTokenService(testSvcKeys, time.Hour)
	return NewService(registry, fetcher, repo, tokens), tokens
}

func TestMobileLogin_FirstLoginCreatesUser(t *testing.T) {
	repo := newFakeUserRepo()
	fetcher := &fakeFetcher{payload: map[string]any{
		"sub":   "g-1",
		"email": "cook@example.com",
		"name":  "Cook Kim",
	}}
	svc, tokens := newLoginService(t, repo, fetcher)

	result, err := svc.MobileLogin(context.Background(), "google", "provider-token")
	require.NoError(t, err)
	require.NotNil(t, result.User)
	assert.Equal(t, user.ProviderGoogle, result.User.Provider)
	assert.Equal(t, "g-1", result.User.ProviderUserID)
	assert.Equal(t, user.RoleUser, result.User.Role)
	assert.Equal(t, "cook@example.com", result.User.Email)

	// The issued token verifies back to a principal with the derived authority.
	principal, err := tokens.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, principal.UserID)
	assert.True(t, principal.HasAuthority("ROLE_USER"))
	assert.False(t, principal.HasAuthority("ROLE_ADMIN"))
}

func TestMobileLogin_RepeatLoginIsIdempotent(t *testing.T) {
	repo := newFakeUserRepo()
	fetcher := &fakeFetcher{payload: map[string]any{"sub": "g-1", "name": "Cook"}}
	svc, _ := newLoginService(t, repo, fetcher)

	first, err := svc.MobileLogin(context.Background(), "google", "tok")
	require.NoError(t, err)

	second, err := svc.MobileLogin(context.Background(), "google", "tok")
	require.NoError(t, err)

	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Equal(t, 1, repo.createCalls)
}

func TestMobileLogin_RefreshesChangedProfile(t *testing.T) {
	repo := newFakeUserRepo()
	fetcher := &fakeFetcher{payload: map[string]any{
		"id": float64(77),
		"kakao_account": map[string]any{
			"email":   "old@kakao.example",
			"profile": map[string]any{"nickname": "oldnick"},
		},
	}}
	svc, _ := newLoginService(t, repo, fetcher)

	first, err := svc.MobileLogin(context.Background(), "kakao", "tok")
	require.NoError(t, err)

	fetcher.payload = map[string]any{
		"id": float64(77),
		"kakao_account": map[string]any{
			"email":   "new@kakao.example",
			"profile": map[string]any{"nickname": "newnick"},
		},
	}

	second, err := svc.MobileLogin(context.Background(), "kakao", "tok")
	require.NoError(t, err)

	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Equal(t, "new@kakao.example", second.User.Email)
	assert.Equal(t, "newnick", second.User.DisplayName)
	assert.Equal(t, user.RoleUser, second.User.Role)
}

func TestMobileLogin_PreservesRoleAcrossLogins(t *testing.T) {
	repo := newFakeUserRepo()
	fetcher := &fakeFetcher{payload: map[string]any{"sub": "g-admin"}}
	svc, _ := newLoginService(t, repo, fetcher)

	first, err := svc.MobileLogin(context.Background(), "google", "tok")
	require.NoError(t, err)

	// Promote out of band, then log in again: the role must survive.
	repo.mu.Lock()
	repo.users[first.User.ID].Role = user.RoleAdmin
	repo.mu.Unlock()

	second, err := svc.MobileLogin(context.Background(), "google", "tok")
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, second.User.Role)
}

func TestMobileLogin_ProviderErrors(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newLoginService(t, repo, &fakeFetcher{payload: map[string]any{"sub": "x"}})

	t.Run("unsupported registration", func(t *testing.T) {
		_, err := svc.MobileLogin(context.Background(), "github", "tok")
		assert.True(t, errors.Is(err, apperrors.ErrUnsupportedProvider))
	})

	t.Run("known but unconfigured provider", func(t *testing.T) {
		// naver is a valid registration name but absent from the registry.
		_, err := svc.MobileLogin(context.Background(), "naver", "tok")
		assert.True(t, errors.Is(err, apperrors.ErrUnknownProvider))
	})
}

func TestMobileLogin_FetchFailure(t *testing.T) {
	repo := newFakeUserRepo()
	fetcher := &fakeFetcher{err: errors.New("provider returned status 401")}
	svc, _ := newLoginService(t, repo, fetcher)

	_, err := svc.MobileLogin(context.Background(), "google", "bad-token")
	assert.True(t, errors.Is(err, apperrors.ErrIdentityResolution))
	assert.Equal(t, 0, len(repo.users))
}

func TestSaveOrUpdate_ConflictRetriesAsLookup(t *testing.T) {
	repo := newFakeUserRepo()
	repo.failCreateOnce = true
	fetcher := &fakeFetcher{payload: map[string]any{"sub": "g-racy", "name": "Racer"}}
	svc, _ := newLoginService(t, repo, fetcher)

	result, err := svc.MobileLogin(context.Background(), "google", "tok")
	require.NoError(t, err)
	assert.Equal(t, "g-racy", result.User.ProviderUserID)
	assert.Equal(t, 1, len(repo.users))
}
