package auth

import (
	"fmt"
	"time"

	"fridgechef/internal/domain/user"
	apperrors "fridgechef/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the token claim set: subject carries the user id, Role the bare
// role name. Authorities are derived at verification time, never stored.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Principal is the verified, request-scoped caller identity derived from a
// presented token.
type Principal struct {
	UserID      uuid.UUID
	Role        user.Role
	authorities map[string]struct{}
}

// NewPrincipal builds a principal for the given user and role with the
// role's canonical authority attached.
func NewPrincipal(userID uuid.UUID, role user.Role) *Principal {
	return &Principal{
		UserID: userID,
		Role:   role,
		authorities: map[string]struct{}{
			role.Authority(): {},
		},
	}
}

// HasAuthority reports whether the principal carries the given canonical
// authority string (e.g. ROLE_USER).
func (p *Principal) HasAuthority(authority string) bool {
	_, ok := p.authorities[authority]
	return ok
}

// Authorities returns the principal's authority set.
func (p *Principal) Authorities() []string {
	out := make([]string, 0, len(p.authorities))
	for a := range p.authorities {
		out = append(out, a)
	}
	return out
}

// TokenService is the sole producer and verifier of application tokens.
// Issuance and verification are pure computations over the injected key
// material; neither touches storage.
type TokenService struct {
	keys *KeyMaterial
	ttl  time.Duration
}

func NewTokenService(keys *KeyMaterial, ttl time.Duration) *TokenService {
	return &TokenService{
		keys: keys,
		ttl:  ttl,
	}
}

// Issue signs a token for the given user and role. Two calls with the same
// inputs produce different tokens because the timestamps differ.
func (s *TokenService) Issue(userID uuid.UUID, role user.Role) (string, error) {
	if userID == uuid.Nil {
		return "", fmt.Errorf("user id cannot be empty")
	}
	if !role.Valid() {
		return "", fmt.Errorf("unknown role: %q", role)
	}

	now := time.Now()
	claims := Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(s.keys.signer())
}

// Verify validates signature and expiry and converts the claims into a
// Principal. Any malformed, tampered or expired token fails with
// apperrors.ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (*Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf(msgUnexpectedSigningMethod, token.Header["alg"])
		}
		return s.keys.Public(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))

	if err != nil {
		return nil, apperrors.InvalidToken(msgTokenParseFailed)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.InvalidToken(msgInvalidTokenClaims)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apperrors.InvalidToken(msgInvalidSubjectClaim)
	}

	role, err := user.ParseRole(claims.Role)
	if err != nil {
		return nil, apperrors.InvalidToken(msgInvalidRoleClaim)
	}

	return NewPrincipal(userID, role), nil
}
