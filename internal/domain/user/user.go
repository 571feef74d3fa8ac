package user

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role is a user's role in the system. The bare role name is what gets
// embedded in tokens; Authority() derives the canonical authority string
// used everywhere authorization decisions are made.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

const authorityPrefix = "ROLE_"

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// Authority returns the canonical authority form of the role (ROLE_USER,
// ROLE_ADMIN). This is the single naming convention shared by token
// verification and the authorization matrix.
func (r Role) Authority() string {
	return authorityPrefix + string(r)
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role: %q", s)
	}
	return r, nil
}

// Provider identifies where an account's identity comes from.
type Provider string

const (
	ProviderLocal  Provider = "local"
	ProviderGoogle Provider = "google"
	ProviderKakao  Provider = "kakao"
	ProviderNaver  Provider = "naver"
)

func (p Provider) Valid() bool {
	switch p {
	case ProviderLocal, ProviderGoogle, ProviderKakao, ProviderNaver:
		return true
	}
	return false
}

type User struct {
	ID             uuid.UUID
	Provider       Provider
	ProviderUserID string
	Email          string
	DisplayName    string
	PasswordHash   string
	Role           Role
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type CreateUserInput struct {
	Provider       Provider
	ProviderUserID string
	Email          string
	DisplayName    string
	PasswordHash   string
	Role           Role
}

// UpdateProfileInput carries the mutable profile fields. Role and identity
// keys are never updated through this path.
type UpdateProfileInput struct {
	Email       *string
	DisplayName *string
}
