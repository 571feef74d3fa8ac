package oauth

import (
	"fmt"
	"strconv"

	"fridgechef/internal/domain/user"
	apperrors "fridgechef/pkg/errors"
)

// ExternalIdentity is the provider-agnostic view of a third-party account,
// built per login attempt. It is never persisted as-is.
type ExternalIdentity struct {
	Provider       user.Provider
	ProviderUserID string
	Email          string
	DisplayName    string
	Raw            map[string]any
}

// Each provider returns a differently shaped user-info payload. One
// extractor per provider, dispatched through a single lookup.
type extractor func(raw map[string]any) (ExternalIdentity, error)

var extractors = map[user.Provider]extractor{
	user.ProviderGoogle: extractGoogle,
	user.ProviderKakao:  extractKakao,
	user.ProviderNaver:  extractNaver,
}

// Normalize maps a provider user-info payload into an ExternalIdentity.
// Unknown registration names fail with ErrUnsupportedProvider; a payload
// missing the provider user id fails with ErrIdentityResolution.
func Normalize(registration string, raw map[string]any) (ExternalIdentity, error) {
	provider, err := ParseProvider(registration)
	if err != nil {
		return ExternalIdentity{}, err
	}

	extract, ok := extractors[provider]
	if !ok {
		return ExternalIdentity{}, apperrors.UnsupportedProvider(registration)
	}

	identity, err := extract(raw)
	if err != nil {
		return ExternalIdentity{}, err
	}

	identity.Provider = provider
	identity.Raw = raw
	return identity, nil
}

// Google returns a flat OpenID Connect payload.
func extractGoogle(raw map[string]any) (ExternalIdentity, error) {
	id := stringAttr(raw, "sub")
	if id == "" {
		id = stringAttr(raw, "id")
	}
	if id == "" {
		return ExternalIdentity{}, errMissingProviderUserID(user.ProviderGoogle)
	}

	return ExternalIdentity{
		ProviderUserID: id,
		Email:          stringAttr(raw, "email"),
		DisplayName:    stringAttr(raw, "name"),
	}, nil
}

// Kakao nests the account under kakao_account and the nickname one level
// deeper under profile. The id is a JSON number.
func extractKakao(raw map[string]any) (ExternalIdentity, error) {
	id := stringAttr(raw, "id")
	if id == "" {
		return ExternalIdentity{}, errMissingProviderUserID(user.ProviderKakao)
	}

	identity := ExternalIdentity{ProviderUserID: id}

	account := mapAttr(raw, "kakao_account")
	if account != nil {
		identity.Email = stringAttr(account, "email")
		if profile := mapAttr(account, "profile"); profile != nil {
			identity.DisplayName = stringAttr(profile, "nickname")
		}
	}
	if identity.Email == "" {
		identity.Email = stringAttr(raw, "email")
	}

	return identity, nil
}

// Naver wraps everything in a response object.
func extractNaver(raw map[string]any) (ExternalIdentity, error) {
	response := mapAttr(raw, "response")
	if response == nil {
		return ExternalIdentity{}, errMissingProviderUserID(user.ProviderNaver)
	}

	id := stringAttr(response, "id")
	if id == "" {
		return ExternalIdentity{}, errMissingProviderUserID(user.ProviderNaver)
	}

	return ExternalIdentity{
		ProviderUserID: id,
		Email:          stringAttr(response, "email"),
		DisplayName:    stringAttr(response, "name"),
	}, nil
}

func errMissingProviderUserID(p user.Provider) error {
	return apperrors.IdentityResolution(fmt.Sprintf("%s payload is missing the provider user id", p), nil)
}

// stringAttr reads a string-convertible attribute. JSON numbers (kakao ids)
// are rendered without an exponent.
func stringAttr(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}

func mapAttr(m map[string]any, key string) map[string]any {
	v, ok := m[key].(map[string]any)
	if !ok {
		return nil
	}
	return v
}
