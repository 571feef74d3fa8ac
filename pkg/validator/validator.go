package validator

import (
	"fmt"
	"regexp"

	apperrors "fridgechef/pkg/errors"
)

const (
	minEmailLength    = 3
	maxEmailLength    = 255
	minPasswordLength = 8
	maxPasswordLength = 128
	maxUsernameLength = 100

	errEmailEmptyFmt        = "email cannot be empty"
	errEmailLengthFmt       = "email must be between %d and %d characters"
	errEmailInvalidFmt      = "invalid email format"
	errPasswordMinLengthFmt = "password must be at least %d characters"
	errPasswordMaxLengthFmt = "password must not exceed %d characters"
	errUsernameMaxLengthFmt = "username must not exceed %d characters"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func ValidateEmail(email string) error {
	if email == "" {
		return apperrors.BadRequest(errEmailEmptyFmt)
	}
	if len(email) < minEmailLength || len(email) > maxEmailLength {
		return apperrors.BadRequest(fmt.Sprintf(errEmailLengthFmt, minEmailLength, maxEmailLength))
	}
	if !emailRegex.MatchString(email) {
		return apperrors.BadRequest(errEmailInvalidFmt)
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return apperrors.BadRequest(fmt.Sprintf(errPasswordMinLengthFmt, minPasswordLength))
	}
	if len(password) > maxPasswordLength {
		return apperrors.BadRequest(fmt.Sprintf(errPasswordMaxLengthFmt, maxPasswordLength))
	}
	return nil
}

func ValidateUsername(username string) error {
	if len(username) > maxUsernameLength {
		return apperrors.BadRequest(fmt.Sprintf(errUsernameMaxLengthFmt, maxUsernameLength))
	}
	return nil
}
