package errors

import (
	"errors"
	"fmt"
)

// Domain errors - Sentinel errors for use with errors.Is()
var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrBadRequest          = errors.New("bad request")
	ErrConflict            = errors.New("resource already exists")
	ErrInternalServer      = errors.New("internal server error")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailExists         = errors.New("email already exists")
	ErrValidation          = errors.New("validation error")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidToken        = errors.New("invalid token")
	ErrUnsupportedProvider = errors.New("unsupported oauth provider")
	ErrUnknownProvider     = errors.New("unknown oauth provider")
	ErrIdentityResolution  = errors.New("identity resolution failed")
	ErrAuthorizationDenied = errors.New("authorization denied")
)

// Custom error type with context
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Constructors
func NotFound(msg string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: msg, Err: ErrNotFound}
}

func Unauthorized(msg string) *AppError {
	return &AppError{Code: "UNAUTHORIZED", Message: msg, Err: ErrUnauthorized}
}

func Forbidden(msg string) *AppError {
	return &AppError{Code: "FORBIDDEN", Message: msg, Err: ErrForbidden}
}

func BadRequest(msg string) *AppError {
	return &AppError{Code: "BAD_REQUEST", Message: msg, Err: ErrBadRequest}
}

func Conflict(msg string) *AppError {
	return &AppError{Code: "CONFLICT", Message: msg, Err: ErrConflict}
}

func InternalServer(msg string, err error) *AppError {
	return &AppError{Code: "INTERNAL_SERVER_ERROR", Message: msg, Err: err}
}

func InvalidCredentials() *AppError {
	return &AppError{Code: "INVALID_CREDENTIALS", Message: "invalid email or password", Err: ErrInvalidCredentials}
}

func InvalidToken(msg string) *AppError {
	return &AppError{Code: "INVALID_TOKEN", Message: msg, Err: ErrInvalidToken}
}

func UnsupportedProvider(name string) *AppError {
	return &AppError{Code: "UNSUPPORTED_PROVIDER", Message: fmt.Sprintf("unsupported oauth provider: %s", name), Err: ErrUnsupportedProvider}
}

func UnknownProvider(name string) *AppError {
	return &AppError{Code: "UNKNOWN_PROVIDER", Message: fmt.Sprintf("no client registration for provider: %s", name), Err: ErrUnknownProvider}
}

func IdentityResolution(msg string, err error) *AppError {
	wrapped := error(ErrIdentityResolution)
	if err != nil {
		wrapped = fmt.Errorf("%w: %w", ErrIdentityResolution, err)
	}
	return &AppError{Code: "IDENTITY_RESOLUTION_FAILED", Message: msg, Err: wrapped}
}

func AuthorizationDenied(msg string) *AppError {
	return &AppError{Code: "AUTHORIZATION_DENIED", Message: msg, Err: ErrAuthorizationDenied}
}
