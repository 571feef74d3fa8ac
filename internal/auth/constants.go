package auth

const (
	ContextKeyPrincipal = "principal"

	jsonKeyError = "error"

	headerAuthorization = "Authorization"

	bearerScheme    = "bearer"
	authHeaderParts = 2
)

const (
	msgInvalidOrExpiredToken = "invalid or expired token"
	msgUserNotAuthenticated  = "user not authenticated"
	msgInvalidPrincipalCtx   = "invalid principal in context"

	msgUnexpectedSigningMethod = "unexpected signing method: %v"
	msgTokenParseFailed        = "failed to parse token"
	msgInvalidTokenClaims      = "invalid token claims"
	msgInvalidSubjectClaim     = "invalid subject claim"
	msgInvalidRoleClaim        = "invalid role claim"
)
