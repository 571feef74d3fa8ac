package handler

const (
	jsonKeyError   = "error"
	jsonKeyMessage = "message"

	paramProvider = "provider"
	queryState    = "state"
	queryCode     = "code"

	msgContentTypeJSONRequired = "Content-Type must be application/json"
	msgInvalidRequestBody      = "invalid request body"
	msgRegistrationRequired    = "registration is required"
	msgTokenRequired           = "token is required"
	msgInvalidLoginState       = "invalid or expired login state"
	msgMissingAuthCode         = "missing authorization code"
)
