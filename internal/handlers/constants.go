package handlers

const (
	maxBodyBytes = 1 << 20

	ErrInvalidJSON         = "Invalid request body"
	ErrInvalidID           = "Invalid id"
	ErrBadRequest          = "Bad request"
	ErrNotFound            = "Not found"
	ErrUnknownTeacher      = "Unknown teacher"
	ErrUnauthorized        = "Unauthorized"
	ErrForbidden           = "Forbidden"
	ErrTooManyRequests     = "Too many requests"
	ErrInternalServerError = "Internal server error"
	ErrServiceStarting     = "Service is starting"

	MsgBadCredentials = "Bad credentials"
	MsgEmailTaken     = "Error: Email is already taken!"
	MsgRegistered     = "User registered successfully!"
)
