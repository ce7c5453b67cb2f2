package error

import "errors"

// Authentication domain errors.
var (
	// ErrUserNotFound is returned when a user is not found in the system.
	ErrUserNotFound = errors.New("user not found")

	// ErrMissingToken is returned when a request carries no bearer token.
	ErrMissingToken = errors.New("authorization header required")

	// ErrInvalidToken is returned when a token is invalid or malformed.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token has expired.
	ErrExpiredToken = errors.New("token has expired")

	// ErrInsufficientRole is returned when the caller's role does not permit the operation.
	ErrInsufficientRole = errors.New("insufficient role for this operation")

	// ErrRateLimited is returned when a caller sends too many requests.
	ErrRateLimited = errors.New("too many requests")
)

const (
	// Token errors (01XXXX)
	ErrCodeMissingToken Code = "AUTH-010001"
	ErrCodeInvalidToken Code = "AUTH-010002"
	ErrCodeExpiredToken Code = "AUTH-010003"

	// Lookup errors (02XXXX)
	ErrCodeUserNotFound Code = "AUTH-020001"

	// Access errors (05XXXX)
	ErrCodeInsufficientRole Code = "AUTH-050001"

	// Throttling errors (06XXXX)
	ErrCodeRateLimited Code = "AUTH-060001"
)

// NewInsufficientRoleError creates the error returned when the caller's role does not permit an operation.
func NewInsufficientRoleError(message string) *Error {
	return New(ErrCodeInsufficientRole, message, ErrInsufficientRole)
}
