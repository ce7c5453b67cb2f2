package error

import "errors"

// Notification domain errors.
var (
	// ErrNotificationNotFound is returned when a notification is not found.
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrInvalidNotificationFilter is returned when a notification filter is unknown.
	ErrInvalidNotificationFilter = errors.New("invalid notification filter")
)

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidNotificationFilter Code = "NTF-010001"

	// Lookup errors (02XXXX)
	ErrCodeNotificationNotFound Code = "NTF-020001"

	// Internal errors (09XXXX)
	ErrCodeNotificationStorage Code = "NTF-090001"
)
