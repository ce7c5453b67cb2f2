package error

import "errors"

// Event domain errors.
var (
	// ErrEventNotFound is returned when an event is not found.
	ErrEventNotFound = errors.New("event not found")

	// ErrInvalidEventWindow is returned when an event ends before it starts.
	ErrInvalidEventWindow = errors.New("event end must not be before its start")

	// ErrInvalidEventFilter is returned when an event filter is unknown.
	ErrInvalidEventFilter = errors.New("invalid event filter")
)

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidEventWindow Code = "EVT-010001"
	ErrCodeInvalidEventFilter Code = "EVT-010002"
	ErrCodeMissingEventTitle  Code = "EVT-010003"

	// Lookup errors (02XXXX)
	ErrCodeEventNotFound Code = "EVT-020001"

	// Internal errors (09XXXX)
	ErrCodeEventStorage Code = "EVT-090001"
)
