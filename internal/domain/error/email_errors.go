package error

import "errors"

// Email domain errors.
var (
	// ErrEmailQueueFailed is returned when an email fails to be queued.
	ErrEmailQueueFailed = errors.New("failed to queue email")

	// ErrEmailSendFailed is returned when an email fails to be sent.
	ErrEmailSendFailed = errors.New("failed to send email")

	// ErrInvalidTemplate is returned when an invalid email template is specified.
	ErrInvalidTemplate = errors.New("invalid email template")

	// ErrTemplateRenderFailed is returned when email template rendering fails.
	ErrTemplateRenderFailed = errors.New("failed to render email template")

	// ErrPermanentEmailFailure is returned when the provider rejects an email for good.
	ErrPermanentEmailFailure = errors.New("permanent email failure")

	// ErrTemporaryEmailFailure is returned when an email may succeed on retry.
	ErrTemporaryEmailFailure = errors.New("temporary email failure")

	// ErrContactNotFound is returned when a notification recipient has no email address.
	ErrContactNotFound = errors.New("recipient contact not found")

	// ErrEmailJobNotFound is returned when a queued email job does not exist.
	ErrEmailJobNotFound = errors.New("email job not found")
)

const (
	// Template errors (01XXXX)
	ErrCodeInvalidTemplate Code = "EMAIL-010001"

	// Lookup errors (02XXXX)
	ErrCodeContactNotFound  Code = "EMAIL-020001"
	ErrCodeEmailJobNotFound Code = "EMAIL-020002"

	// Delivery errors (09XXXX)
	ErrCodeEmailQueueFailed      Code = "EMAIL-090001"
	ErrCodeEmailSendFailed       Code = "EMAIL-090002"
	ErrCodePermanentEmailFailure Code = "EMAIL-090003"
	ErrCodeTemporaryEmailFailure Code = "EMAIL-090004"
	ErrCodeTemplateRenderFailed  Code = "EMAIL-090005"
)
