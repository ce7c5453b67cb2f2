package error

import "errors"

// Tier domain errors.
var (
	// ErrTierNotFound is returned when a tier is not found.
	ErrTierNotFound = errors.New("tier not found")

	// ErrInvalidTier is returned when a tier definition is malformed.
	ErrInvalidTier = errors.New("invalid tier definition")

	// ErrNoTierAssigned is returned when a submitter has no tier.
	ErrNoTierAssigned = errors.New("no tier assigned to user")
)

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTier Code = "TIR-010001"

	// Lookup errors (02XXXX)
	ErrCodeTierNotFound   Code = "TIR-020001"
	ErrCodeNoTierAssigned Code = "TIR-020002"

	// Internal errors (09XXXX)
	ErrCodeTierStorage Code = "TIR-090001"
)
