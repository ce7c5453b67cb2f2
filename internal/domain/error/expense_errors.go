package error

import "errors"

// Expense domain errors.
var (
	// ErrExpenseNotFound is returned when an expense is not found.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrExpenseNotOwned is returned when an expense belongs to another user.
	ErrExpenseNotOwned = errors.New("expense does not belong to the submitter")

	// ErrInvalidAmount is returned when an amount is negative.
	ErrInvalidAmount = errors.New("amount must not be negative")

	// ErrMissingCategory is returned when an expense has no category.
	ErrMissingCategory = errors.New("category is required")

	// ErrMissingTitle is returned when an expense has no title.
	ErrMissingTitle = errors.New("title is required")

	// ErrInvalidExpenseFilter is returned when an expense filter is unknown.
	ErrInvalidExpenseFilter = errors.New("invalid expense filter")
)

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAmount        Code = "EXP-010001"
	ErrCodeMissingCategory      Code = "EXP-010002"
	ErrCodeMissingTitle         Code = "EXP-010003"
	ErrCodeInvalidExpenseFilter Code = "EXP-010004"

	// Lookup errors (02XXXX)
	ErrCodeExpenseNotFound Code = "EXP-020001"

	// Access errors (05XXXX)
	ErrCodeExpenseNotOwned Code = "EXP-050001"

	// Internal errors (09XXXX)
	ErrCodeExpenseStorage Code = "EXP-090001"
)
