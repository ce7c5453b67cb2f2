package error

import "errors"

// Report domain errors.
var (
	// ErrEmptyExpenseList is returned when a report is submitted without expenses.
	ErrEmptyExpenseList = errors.New("expense list must not be empty")

	// ErrReportNotFound is returned when a report is not found.
	ErrReportNotFound = errors.New("report not found")

	// ErrAlreadyMapped is returned when an expense already belongs to another report.
	ErrAlreadyMapped = errors.New("expense is already mapped to a report")

	// ErrCategoryNotAllowed is returned when an expense category is absent from the tier.
	ErrCategoryNotAllowed = errors.New("category is not allowed for your tier")

	// ErrCategoryDisabled is returned when an expense category is disabled on the tier.
	ErrCategoryDisabled = errors.New("category is disabled for your tier")

	// ErrCategoryLimitExceeded is returned when a category total exceeds its limit.
	ErrCategoryLimitExceeded = errors.New("category limit exceeded")

	// ErrTierLimitExceeded is returned when the tier monthly total would be exceeded.
	ErrTierLimitExceeded = errors.New("monthly tier limit exceeded")

	// ErrExpenseAlreadyReported is returned when an expense is inside an approved report.
	ErrExpenseAlreadyReported = errors.New("expense is already part of an approved report")

	// ErrReportImmutable is returned when a report can no longer be edited.
	ErrReportImmutable = errors.New("report can no longer be modified")

	// ErrConcurrentUpdate is returned when a report changed since it was read.
	ErrConcurrentUpdate = errors.New("report was modified concurrently")

	// ErrReportAccessDenied is returned when the caller may not view a report.
	ErrReportAccessDenied = errors.New("report access denied")

	// ErrInvalidReportFilter is returned when a report filter is unknown.
	ErrInvalidReportFilter = errors.New("invalid report filter")

	// ErrInvalidExportMonth is returned when an export month cannot be parsed.
	ErrInvalidExportMonth = errors.New("month must use the YYYY-MM format")
)

const (
	// Validation errors (01XXXX)
	ErrCodeEmptyExpenseList    Code = "RPT-010001"
	ErrCodeInvalidReportFilter Code = "RPT-010002"
	ErrCodeInvalidExportMonth  Code = "RPT-010003"
	ErrCodeInvalidReportInput  Code = "RPT-010004"

	// Lookup errors (02XXXX)
	ErrCodeReportNotFound Code = "RPT-020001"

	// Policy errors (03XXXX)
	ErrCodeCategoryNotAllowed    Code = "RPT-030001"
	ErrCodeCategoryDisabled      Code = "RPT-030002"
	ErrCodeCategoryLimitExceeded Code = "RPT-030003"
	ErrCodeTierLimitExceeded     Code = "RPT-030004"

	// State errors (04XXXX)
	ErrCodeReportImmutable        Code = "RPT-040001"
	ErrCodeConcurrentUpdate       Code = "RPT-040002"
	ErrCodeAlreadyMapped          Code = "RPT-040003"
	ErrCodeExpenseAlreadyReported Code = "RPT-040004"

	// Access errors (05XXXX)
	ErrCodeReportAccessDenied Code = "RPT-050001"

	// Internal errors (09XXXX)
	ErrCodeReportStorage  Code = "RPT-090001"
	ErrCodeReportSequence Code = "RPT-090002"
	ErrCodeReportExport   Code = "RPT-090003"
)
