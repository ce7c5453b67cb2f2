package error

import "errors"

// Approval domain errors.
var (
	// ErrInvalidTransition is returned when a decision targets a report that is not pending.
	ErrInvalidTransition = errors.New("approval has already done")

	// ErrExpenseMismatch is returned when the decided expenses do not match the report.
	ErrExpenseMismatch = errors.New("expense list does not match the report")

	// ErrInvalidDecision is returned when the decision status is neither approved nor rejected.
	ErrInvalidDecision = errors.New("decision must be approved or rejected")

	// ErrNotAssignedApprover is returned when the caller is not the submitter's approver.
	ErrNotAssignedApprover = errors.New("you are not the assigned approver for this report")

	// ErrInvalidDeductionAmount is returned when a deduction amount is negative.
	ErrInvalidDeductionAmount = errors.New("deduction amount must not be negative")

	// ErrNotReimbursable is returned when a report is not approved.
	ErrNotReimbursable = errors.New("only approved reports can be reimbursed")
)

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidDecision        Code = "APR-010001"
	ErrCodeInvalidDeductionAmount Code = "APR-010002"

	// State errors (04XXXX)
	ErrCodeInvalidTransition Code = "APR-040001"
	ErrCodeNotReimbursable   Code = "APR-040002"
	ErrCodeExpenseMismatch   Code = "APR-040003"

	// Access errors (05XXXX)
	ErrCodeNotAssignedApprover Code = "APR-050001"

	// Internal errors (09XXXX)
	ErrCodeApprovalStorage Code = "APR-090001"
)
