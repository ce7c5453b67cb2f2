// Package error defines domain-specific errors for the reimbursement back office.
package error

import (
	"errors"
	"strings"
)

// Kind classifies a domain error for transport mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindPolicyViolation
	KindStateConflict
	KindForbidden
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindPolicyViolation:
		return "policy_violation"
	case KindStateConflict:
		return "state_conflict"
	case KindForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// Code identifies a domain error.
// Format: AREA-KKYYYY where KK is the kind category and YYYY is the specific error.
type Code string

// Kind derives the error kind from the category digits of the code.
func (c Code) Kind() Kind {
	s := string(c)
	idx := strings.LastIndex(s, "-")
	if idx < 0 || len(s) < idx+3 {
		return KindInternal
	}
	switch s[idx+1 : idx+3] {
	case "01":
		return KindValidation
	case "02":
		return KindNotFound
	case "03":
		return KindPolicyViolation
	case "04":
		return KindStateConflict
	case "05":
		return KindForbidden
	default:
		return KindInternal
	}
}

// Error represents a domain error with code and message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Kind returns the kind derived from the error code.
func (e *Error) Kind() Kind {
	return e.Code.Kind()
}

// New creates a new Error with the given code and message.
func New(code Code, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// KindOf returns the kind of the first domain error found in err's chain.
// Errors that carry no code are reported as internal.
func KindOf(err error) Kind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind()
	}
	return KindInternal
}

// CodeOf returns the code of the first domain error found in err's chain.
func CodeOf(err error) (Code, bool) {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Code, true
	}
	return "", false
}
