package error

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode_Kind(t *testing.T) {
	tests := []struct {
		code Code
		want Kind
	}{
		{ErrCodeEmptyExpenseList, KindValidation},
		{ErrCodeReportNotFound, KindNotFound},
		{ErrCodeTierLimitExceeded, KindPolicyViolation},
		{ErrCodeInvalidTransition, KindStateConflict},
		{ErrCodeNotAssignedApprover, KindForbidden},
		{ErrCodeReportStorage, KindInternal},
		{Code("garbage"), KindInternal},
		{Code("X-1"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.Kind())
		})
	}
}

func TestKindOf_WrappedError(t *testing.T) {
	err := New(ErrCodeCategoryLimitExceeded, "Travel limit exceeded", ErrCategoryLimitExceeded)
	wrapped := fmt.Errorf("create report: %w", err)

	assert.Equal(t, KindPolicyViolation, KindOf(wrapped))
	assert.True(t, errors.Is(wrapped, ErrCategoryLimitExceeded))

	code, ok := CodeOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, ErrCodeCategoryLimitExceeded, code)
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))

	_, ok := CodeOf(errors.New("boom"))
	assert.False(t, ok)
}

func TestError_Message(t *testing.T) {
	err := New(ErrCodeInvalidTransition, "cannot decide report", ErrInvalidTransition)
	assert.Equal(t, "cannot decide report: approval has already done", err.Error())

	bare := New(ErrCodeInvalidTransition, "cannot decide report", nil)
	assert.Equal(t, "cannot decide report", bare.Error())
}
