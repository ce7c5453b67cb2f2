package valueobject

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatReportLabel(t *testing.T) {
	assert.Equal(t, "Rep#001", FormatReportLabel(1))
	assert.Equal(t, "Rep#003", FormatReportLabel(3))
	assert.Equal(t, "Rep#999", FormatReportLabel(999))
	assert.Equal(t, "Rep#1000", FormatReportLabel(1000))
}

func TestDisplayDate(t *testing.T) {
	assert.Equal(t, "Mar 05 2024", DisplayDate(time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)))
}

func TestTransactionDisplayID(t *testing.T) {
	assert.Equal(t, "#transaction_3f2a9c", TransactionDisplayID("3f2a9c41-0000-4000-8000-000000000000"))
	assert.Equal(t, "#transaction_ab", TransactionDisplayID("ab"))
}
