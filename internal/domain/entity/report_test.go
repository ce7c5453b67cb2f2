package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestReport_TransitionTo(t *testing.T) {
	tests := []struct {
		from    ReportStatus
		to      ReportStatus
		allowed bool
	}{
		{ReportStatusDrafted, ReportStatusPending, true},
		{ReportStatusDrafted, ReportStatusApproved, false},
		{ReportStatusPending, ReportStatusApproved, true},
		{ReportStatusPending, ReportStatusRejected, true},
		{ReportStatusPending, ReportStatusReimbursed, false},
		{ReportStatusApproved, ReportStatusReimbursed, true},
		{ReportStatusApproved, ReportStatusRejected, false},
		{ReportStatusRejected, ReportStatusPending, false},
		{ReportStatusReimbursed, ReportStatusApproved, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			r := NewReport(uuid.New(), nil, "Trip", "", nil, tt.from, time.Now())

			assert.Equal(t, tt.allowed, r.TransitionTo(tt.to))
			if tt.allowed {
				assert.Equal(t, tt.to, r.Status)
			} else {
				assert.Equal(t, tt.from, r.Status)
			}
		})
	}
}

func TestReportStatus_Locks(t *testing.T) {
	assert.True(t, ReportStatusDrafted.IsEditable())
	assert.True(t, ReportStatusPending.IsEditable())
	assert.False(t, ReportStatusApproved.IsEditable())
	assert.True(t, ReportStatusApproved.LocksExpenses())
	assert.True(t, ReportStatusReimbursed.LocksExpenses())
	assert.False(t, ReportStatusRejected.LocksExpenses())
}

func TestEventStatusAt(t *testing.T) {
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)

	assert.Equal(t, EventStatusUpcoming, EventStatusAt(start, end, start.Add(-time.Second)))
	assert.Equal(t, EventStatusOngoing, EventStatusAt(start, end, start))
	assert.Equal(t, EventStatusOngoing, EventStatusAt(start, end, end))
	assert.Equal(t, EventStatusCompleted, EventStatusAt(start, end, end.Add(time.Second)))
}

func TestReport_AppendReasonKeepsOneEntryPerDecision(t *testing.T) {
	r := NewReport(uuid.New(), nil, "Trip", "", nil, ReportStatusPending, time.Now())

	r.AppendReason("")
	r.AppendReason("too costly")

	assert.Equal(t, []string{"", "too costly"}, r.Reasons)
}
