// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportStatus represents the lifecycle state of a report.
type ReportStatus string

const (
	ReportStatusDrafted    ReportStatus = "drafted"
	ReportStatusPending    ReportStatus = "pending"
	ReportStatusApproved   ReportStatus = "approved"
	ReportStatusRejected   ReportStatus = "rejected"
	ReportStatusReimbursed ReportStatus = "reimbursed"
)

var reportTransitions = map[ReportStatus][]ReportStatus{
	ReportStatusDrafted:  {ReportStatusPending},
	ReportStatusPending:  {ReportStatusApproved, ReportStatusRejected},
	ReportStatusApproved: {ReportStatusReimbursed},
}

// IsValid reports whether the status is known.
func (s ReportStatus) IsValid() bool {
	switch s {
	case ReportStatusDrafted, ReportStatusPending, ReportStatusApproved,
		ReportStatusRejected, ReportStatusReimbursed:
		return true
	}
	return false
}

// LocksExpenses reports whether expenses of a report in this status may no
// longer be mapped anywhere else.
func (s ReportStatus) LocksExpenses() bool {
	return s == ReportStatusApproved || s == ReportStatusReimbursed
}

// IsEditable reports whether the expense set of the report may still change.
func (s ReportStatus) IsEditable() bool {
	return s == ReportStatusDrafted || s == ReportStatusPending
}

// Report bundles expenses for review and reimbursement.
type Report struct {
	ID                 uuid.UUID
	Label              string // Rep#NNN, empty for drafts created before numbering
	Sequence           int64
	UserID             uuid.UUID
	EventID            *uuid.UUID
	Title              string
	Description        string
	ExpenseIDs         []uuid.UUID
	Status             ReportStatus
	ReportDate         time.Time
	Reasons            []string // One entry per approval or rejection
	Approver           *Principal
	Reimburser         *Principal
	FinanceDescription string
	DecidedAt          *time.Time
	ReimbursedAt       *time.Time
	Version            int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewReport creates a new Report entity in the given status.
func NewReport(userID uuid.UUID, eventID *uuid.UUID, title, description string, expenseIDs []uuid.UUID, status ReportStatus, reportDate time.Time) *Report {
	now := time.Now().UTC()
	return &Report{
		ID:          uuid.New(),
		UserID:      userID,
		EventID:     eventID,
		Title:       title,
		Description: description,
		ExpenseIDs:  expenseIDs,
		Status:      status,
		ReportDate:  reportDate,
		Reasons:     []string{},
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CanTransitionTo reports whether the state machine allows moving to next.
func (r *Report) CanTransitionTo(next ReportStatus) bool {
	for _, allowed := range reportTransitions[r.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo moves the report to next. It returns false and leaves the
// report untouched when the transition is not allowed.
func (r *Report) TransitionTo(next ReportStatus) bool {
	if !r.CanTransitionTo(next) {
		return false
	}
	r.Status = next
	r.UpdatedAt = time.Now().UTC()
	return true
}

// AppendReason records one history entry per decision. The reason may be
// empty.
func (r *Report) AppendReason(reason string) {
	r.Reasons = append(r.Reasons, reason)
}

// ContainsExpense reports whether the expense is part of the report.
func (r *Report) ContainsExpense(id uuid.UUID) bool {
	for _, e := range r.ExpenseIDs {
		if e == id {
			return true
		}
	}
	return false
}

// ReportSummary is a report with aggregates computed from its expenses.
type ReportSummary struct {
	Report       *Report
	TotalAmount  decimal.Decimal
	ExpenseCount int
}

// ReportListResult represents a page of report summaries.
type ReportListResult struct {
	Reports    []*ReportSummary
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}
