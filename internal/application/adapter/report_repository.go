// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/reimburse-desk/backend/internal/domain/entity"
	"github.com/reimburse-desk/backend/internal/domain/valueobject"
)

// ReportFilterType selects which reports a listing returns.
type ReportFilterType string

const (
	ReportFilterAll     ReportFilterType = "all"
	ReportFilterEvent   ReportFilterType = "event"   // Attached to an event
	ReportFilterGeneral ReportFilterType = "general" // Not attached to an event
)

// IsValid reports whether the filter type is known.
func (f ReportFilterType) IsValid() bool {
	return f == ReportFilterAll || f == ReportFilterEvent || f == ReportFilterGeneral
}

// ReportFilter defines filter options for listing reports.
type ReportFilter struct {
	UserIDs       []uuid.UUID
	Type          ReportFilterType
	Status        *entity.ReportStatus
	SubmittedOnly bool // Excludes drafted reports
}

// ExpenseChange lists expenses whose status must change together with a report write.
type ExpenseChange struct {
	IDs    []uuid.UUID
	Status entity.ExpenseStatus
}

// ReportRepository defines the interface for report persistence operations.
// Every method that changes a report's status or expense set also changes the
// affected expenses in the same database transaction.
type ReportRepository interface {
	// CreateWithExpenses inserts the report and marks its expenses mapped.
	// Returns ErrAlreadyMapped, without writing anything, if any expense is no longer drafted.
	CreateWithExpenses(ctx context.Context, report *entity.Report) error

	// CreateDraft inserts an empty drafted report for an event. When a draft for the
	// same event and user already exists, the existing one is returned instead.
	CreateDraft(ctx context.Context, report *entity.Report) (*entity.Report, error)

	// FindByID retrieves a report with its ordered expense IDs.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Report, error)

	// FindByEventAndUser retrieves the report a user filed for an event.
	FindByEventAndUser(ctx context.Context, eventID, userID uuid.UUID) (*entity.Report, error)

	// FindLockedContaining returns an approved or reimbursed report holding any of the
	// expenses, or nil when there is none.
	FindLockedContaining(ctx context.Context, expenseIDs []uuid.UUID) (*entity.Report, error)

	// SumLockedInWindow sums the expense amounts of approved and reimbursed reports
	// owned by the given users whose report date falls inside the window.
	SumLockedInWindow(ctx context.Context, userIDs []uuid.UUID, window valueobject.MonthWindow) (decimal.Decimal, error)

	// Update saves the report's label, metadata, status and expense list. Added
	// expenses are mapped only if still drafted (ErrAlreadyMapped otherwise) and
	// removed expenses return to drafted. Returns ErrConcurrentUpdate when the
	// stored version differs from expectedVersion.
	Update(ctx context.Context, report *entity.Report, added, removed []uuid.UUID, expectedVersion int) error

	// ApplyDecision saves an approval decision and the resulting expense statuses.
	// Returns ErrConcurrentUpdate when the stored version differs from expectedVersion.
	ApplyDecision(ctx context.Context, report *entity.Report, changes []ExpenseChange, expectedVersion int) error

	// MarkReimbursed saves a reimbursement, flips the approved expenses to reimbursed
	// and stores the deduction when one is given.
	// Returns ErrConcurrentUpdate when the stored version differs from expectedVersion.
	MarkReimbursed(ctx context.Context, report *entity.Report, deduction *entity.Deduction, expectedVersion int) error

	// FindByFilter retrieves report summaries newest first with pagination.
	FindByFilter(ctx context.Context, filter ReportFilter, pagination Pagination) (*entity.ReportListResult, error)

	// FindReimbursedInWindow retrieves summaries of reports reimbursed inside the window.
	FindReimbursedInWindow(ctx context.Context, window valueobject.MonthWindow) ([]*entity.ReportSummary, error)

	// MaxSequence returns the highest report sequence ever assigned.
	MaxSequence(ctx context.Context) (int64, error)
}

// ReportSequence hands out report numbers. Numbers are unique and increasing;
// a number taken by a failed write is not reused.
type ReportSequence interface {
	// Next reserves the next report number.
	Next(ctx context.Context) (int64, error)
}
