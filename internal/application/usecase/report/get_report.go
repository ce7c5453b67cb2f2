package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
	"github.com/reimburse-desk/backend/internal/domain/valueobject"
)

// GetReportInput represents the input for fetching a report.
type GetReportInput struct {
	Actor entity.Actor
	ID    uuid.UUID // Report ID, or event ID when IsEvent is set
	// IsEvent resolves ID as an event and returns the caller's report for it,
	// creating an empty draft on first access.
	IsEvent bool
}

// GetReportOutput represents a report with its expenses.
type GetReportOutput struct {
	Report      *entity.Report
	Expenses    []*entity.Expense
	TotalAmount decimal.Decimal
}

// GetReportUseCase handles report lookup logic.
type GetReportUseCase struct {
	reportRepo  adapter.ReportRepository
	expenseRepo adapter.ExpenseRepository
	eventRepo   adapter.EventRepository
	clock       adapter.Clock
}

// NewGetReportUseCase creates a new GetReportUseCase instance.
func NewGetReportUseCase(
	reportRepo adapter.ReportRepository,
	expenseRepo adapter.ExpenseRepository,
	eventRepo adapter.EventRepository,
	clock adapter.Clock,
) *GetReportUseCase {
	return &GetReportUseCase{
		reportRepo:  reportRepo,
		expenseRepo: expenseRepo,
		eventRepo:   eventRepo,
		clock:       clock,
	}
}

// Execute performs the report lookup.
func (uc *GetReportUseCase) Execute(ctx context.Context, input GetReportInput) (*GetReportOutput, error) {
	var (
		report *entity.Report
		err    error
	)

	if input.IsEvent {
		report, err = uc.eventReport(ctx, input.Actor.ID, input.ID)
	} else {
		report, err = findReport(ctx, uc.reportRepo, input.ID)
	}
	if err != nil {
		return nil, err
	}

	if report.UserID != input.Actor.ID && !input.Actor.HasRole(entity.RoleApprover, entity.RoleAdmin, entity.RoleFinance) {
		return nil, domainerror.New(domainerror.ErrCodeReportAccessDenied, "you cannot view this report", domainerror.ErrReportAccessDenied)
	}

	expenses, err := loadOwnedExpenses(ctx, uc.expenseRepo, report.UserID, report.ExpenseIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load report expenses: %w", err)
	}

	return &GetReportOutput{
		Report:      report,
		Expenses:    expenses,
		TotalAmount: valueobject.SumAmounts(expenses),
	}, nil
}

// eventReport returns the user's report for an event, seeding an empty draft
// from the event on first access. Repeated calls return the same draft.
func (uc *GetReportUseCase) eventReport(ctx context.Context, userID, eventID uuid.UUID) (*entity.Report, error) {
	event, err := findEvent(ctx, uc.eventRepo, eventID)
	if err != nil {
		return nil, err
	}

	report, err := uc.reportRepo.FindByEventAndUser(ctx, event.ID, userID)
	if err == nil {
		return report, nil
	}
	if !errors.Is(err, domainerror.ErrReportNotFound) {
		return nil, fmt.Errorf("failed to find event report: %w", err)
	}

	draft := entity.NewReport(userID, &event.ID, event.Title, event.Description, []uuid.UUID{}, entity.ReportStatusDrafted, uc.clock.Now().UTC())
	report, err = uc.reportRepo.CreateDraft(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("failed to create event draft: %w", err)
	}
	return report, nil
}
