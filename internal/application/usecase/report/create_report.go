package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
	"github.com/reimburse-desk/backend/internal/domain/valueobject"
)

// CreateReportInput represents the input for report creation.
type CreateReportInput struct {
	UserID      uuid.UUID
	EventID     *uuid.UUID
	Title       string
	Description string
	ExpenseIDs  []uuid.UUID
	ReportDate  *time.Time // Defaults to now
}

// CreateReportOutput represents the output of report creation.
type CreateReportOutput struct {
	Report *entity.Report
}

// CreateReportUseCase handles report creation logic.
type CreateReportUseCase struct {
	expenseRepo adapter.ExpenseRepository
	reportRepo  adapter.ReportRepository
	userRepo    adapter.UserRepository
	eventRepo   adapter.EventRepository
	sequence    adapter.ReportSequence
	notifier    adapter.Notifier
	clock       adapter.Clock
	eligibility *eligibilityChecker
}

// NewCreateReportUseCase creates a new CreateReportUseCase instance.
func NewCreateReportUseCase(
	expenseRepo adapter.ExpenseRepository,
	reportRepo adapter.ReportRepository,
	userRepo adapter.UserRepository,
	tierRepo adapter.TierRepository,
	eventRepo adapter.EventRepository,
	sequence adapter.ReportSequence,
	notifier adapter.Notifier,
	clock adapter.Clock,
) *CreateReportUseCase {
	return &CreateReportUseCase{
		expenseRepo: expenseRepo,
		reportRepo:  reportRepo,
		userRepo:    userRepo,
		eventRepo:   eventRepo,
		sequence:    sequence,
		notifier:    notifier,
		clock:       clock,
		eligibility: &eligibilityChecker{
			tierRepo:   tierRepo,
			userRepo:   userRepo,
			reportRepo: reportRepo,
			clock:      clock,
		},
	}
}

// Execute performs the report creation. All checks complete before the first
// write, so a failed check leaves every expense untouched.
func (uc *CreateReportUseCase) Execute(ctx context.Context, input CreateReportInput) (*CreateReportOutput, error) {
	expenseIDs := dedupeIDs(input.ExpenseIDs)
	if len(expenseIDs) == 0 {
		return nil, domainerror.New(domainerror.ErrCodeEmptyExpenseList, "select at least one expense", domainerror.ErrEmptyExpenseList)
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domainerror.New(domainerror.ErrCodeInvalidReportInput, "report title is required", nil)
	}

	user, err := findUser(ctx, uc.userRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	expenses, err := loadOwnedExpenses(ctx, uc.expenseRepo, user.ID, expenseIDs)
	if err != nil {
		return nil, err
	}

	var event *entity.Event
	if input.EventID != nil {
		event, err = findEvent(ctx, uc.eventRepo, *input.EventID)
		if err != nil {
			return nil, err
		}
	}

	// Reports on organization events skip every policy check; storage still
	// refuses expenses that are no longer drafted.
	if event == nil || !event.BypassesPolicy() {
		if err := uc.eligibility.check(ctx, user, expenses, nil); err != nil {
			return nil, err
		}
	}

	sequence, err := uc.sequence.Next(ctx)
	if err != nil {
		return nil, domainerror.New(domainerror.ErrCodeReportSequence, "failed to allocate report number", err)
	}

	now := uc.clock.Now().UTC()
	reportDate := now
	if input.ReportDate != nil {
		reportDate = input.ReportDate.UTC()
	}

	report := entity.NewReport(user.ID, input.EventID, title, input.Description, expenseIDs, entity.ReportStatusPending, reportDate)
	report.Sequence = sequence
	report.Label = valueobject.FormatReportLabel(sequence)

	if err := uc.reportRepo.CreateWithExpenses(ctx, report); err != nil {
		return nil, mapWriteError(err)
	}

	zap.L().Info("report created",
		zap.String("report_id", report.ID.String()),
		zap.String("label", report.Label),
		zap.String("user_id", user.ID.String()),
		zap.Int("expense_count", len(expenseIDs)),
	)

	notifyParticipants(ctx, uc.notifier, user, report, fmt.Sprintf("%s submitted for approval", report.Label))

	return &CreateReportOutput{Report: report}, nil
}
