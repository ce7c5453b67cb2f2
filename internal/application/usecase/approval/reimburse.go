package approval

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
)

// ReimburseInput represents a finance reimbursement of an approved report.
type ReimburseInput struct {
	Actor              entity.Actor
	ReportID           uuid.UUID
	FinanceDescription string
	DeductionAmount    decimal.Decimal // Withheld from the bank payout; zero for none
}

// ReimburseOutput represents the output of a reimbursement.
type ReimburseOutput struct {
	Report    *entity.Report
	Deduction *entity.Deduction
}

// ReimburseUseCase handles reimbursement logic.
type ReimburseUseCase struct {
	reportRepo adapter.ReportRepository
	notifier   adapter.Notifier
	clock      adapter.Clock
}

// NewReimburseUseCase creates a new ReimburseUseCase instance.
func NewReimburseUseCase(reportRepo adapter.ReportRepository, notifier adapter.Notifier, clock adapter.Clock) *ReimburseUseCase {
	return &ReimburseUseCase{
		reportRepo: reportRepo,
		notifier:   notifier,
		clock:      clock,
	}
}

// Execute performs the reimbursement. Only approved reports can be
// reimbursed, so a second call on the same report is a state conflict.
func (uc *ReimburseUseCase) Execute(ctx context.Context, input ReimburseInput) (*ReimburseOutput, error) {
	if !input.Actor.HasRole(entity.RoleFinance, entity.RoleAdmin) {
		return nil, domainerror.NewInsufficientRoleError("only finance can reimburse reports")
	}

	if input.DeductionAmount.IsNegative() {
		return nil, domainerror.New(domainerror.ErrCodeInvalidDeductionAmount, "deduction amount must not be negative", domainerror.ErrInvalidDeductionAmount)
	}

	report, err := findReport(ctx, uc.reportRepo, input.ReportID)
	if err != nil {
		return nil, err
	}

	if !report.CanTransitionTo(entity.ReportStatusReimbursed) {
		return nil, domainerror.New(
			domainerror.ErrCodeNotReimbursable,
			fmt.Sprintf("report is %s, only approved reports can be reimbursed", report.Status),
			domainerror.ErrNotReimbursable,
		)
	}

	expectedVersion := report.Version
	now := uc.clock.Now().UTC()
	actor := input.Actor.Principal()

	var deduction *entity.Deduction
	if input.DeductionAmount.IsPositive() {
		deduction = entity.NewDeduction(report.UserID, input.DeductionAmount, actor, &report.ID, entity.DeductionModeBank, input.FinanceDescription, now)
	}

	report.TransitionTo(entity.ReportStatusReimbursed)
	report.Reimburser = &actor
	report.FinanceDescription = input.FinanceDescription
	report.ReimbursedAt = &now

	if err := uc.reportRepo.MarkReimbursed(ctx, report, deduction, expectedVersion); err != nil {
		return nil, mapWriteError(err)
	}

	zap.L().Info("report reimbursed",
		zap.String("report_id", report.ID.String()),
		zap.String("reimburser", actor.String()),
		zap.String("deduction", input.DeductionAmount.StringFixed(2)),
	)

	uc.notifier.Notify(ctx, entity.UserPrincipal(report.UserID), report, fmt.Sprintf("%s reimbursed", report.Label))

	return &ReimburseOutput{Report: report, Deduction: deduction}, nil
}
