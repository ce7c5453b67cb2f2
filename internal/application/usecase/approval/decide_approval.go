package approval

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
)

// DecideApprovalInput represents an approver's decision on a pending report.
type DecideApprovalInput struct {
	Actor    entity.Actor
	ReportID uuid.UUID
	Status   entity.ReportStatus // approved or rejected
	// ExpenseIDs must equal the report's expenses when approving. When
	// rejecting it lists the rejected expenses; the rest are approved.
	ExpenseIDs []uuid.UUID
	Reason     string
}

// DecideApprovalOutput represents the output of a decision.
type DecideApprovalOutput struct {
	Report   *entity.Report
	Approved []uuid.UUID
	Rejected []uuid.UUID
}

// DecideApprovalUseCase handles approval and rejection logic.
type DecideApprovalUseCase struct {
	reportRepo adapter.ReportRepository
	userRepo   adapter.UserRepository
	notifier   adapter.Notifier
	clock      adapter.Clock
}

// NewDecideApprovalUseCase creates a new DecideApprovalUseCase instance.
func NewDecideApprovalUseCase(
	reportRepo adapter.ReportRepository,
	userRepo adapter.UserRepository,
	notifier adapter.Notifier,
	clock adapter.Clock,
) *DecideApprovalUseCase {
	return &DecideApprovalUseCase{
		reportRepo: reportRepo,
		userRepo:   userRepo,
		notifier:   notifier,
		clock:      clock,
	}
}

// Execute performs the decision.
func (uc *DecideApprovalUseCase) Execute(ctx context.Context, input DecideApprovalInput) (*DecideApprovalOutput, error) {
	if input.Status != entity.ReportStatusApproved && input.Status != entity.ReportStatusRejected {
		return nil, domainerror.New(domainerror.ErrCodeInvalidDecision, "status must be approved or rejected", domainerror.ErrInvalidDecision)
	}

	report, err := findReport(ctx, uc.reportRepo, input.ReportID)
	if err != nil {
		return nil, err
	}

	owner, err := uc.userRepo.FindByID(ctx, report.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.New(domainerror.ErrCodeUserNotFound, "report owner not found", domainerror.ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to find report owner: %w", err)
	}

	actor := input.Actor.Principal()
	assigned := owner.Approver != nil && owner.Approver.Equal(actor)
	if !assigned && input.Actor.Role != entity.RoleAdmin {
		return nil, domainerror.New(domainerror.ErrCodeNotAssignedApprover, "you are not the assigned approver for this report", domainerror.ErrNotAssignedApprover)
	}

	if report.Status != entity.ReportStatusPending {
		return nil, domainerror.New(domainerror.ErrCodeInvalidTransition, "Approval has already done", domainerror.ErrInvalidTransition)
	}

	approved, rejected, err := partition(report, input.Status, input.ExpenseIDs)
	if err != nil {
		return nil, err
	}

	expectedVersion := report.Version
	now := uc.clock.Now().UTC()

	report.TransitionTo(input.Status)
	report.AppendReason(input.Reason)
	report.Approver = &actor
	report.DecidedAt = &now

	changes := []adapter.ExpenseChange{{IDs: approved, Status: entity.ExpenseStatusApproved}}
	if len(rejected) > 0 {
		changes = append(changes, adapter.ExpenseChange{IDs: rejected, Status: entity.ExpenseStatusRejected})
	}

	if err := uc.reportRepo.ApplyDecision(ctx, report, changes, expectedVersion); err != nil {
		return nil, mapWriteError(err)
	}

	zap.L().Info("report decided",
		zap.String("report_id", report.ID.String()),
		zap.String("status", string(report.Status)),
		zap.String("approver", actor.String()),
		zap.Int("approved", len(approved)),
		zap.Int("rejected", len(rejected)),
	)

	uc.notifier.Notify(ctx, entity.UserPrincipal(owner.ID), report, fmt.Sprintf("%s %s", report.Label, report.Status))

	return &DecideApprovalOutput{Report: report, Approved: approved, Rejected: rejected}, nil
}

// partition splits the report's expenses into approved and rejected sets for
// the decision. Approval requires the supplied IDs to equal the report's set;
// rejection requires a non-empty subset of it.
func partition(report *entity.Report, status entity.ReportStatus, ids []uuid.UUID) (approved, rejected []uuid.UUID, err error) {
	supplied := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if !report.ContainsExpense(id) {
			return nil, nil, mismatch(fmt.Sprintf("expense %s is not part of the report", id))
		}
		supplied[id] = true
	}

	if status == entity.ReportStatusApproved {
		if len(supplied) != len(report.ExpenseIDs) {
			return nil, nil, mismatch("the approved expenses must match the report exactly")
		}
		return append([]uuid.UUID(nil), report.ExpenseIDs...), nil, nil
	}

	if len(supplied) == 0 {
		return nil, nil, mismatch("select the expenses to reject")
	}
	for _, id := range report.ExpenseIDs {
		if supplied[id] {
			rejected = append(rejected, id)
		} else {
			approved = append(approved, id)
		}
	}
	return approved, rejected, nil
}

func mismatch(message string) error {
	return domainerror.New(domainerror.ErrCodeExpenseMismatch, message, domainerror.ErrExpenseMismatch)
}
