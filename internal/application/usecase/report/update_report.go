package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
	"github.com/reimburse-desk/backend/internal/domain/valueobject"
)

// UpdateReportInput represents the input for report update.
type UpdateReportInput struct {
	UserID      uuid.UUID
	ReportID    uuid.UUID
	Title       *string     // Optional
	Description *string     // Optional
	ExpenseIDs  []uuid.UUID // Replaces the expense list when non-nil
	Submit      bool        // Moves a drafted report to pending
}

// UpdateReportOutput represents the output of report update.
type UpdateReportOutput struct {
	Report  *entity.Report
	Added   []uuid.UUID
	Removed []uuid.UUID
}

// UpdateReportUseCase handles report update logic.
type UpdateReportUseCase struct {
	expenseRepo adapter.ExpenseRepository
	reportRepo  adapter.ReportRepository
	userRepo    adapter.UserRepository
	eventRepo   adapter.EventRepository
	sequence    adapter.ReportSequence
	notifier    adapter.Notifier
	eligibility *eligibilityChecker
}

// NewUpdateReportUseCase creates a new UpdateReportUseCase instance.
func NewUpdateReportUseCase(
	expenseRepo adapter.ExpenseRepository,
	reportRepo adapter.ReportRepository,
	userRepo adapter.UserRepository,
	tierRepo adapter.TierRepository,
	eventRepo adapter.EventRepository,
	sequence adapter.ReportSequence,
	notifier adapter.Notifier,
	clock adapter.Clock,
) *UpdateReportUseCase {
	return &UpdateReportUseCase{
		expenseRepo: expenseRepo,
		reportRepo:  reportRepo,
		userRepo:    userRepo,
		eventRepo:   eventRepo,
		sequence:    sequence,
		notifier:    notifier,
		eligibility: &eligibilityChecker{
			tierRepo:   tierRepo,
			userRepo:   userRepo,
			reportRepo: reportRepo,
			clock:      clock,
		},
	}
}

// Execute performs the report update.
func (uc *UpdateReportUseCase) Execute(ctx context.Context, input UpdateReportInput) (*UpdateReportOutput, error) {
	report, err := findReport(ctx, uc.reportRepo, input.ReportID)
	if err != nil {
		return nil, err
	}

	if report.UserID != input.UserID {
		return nil, domainerror.New(domainerror.ErrCodeReportAccessDenied, "only the owner can modify this report", domainerror.ErrReportAccessDenied)
	}

	if !report.Status.IsEditable() {
		return nil, domainerror.New(
			domainerror.ErrCodeReportImmutable,
			fmt.Sprintf("report is %s and can no longer be modified", report.Status),
			domainerror.ErrReportImmutable,
		)
	}

	user, err := findUser(ctx, uc.userRepo, report.UserID)
	if err != nil {
		return nil, err
	}

	expectedVersion := report.Version
	wasSubmitted := report.Status == entity.ReportStatusPending

	members := make(map[uuid.UUID]bool, len(report.ExpenseIDs))
	for _, id := range report.ExpenseIDs {
		members[id] = true
	}

	finalIDs := report.ExpenseIDs
	var added, removed []uuid.UUID
	if input.ExpenseIDs != nil {
		finalIDs = dedupeIDs(input.ExpenseIDs)
		added, removed = diffIDs(report.ExpenseIDs, finalIDs)
	}

	expenses, err := loadOwnedExpenses(ctx, uc.expenseRepo, report.UserID, finalIDs)
	if err != nil {
		return nil, err
	}

	if input.Submit && !report.CanTransitionTo(entity.ReportStatusPending) {
		return nil, domainerror.New(domainerror.ErrCodeInvalidTransition, "report has already been submitted", domainerror.ErrInvalidTransition)
	}

	submitting := input.Submit || (wasSubmitted && len(added)+len(removed) > 0)
	if submitting {
		if len(finalIDs) == 0 {
			return nil, domainerror.New(domainerror.ErrCodeEmptyExpenseList, "a submitted report needs at least one expense", domainerror.ErrEmptyExpenseList)
		}

		bypass, err := uc.bypassesPolicy(ctx, report)
		if err != nil {
			return nil, err
		}
		if !bypass {
			if err := uc.eligibility.check(ctx, user, expenses, members); err != nil {
				return nil, err
			}
		}
	} else {
		for _, e := range expenses {
			if e.Status.IsMapped() && !members[e.ID] {
				return nil, domainerror.New(
					domainerror.ErrCodeAlreadyMapped,
					fmt.Sprintf("expense %q is already mapped to a report", e.Title),
					domainerror.ErrAlreadyMapped,
				)
			}
		}
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, domainerror.New(domainerror.ErrCodeInvalidReportInput, "report title must not be empty", nil)
		}
		report.Title = title
	}
	if input.Description != nil {
		report.Description = *input.Description
	}

	// Drafts created before numbering existed, and event drafts, get their label now.
	if report.Label == "" {
		sequence, err := uc.sequence.Next(ctx)
		if err != nil {
			return nil, domainerror.New(domainerror.ErrCodeReportSequence, "failed to allocate report number", err)
		}
		report.Sequence = sequence
		report.Label = valueobject.FormatReportLabel(sequence)
	}

	report.ExpenseIDs = finalIDs
	if input.Submit {
		report.TransitionTo(entity.ReportStatusPending)
	}

	if err := uc.reportRepo.Update(ctx, report, added, removed, expectedVersion); err != nil {
		return nil, mapWriteError(err)
	}

	zap.L().Info("report updated",
		zap.String("report_id", report.ID.String()),
		zap.Int("added", len(added)),
		zap.Int("removed", len(removed)),
		zap.Bool("submitted", input.Submit),
	)

	if input.Submit {
		notifyParticipants(ctx, uc.notifier, user, report, fmt.Sprintf("%s submitted for approval", report.Label))
	}

	return &UpdateReportOutput{Report: report, Added: added, Removed: removed}, nil
}

func (uc *UpdateReportUseCase) bypassesPolicy(ctx context.Context, report *entity.Report) (bool, error) {
	if report.EventID == nil {
		return false, nil
	}
	event, err := findEvent(ctx, uc.eventRepo, *report.EventID)
	if err != nil {
		return false, err
	}
	return event.BypassesPolicy(), nil
}

// diffIDs returns the IDs present only in next (added) and only in prev (removed).
func diffIDs(prev, next []uuid.UUID) (added, removed []uuid.UUID) {
	inPrev := make(map[uuid.UUID]bool, len(prev))
	for _, id := range prev {
		inPrev[id] = true
	}
	inNext := make(map[uuid.UUID]bool, len(next))
	for _, id := range next {
		inNext[id] = true
		if !inPrev[id] {
			added = append(added, id)
		}
	}
	for _, id := range prev {
		if !inNext[id] {
			removed = append(removed, id)
		}
	}
	return added, removed
}
