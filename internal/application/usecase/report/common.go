// Package report contains report-related use cases.
package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
)

// dedupeIDs drops repeated IDs, keeping the first occurrence order.
func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	result := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

// loadOwnedExpenses fetches the expenses in the order of ids and verifies
// that every one of them exists and belongs to userID.
func loadOwnedExpenses(ctx context.Context, repo adapter.ExpenseRepository, userID uuid.UUID, ids []uuid.UUID) ([]*entity.Expense, error) {
	if len(ids) == 0 {
		return []*entity.Expense{}, nil
	}

	found, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	byID := make(map[uuid.UUID]*entity.Expense, len(found))
	for _, e := range found {
		byID[e.ID] = e
	}

	expenses := make([]*entity.Expense, 0, len(ids))
	for _, id := range ids {
		e, ok := byID[id]
		if !ok {
			return nil, domainerror.New(
				domainerror.ErrCodeExpenseNotFound,
				fmt.Sprintf("expense %s not found", id),
				domainerror.ErrExpenseNotFound,
			)
		}
		if e.UserID != userID {
			return nil, domainerror.New(
				domainerror.ErrCodeExpenseNotOwned,
				fmt.Sprintf("expense %s does not belong to the submitter", id),
				domainerror.ErrExpenseNotOwned,
			)
		}
		expenses = append(expenses, e)
	}

	return expenses, nil
}

// findUser loads the submitting user.
func findUser(ctx context.Context, repo adapter.UserRepository, id uuid.UUID) (*entity.User, error) {
	user, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.New(domainerror.ErrCodeUserNotFound, "user not found", domainerror.ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// findReport loads a report, mapping a missing row to a NotFound error.
func findReport(ctx context.Context, repo adapter.ReportRepository, id uuid.UUID) (*entity.Report, error) {
	report, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrReportNotFound) {
			return nil, domainerror.New(domainerror.ErrCodeReportNotFound, "report not found", domainerror.ErrReportNotFound)
		}
		return nil, fmt.Errorf("failed to find report: %w", err)
	}
	return report, nil
}

// findEvent loads an event, mapping a missing row to a NotFound error.
func findEvent(ctx context.Context, repo adapter.EventRepository, id uuid.UUID) (*entity.Event, error) {
	event, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrEventNotFound) {
			return nil, domainerror.New(domainerror.ErrCodeEventNotFound, "event not found", domainerror.ErrEventNotFound)
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}
	return event, nil
}

// mapWriteError converts storage conflicts raised inside a report write.
func mapWriteError(err error) error {
	switch {
	case errors.Is(err, domainerror.ErrAlreadyMapped):
		return domainerror.New(domainerror.ErrCodeAlreadyMapped, "an expense is already mapped to another report", domainerror.ErrAlreadyMapped)
	case errors.Is(err, domainerror.ErrConcurrentUpdate):
		return domainerror.New(domainerror.ErrCodeConcurrentUpdate, "report was modified by another request, reload and retry", domainerror.ErrConcurrentUpdate)
	default:
		return fmt.Errorf("failed to save report: %w", err)
	}
}

// notifyParticipants tells the submitter and their approver about a report change.
func notifyParticipants(ctx context.Context, notifier adapter.Notifier, user *entity.User, report *entity.Report, subject string) {
	notifier.Notify(ctx, entity.UserPrincipal(user.ID), report, subject)
	if user.Approver != nil {
		notifier.Notify(ctx, *user.Approver, report, subject)
	}
}
