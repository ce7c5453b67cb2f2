package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
	"github.com/reimburse-desk/backend/internal/domain/valueobject"
)

// eligibilityChecker decides whether a set of expenses may form a report
// under the submitter's tier. It never writes.
type eligibilityChecker struct {
	tierRepo   adapter.TierRepository
	userRepo   adapter.UserRepository
	reportRepo adapter.ReportRepository
	clock      adapter.Clock
}

// check runs the eligibility rules in order: exclusivity, category limits,
// overlap with approved reports, then the tier monthly total. Expenses listed
// in members already belong to the report being checked and are exempt from
// the exclusivity rule.
func (c *eligibilityChecker) check(ctx context.Context, user *entity.User, expenses []*entity.Expense, members map[uuid.UUID]bool) error {
	for _, e := range expenses {
		if e.Status.IsMapped() && !members[e.ID] {
			return domainerror.New(
				domainerror.ErrCodeAlreadyMapped,
				fmt.Sprintf("expense %q is already mapped to a report", e.Title),
				domainerror.ErrAlreadyMapped,
			)
		}
	}

	tier, err := c.resolveTier(ctx, user)
	if err != nil {
		return err
	}

	limits := valueobject.NewPolicyLimits(tier)
	if err := limits.CheckCategoryTotals(valueobject.SumByCategory(expenses)); err != nil {
		return err
	}

	ids := make([]uuid.UUID, len(expenses))
	for i, e := range expenses {
		ids[i] = e.ID
	}
	locked, err := c.reportRepo.FindLockedContaining(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to check report overlap: %w", err)
	}
	if locked != nil {
		return domainerror.New(
			domainerror.ErrCodeExpenseAlreadyReported,
			fmt.Sprintf("an expense is already part of %s", reportName(locked)),
			domainerror.ErrExpenseAlreadyReported,
		)
	}

	// The monthly total is tier-wide: every approved or reimbursed report of
	// any user on the same tier counts against the cap.
	tierUsers, err := c.userRepo.FindIDsByTier(ctx, tier.ID)
	if err != nil {
		return fmt.Errorf("failed to list tier users: %w", err)
	}
	window := valueobject.CalendarMonth(c.clock.Now(), time.UTC)
	spent, err := c.reportRepo.SumLockedInWindow(ctx, tierUsers, window)
	if err != nil {
		return fmt.Errorf("failed to sum monthly reports: %w", err)
	}

	return limits.CheckMonthlyTotal(spent, valueobject.SumAmounts(expenses))
}

func (c *eligibilityChecker) resolveTier(ctx context.Context, user *entity.User) (*entity.Tier, error) {
	if user.TierID == nil {
		return nil, domainerror.New(domainerror.ErrCodeNoTierAssigned, "no tier assigned to user", domainerror.ErrNoTierAssigned)
	}

	tier, err := c.tierRepo.FindByID(ctx, *user.TierID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTierNotFound) {
			return nil, domainerror.New(domainerror.ErrCodeTierNotFound, "tier not found", domainerror.ErrTierNotFound)
		}
		return nil, fmt.Errorf("failed to find tier: %w", err)
	}
	return tier, nil
}

func reportName(r *entity.Report) string {
	if r.Label != "" {
		return r.Label
	}
	return "report " + r.ID.String()
}
