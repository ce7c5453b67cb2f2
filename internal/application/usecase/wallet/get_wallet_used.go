package wallet

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/valueobject"
)

// GetWalletUsedInput represents the input for reading the wallet usage.
type GetWalletUsedInput struct {
	UserID uuid.UUID
}

// GetWalletUsedOutput is the amount drawn from the wallet this month.
type GetWalletUsedOutput struct {
	Used   decimal.Decimal
	Count  int
	Window valueobject.MonthWindow
}

// GetWalletUsedUseCase sums wallet deductions of the current month. It uses
// the same UTC month boundaries as GetWalletUseCase.
type GetWalletUsedUseCase struct {
	deductionRepo adapter.DeductionRepository
	clock         adapter.Clock
}

// NewGetWalletUsedUseCase creates a new GetWalletUsedUseCase instance.
func NewGetWalletUsedUseCase(deductionRepo adapter.DeductionRepository, clock adapter.Clock) *GetWalletUsedUseCase {
	return &GetWalletUsedUseCase{
		deductionRepo: deductionRepo,
		clock:         clock,
	}
}

// Execute performs the usage computation.
func (uc *GetWalletUsedUseCase) Execute(ctx context.Context, input GetWalletUsedInput) (*GetWalletUsedOutput, error) {
	window := valueobject.CalendarMonth(uc.clock.Now(), time.UTC)

	deductions, err := uc.deductionRepo.FindActiveWalletInWindow(ctx, input.UserID, window)
	if err != nil {
		return nil, fmt.Errorf("failed to load deductions: %w", err)
	}

	used := decimal.Zero
	for _, d := range deductions {
		used = used.Add(d.Amount)
	}

	return &GetWalletUsedOutput{Used: used, Count: len(deductions), Window: window}, nil
}
