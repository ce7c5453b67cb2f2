// Package wallet contains the wallet balance and advance payment use cases.
package wallet

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	"github.com/reimburse-desk/backend/internal/domain/valueobject"
)

// GetWalletInput represents the input for reading a wallet.
type GetWalletInput struct {
	UserID uuid.UUID
}

// GetWalletOutput represents the wallet of the current month.
type GetWalletOutput struct {
	Wallet *entity.Wallet
	Window valueobject.MonthWindow
}

// GetWalletUseCase computes a user's monthly wallet.
type GetWalletUseCase struct {
	transactionRepo adapter.TransactionRepository
	deductionRepo   adapter.DeductionRepository
	clock           adapter.Clock
}

// NewGetWalletUseCase creates a new GetWalletUseCase instance.
func NewGetWalletUseCase(
	transactionRepo adapter.TransactionRepository,
	deductionRepo adapter.DeductionRepository,
	clock adapter.Clock,
) *GetWalletUseCase {
	return &GetWalletUseCase{
		transactionRepo: transactionRepo,
		deductionRepo:   deductionRepo,
		clock:           clock,
	}
}

// Execute computes the wallet: completed advances received this UTC month
// minus active wallet deductions this UTC month.
func (uc *GetWalletUseCase) Execute(ctx context.Context, input GetWalletInput) (*GetWalletOutput, error) {
	window := valueobject.CalendarMonth(uc.clock.Now(), time.UTC)

	transactions, err := uc.transactionRepo.FindCompletedForReceiverInWindow(ctx, input.UserID, window)
	if err != nil {
		return nil, fmt.Errorf("failed to load advances: %w", err)
	}

	deductions, err := uc.deductionRepo.FindActiveWalletInWindow(ctx, input.UserID, window)
	if err != nil {
		return nil, fmt.Errorf("failed to load deductions: %w", err)
	}

	wallet := &entity.Wallet{
		TotalAmount:   decimal.Zero,
		TotalExpenses: decimal.Zero,
		Entries:       make([]*entity.WalletEntry, 0, len(transactions)+len(deductions)),
	}

	for _, t := range transactions {
		wallet.TotalAmount = wallet.TotalAmount.Add(t.Amount)
		date := t.CreatedAt
		if t.PaidOn != nil {
			date = *t.PaidOn
		}
		wallet.Entries = append(wallet.Entries, &entity.WalletEntry{
			RecordID:    t.ID.String(),
			DisplayID:   valueobject.TransactionDisplayID(t.ID.String()),
			Kind:        entity.WalletEntryCredit,
			Amount:      t.Amount,
			Description: t.Note,
			Date:        date,
		})
	}

	for _, d := range deductions {
		wallet.TotalExpenses = wallet.TotalExpenses.Add(d.Amount)
		wallet.Entries = append(wallet.Entries, &entity.WalletEntry{
			RecordID:    d.ID.String(),
			DisplayID:   valueobject.TransactionDisplayID(d.ID.String()),
			Kind:        entity.WalletEntryDebit,
			Amount:      d.Amount,
			Description: d.Description,
			Date:        d.CreatedAt,
		})
	}

	wallet.BalanceAmount = wallet.TotalAmount.Sub(wallet.TotalExpenses)

	sort.SliceStable(wallet.Entries, func(i, j int) bool {
		return wallet.Entries[i].Date.After(wallet.Entries[j].Date)
	})

	return &GetWalletOutput{Wallet: wallet, Window: window}, nil
}
