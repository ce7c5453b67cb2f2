// Package expense contains expense-related use cases.
package expense

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
)

// analysisTimeout bounds a background receipt analysis.
const analysisTimeout = 60 * time.Second

// CreateExpenseInput represents the input for expense creation.
type CreateExpenseInput struct {
	UserID          uuid.UUID
	Title           string
	Category        string
	Amount          decimal.Decimal
	ExpenseDate     time.Time
	Description     string
	ReceiptImage    []byte // Optional
	ReceiptMIMEType string
}

// CreateExpenseOutput represents the output of expense creation.
type CreateExpenseOutput struct {
	Expense *entity.Expense
	// AnalysisQueued tells whether receipt analysis was started in the background.
	AnalysisQueued bool
}

// CreateExpenseUseCase handles expense creation logic.
type CreateExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	userRepo    adapter.UserRepository
	analyzer    adapter.ReceiptAnalyzer
	clock       adapter.Clock
	async       func(func())
}

// NewCreateExpenseUseCase creates a new CreateExpenseUseCase instance.
// The analyzer may be nil when receipt analysis is not configured.
func NewCreateExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	userRepo adapter.UserRepository,
	analyzer adapter.ReceiptAnalyzer,
	clock adapter.Clock,
) *CreateExpenseUseCase {
	return &CreateExpenseUseCase{
		expenseRepo: expenseRepo,
		userRepo:    userRepo,
		analyzer:    analyzer,
		clock:       clock,
		async:       func(f func()) { go f() },
	}
}

// Execute performs the expense creation. Receipt analysis never blocks it.
func (uc *CreateExpenseUseCase) Execute(ctx context.Context, input CreateExpenseInput) (*CreateExpenseOutput, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domainerror.New(domainerror.ErrCodeMissingTitle, "title is required", domainerror.ErrMissingTitle)
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, domainerror.New(domainerror.ErrCodeMissingCategory, "category is required", domainerror.ErrMissingCategory)
	}

	if input.Amount.IsNegative() {
		return nil, domainerror.New(domainerror.ErrCodeInvalidAmount, "amount must not be negative", domainerror.ErrInvalidAmount)
	}

	if _, err := uc.userRepo.FindByID(ctx, input.UserID); err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.New(domainerror.ErrCodeUserNotFound, "user not found", domainerror.ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	expenseDate := input.ExpenseDate
	if expenseDate.IsZero() {
		expenseDate = uc.clock.Now()
	}

	expense := entity.NewExpense(input.UserID, title, category, input.Amount, expenseDate.UTC(), input.Description)
	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, domainerror.New(domainerror.ErrCodeExpenseStorage, "failed to create expense", err)
	}

	queued := false
	if len(input.ReceiptImage) > 0 && uc.analyzer != nil && uc.analyzer.IsAvailable() {
		request := &adapter.ReceiptAnalysisRequest{
			Image:    input.ReceiptImage,
			MIMEType: input.ReceiptMIMEType,
			Amount:   expense.Amount,
			Category: expense.Category,
			Title:    expense.Title,
		}
		expenseID := expense.ID
		uc.async(func() { uc.analyze(expenseID, request) })
		queued = true
	}

	return &CreateExpenseOutput{Expense: expense, AnalysisQueued: queued}, nil
}

// analyze runs detached from the request context so the response can return first.
func (uc *CreateExpenseUseCase) analyze(expenseID uuid.UUID, request *adapter.ReceiptAnalysisRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), analysisTimeout)
	defer cancel()

	scores, err := uc.analyzer.Analyze(ctx, request)
	if err != nil {
		zap.L().Warn("receipt analysis failed",
			zap.String("expense_id", expenseID.String()),
			zap.Error(err),
		)
		return
	}

	if err := uc.expenseRepo.UpdateAIScores(ctx, expenseID, scores); err != nil {
		zap.L().Error("failed to store receipt scores",
			zap.String("expense_id", expenseID.String()),
			zap.Error(err),
		)
	}
}
