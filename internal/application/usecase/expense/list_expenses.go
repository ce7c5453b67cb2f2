package expense

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
)

// ListExpensesInput represents the input for listing expenses.
type ListExpensesInput struct {
	UserID uuid.UUID
	Page   int
	Filter adapter.ExpenseFilterType // Defaults to all
	Status *entity.ExpenseStatus
}

// ListExpensesOutput represents a page of expenses.
type ListExpensesOutput struct {
	Result *entity.ExpenseListResult
}

// ListExpensesUseCase handles expense listing logic.
type ListExpensesUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewListExpensesUseCase creates a new ListExpensesUseCase instance.
func NewListExpensesUseCase(expenseRepo adapter.ExpenseRepository) *ListExpensesUseCase {
	return &ListExpensesUseCase{
		expenseRepo: expenseRepo,
	}
}

// Execute performs the expense listing.
func (uc *ListExpensesUseCase) Execute(ctx context.Context, input ListExpensesInput) (*ListExpensesOutput, error) {
	filterType := input.Filter
	if filterType == "" {
		filterType = adapter.ExpenseFilterAll
	}
	if !filterType.IsValid() {
		return nil, domainerror.New(domainerror.ErrCodeInvalidExpenseFilter, "filter must be one of all, unreported or reported", domainerror.ErrInvalidExpenseFilter)
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, domainerror.New(domainerror.ErrCodeInvalidExpenseFilter, fmt.Sprintf("unknown expense status %q", *input.Status), domainerror.ErrInvalidExpenseFilter)
	}

	filter := adapter.ExpenseFilter{
		UserID: input.UserID,
		Type:   filterType,
		Status: input.Status,
	}

	result, err := uc.expenseRepo.FindByFilter(ctx, filter, adapter.NewPagination(input.Page))
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	return &ListExpensesOutput{Result: result}, nil
}
